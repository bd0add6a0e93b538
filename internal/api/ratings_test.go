package api

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	db, mock := newMockDB(t)
	r := newTestRouter()
	r.POST("/api/ratings/:storeId", stubAuth(1, 2), SubmitRatingHandler(db, newTestRedis()))

	for _, value := range []int{0, 6, -3, 100} {
		w := doJSON(t, r, http.MethodPost, "/api/ratings/5", map[string]int{"rating": value})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("rating %d: status = %d, want 400", value, w.Code)
		}
		env := decodeEnvelope(t, w)
		if env.Message != "Rating must be between 1 and 5" {
			t.Errorf("rating %d: message = %q", value, env.Message)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("out-of-range ratings must not reach the database: %v", err)
	}
}

func TestSubmitRatingRejectsBadStoreID(t *testing.T) {
	db, _ := newMockDB(t)
	r := newTestRouter()
	r.POST("/api/ratings/:storeId", stubAuth(1, 2), SubmitRatingHandler(db, newTestRedis()))

	w := doJSON(t, r, http.MethodPost, "/api/ratings/abc", map[string]int{"rating": 3})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSubmitRatingUnknownStore(t *testing.T) {
	db, mock := newMockDB(t)
	r := newTestRouter()
	r.POST("/api/ratings/:storeId", stubAuth(1, 2), SubmitRatingHandler(db, newTestRedis()))

	// No store with this ID
	mock.ExpectQuery(`SELECT (.+) FROM "stores"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(t, r, http.MethodPost, "/api/ratings/99", map[string]int{"rating": 3})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Store not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestSubmitRatingUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	r := newTestRouter()
	r.POST("/api/ratings/:storeId", stubAuth(4, 2), SubmitRatingHandler(db, newTestRedis()))

	// The store exists
	mock.ExpectQuery(`SELECT (.+) FROM "stores"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "owner_id"}).
			AddRow(5, "Corner Coffee", "corner@example.com", "1 Main St", nil))
	// Single atomic write: INSERT ... ON CONFLICT DO UPDATE
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ratings" (.+) ON CONFLICT (.+) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()
	// The handler re-reads the resulting row
	mock.ExpectQuery(`SELECT (.+) FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "store_id", "rating"}).
			AddRow(11, 4, 5, 5))

	w := doJSON(t, r, http.MethodPost, "/api/ratings/5", map[string]int{"rating": 5})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Rating saved/updated" {
		t.Errorf("message = %q", env.Message)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
