package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListUsersFiltersAndSorts(t *testing.T) {
	db, mock := newMockDB(t)
	r := newTestRouter()
	r.GET("/api/admin/users", stubAuth(1, 1), ListUsersHandler(db))

	// Role filter binds as a parameter; store_rating sorts on the aggregate
	mock.ExpectQuery(`SELECT (.+) FROM users u (.+) ORDER BY COALESCE\(sr.avg_store_rating, 0\) DESC, u.id ASC`).
		WithArgs("store_owner").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "role", "store_rating"}).
			AddRow(3, "Olivia Owner Of Many Stores", "olivia@example.com", nil, "store_owner", 4.25).
			AddRow(5, "Oscar Owner Of Few Stores", "oscar@example.com", nil, "store_owner", 2.5))

	w := doJSON(t, r, http.MethodGet, "/api/admin/users?role=store_owner&sort=store_rating&dir=desc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var users []UserListItem
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if users[0].StoreRating != 4.25 || users[1].StoreRating != 2.5 {
		t.Errorf("store ratings = %v, %v", users[0].StoreRating, users[1].StoreRating)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestListUsersEmptyResultIsArray(t *testing.T) {
	db, mock := newMockDB(t)
	r := newTestRouter()
	r.GET("/api/admin/users", stubAuth(1, 1), ListUsersHandler(db))

	// No user matches the filter
	mock.ExpectQuery(`SELECT (.+) FROM users u`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "address", "role", "store_rating"}))

	w := doJSON(t, r, http.MethodGet, "/api/admin/users?name=nosuchuser", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want [] (empty listing must serialize as an array)", env.Data)
	}
}

func TestCreateUserUnknownRole(t *testing.T) {
	db, mock := newMockDB(t)
	r := newTestRouter()
	r.POST("/api/admin/users", stubAuth(1, 1), CreateUserHandler(db, newTestRedis()))

	// No role with this name
	mock.ExpectQuery(`SELECT (.+) FROM "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	w := doJSON(t, r, http.MethodPost, "/api/admin/users", map[string]string{
		"name":     "A Perfectly Valid Long Name",
		"email":    "new.user@example.com",
		"password": "Abcdef1!",
		"role":     "superuser",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Message != "Role not found" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestDashboardCounts(t *testing.T) {
	db, mock := newMockDB(t)
	r := newTestRouter()
	r.GET("/api/admin/dashboard", stubAuth(1, 1), DashboardHandler(db, newTestRedis()))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "stores"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "ratings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(31))

	w := doJSON(t, r, http.MethodGet, "/api/admin/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var counts DashboardResponse
	if err := json.Unmarshal(env.Data, &counts); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if counts.Users != 12 || counts.Stores != 4 || counts.Ratings != 31 {
		t.Errorf("counts = %+v", counts)
	}
}
