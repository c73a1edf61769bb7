package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/modaria/modaria/backend-go/internal/db"
)

type fakeStore struct {
	byID    map[string]db.User
	byEmail map[string]db.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]db.User), byEmail: make(map[string]db.User)}
}

func (f *fakeStore) CreateUser(_ context.Context, id, email, password, displayName string) (db.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return db.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	u := db.User{ID: id, Email: email, Password: password, DisplayName: displayName}
	f.byID[id] = u
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (db.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return db.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (db.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return db.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func TestRegisterLoginValidate(t *testing.T) {
	svc := NewService(newFakeStore(), "test-secret")
	ctx := context.Background()

	reg, err := svc.Register(ctx, "ana@example.com", "sufficiently-long", "Ana")
	if err != nil {
		t.Fatal(err)
	}
	if reg.Token == "" || reg.User.ID == "" {
		t.Fatalf("register result: %+v", reg)
	}

	login, err := svc.Login(ctx, "ana@example.com", "sufficiently-long")
	if err != nil {
		t.Fatal(err)
	}
	if login.User.ID != reg.User.ID {
		t.Fatal("login returned a different user")
	}

	userID, err := svc.ValidateToken(login.Token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != reg.User.ID {
		t.Fatalf("token subject: got %q, want %q", userID, reg.User.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(newFakeStore(), "test-secret")
	ctx := context.Background()
	svc.Register(ctx, "bo@example.com", "correct-horse", "Bo")

	if _, err := svc.Login(ctx, "bo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewService(newFakeStore(), "secret-a")
	verifier := NewService(newFakeStore(), "secret-b")

	reg, err := issuer.Register(context.Background(), "c@example.com", "long-enough-pw", "C")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.ValidateToken(reg.Token); err == nil {
		t.Fatal("token validated across secrets")
	}
}

func TestAuthMiddleware(t *testing.T) {
	svc := NewService(newFakeStore(), "test-secret")
	reg, err := svc.Register(context.Background(), "d@example.com", "long-enough-pw", "D")
	if err != nil {
		t.Fatal(err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
	})
	protected := svc.AuthMiddleware(next)

	req := httptest.NewRequest(http.MethodGet, "/api/designs", nil)
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || gotUserID != reg.User.ID {
		t.Fatalf("status=%d userID=%q", rec.Code, gotUserID)
	}

	// Missing and malformed headers are rejected.
	for _, header := range []string{"", "Basic abc", "Bearer not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/designs", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status %d", header, rec.Code)
		}
	}
}
