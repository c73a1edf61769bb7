package design

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/modaria/modaria/backend-go/internal/db"
)

type fakeStore struct {
	designs map[string]db.Design
}

func newFakeStore() *fakeStore {
	return &fakeStore{designs: make(map[string]db.Design)}
}

func (f *fakeStore) CreateDesign(_ context.Context, id, ownerID, name string, document json.RawMessage, thumbnail string) (db.Design, error) {
	d := db.Design{
		ID: id, OwnerID: ownerID, Name: name,
		Document: document, Thumbnail: thumbnail,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.designs[id] = d
	return d, nil
}

func (f *fakeStore) GetDesign(_ context.Context, id string) (db.Design, error) {
	d, ok := f.designs[id]
	if !ok {
		return db.Design{}, pgx.ErrNoRows
	}
	return d, nil
}

func (f *fakeStore) ListDesignsForUser(_ context.Context, ownerID string) ([]db.Design, error) {
	var out []db.Design
	for _, d := range f.designs {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateDesignDocument(_ context.Context, id string, document json.RawMessage, thumbnail string) error {
	d, ok := f.designs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	d.Document = document
	d.Thumbnail = thumbnail
	f.designs[id] = d
	return nil
}

func (f *fakeStore) RenameDesign(_ context.Context, id, name string) error {
	d, ok := f.designs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	d.Name = name
	f.designs[id] = d
	return nil
}

func (f *fakeStore) DeleteDesign(_ context.Context, id string) error {
	delete(f.designs, id)
	return nil
}

func TestSaveGetRoundTrip(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	doc := json.RawMessage(`{"version":1,"objects":[]}`)
	created, err := svc.Save(ctx, "user_1", "Summer dress", doc, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated design id")
	}

	got, err := svc.Get(ctx, created.ID, "user_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Summer dress" {
		t.Fatalf("name = %q", got.Name)
	}
	if string(got.Document) != string(doc) {
		t.Fatalf("document = %s", got.Document)
	}
}

func TestSaveRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Save(ctx, "user_1", "", json.RawMessage(`{}`), ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("empty name: %v", err)
	}
	if _, err := svc.Save(ctx, "user_1", "x", json.RawMessage(`{not json`), ""); err == nil {
		t.Fatal("expected error for invalid JSON document")
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	created, err := svc.Save(ctx, "user_1", "Jacket", json.RawMessage(`{}`), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := svc.Get(ctx, created.ID, "user_2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-user get: %v", err)
	}
	if err := svc.Delete(ctx, created.ID, "user_2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-user delete: %v", err)
	}
	if err := svc.Rename(ctx, created.ID, "user_2", "Stolen"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-user rename: %v", err)
	}

	// Owner still sees it untouched.
	got, err := svc.Get(ctx, created.ID, "user_1")
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Name != "Jacket" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestGetMissingDesign(t *testing.T) {
	svc := NewService(newFakeStore())

	if _, err := svc.Get(context.Background(), "design_missing", "user_1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing design: %v", err)
	}
}

func TestListOmitsDocument(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Save(ctx, "user_1", "A", json.RawMessage(`{"version":1}`), ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.Save(ctx, "user_2", "B", json.RawMessage(`{"version":1}`), ""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	designs, err := svc.List(ctx, "user_1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(designs) != 1 {
		t.Fatalf("got %d designs, want 1", len(designs))
	}
	if designs[0].Document != nil {
		t.Fatal("listing should not carry the full document")
	}
}

func TestUpdateDocument(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	created, err := svc.Save(ctx, "user_1", "Coat", json.RawMessage(`{"version":1}`), "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated := json.RawMessage(`{"version":1,"objects":[{"id":"el_1"}]}`)
	if err := svc.UpdateDocument(ctx, created.ID, "user_1", updated, "thumb"); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}

	got, err := svc.Get(ctx, created.ID, "user_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Document) != string(updated) {
		t.Fatalf("document = %s", got.Document)
	}
	if got.Thumbnail != "thumb" {
		t.Fatalf("thumbnail = %q", got.Thumbnail)
	}
}
