package design

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/modaria/modaria/backend-go/internal/db"
	"github.com/modaria/modaria/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("design not found")
	ErrForbidden = errors.New("forbidden")
	ErrEmptyName = errors.New("design name is required")
)

// Store is the design persistence the service needs. The scene document is
// an opaque JSON blob here; only the canvas package knows its shape.
type Store interface {
	CreateDesign(ctx context.Context, id, ownerID, name string, document json.RawMessage, thumbnail string) (db.Design, error)
	GetDesign(ctx context.Context, id string) (db.Design, error)
	ListDesignsForUser(ctx context.Context, ownerID string) ([]db.Design, error)
	UpdateDesignDocument(ctx context.Context, id string, document json.RawMessage, thumbnail string) error
	RenameDesign(ctx context.Context, id, name string) error
	DeleteDesign(ctx context.Context, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type Design struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	OwnerID   string          `json:"ownerId"`
	Document  json.RawMessage `json:"document,omitempty"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

func (s *Service) Save(ctx context.Context, ownerID, name string, document json.RawMessage, thumbnail string) (*Design, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !json.Valid(document) {
		return nil, fmt.Errorf("scene document is not valid JSON")
	}

	d, err := s.store.CreateDesign(ctx, typeid.NewDesignID(), ownerID, name, document, thumbnail)
	if err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}
	return toDesign(d, false), nil
}

func (s *Service) Get(ctx context.Context, designID, userID string) (*Design, error) {
	d, err := s.owned(ctx, designID, userID)
	if err != nil {
		return nil, err
	}
	return toDesign(*d, true), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Design, error) {
	dbDesigns, err := s.store.ListDesignsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}

	designs := make([]Design, len(dbDesigns))
	for i, d := range dbDesigns {
		// Listings omit the document; it can be large.
		designs[i] = *toDesign(d, false)
	}
	return designs, nil
}

func (s *Service) UpdateDocument(ctx context.Context, designID, userID string, document json.RawMessage, thumbnail string) error {
	if !json.Valid(document) {
		return fmt.Errorf("scene document is not valid JSON")
	}
	if _, err := s.owned(ctx, designID, userID); err != nil {
		return err
	}
	if err := s.store.UpdateDesignDocument(ctx, designID, document, thumbnail); err != nil {
		return fmt.Errorf("update design: %w", err)
	}
	return nil
}

func (s *Service) Rename(ctx context.Context, designID, userID, newName string) error {
	if newName == "" {
		return ErrEmptyName
	}
	if _, err := s.owned(ctx, designID, userID); err != nil {
		return err
	}
	if err := s.store.RenameDesign(ctx, designID, newName); err != nil {
		return fmt.Errorf("rename design: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, designID, userID string) error {
	if _, err := s.owned(ctx, designID, userID); err != nil {
		return err
	}
	if err := s.store.DeleteDesign(ctx, designID); err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	return nil
}

func (s *Service) owned(ctx context.Context, designID, userID string) (*db.Design, error) {
	d, err := s.store.GetDesign(ctx, designID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get design: %w", err)
	}
	if d.OwnerID != userID {
		return nil, ErrForbidden
	}
	return &d, nil
}

func toDesign(d db.Design, withDocument bool) *Design {
	out := &Design{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		Thumbnail: d.Thumbnail,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if withDocument {
		out.Document = d.Document
	}
	return out
}
