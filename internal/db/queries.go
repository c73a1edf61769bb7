package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries is the hand-written query layer over the connection pool.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Design struct {
	ID        string
	OwnerID   string
	Name      string
	Document  json.RawMessage
	Thumbnail string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateUser(ctx context.Context, id, email, password, displayName string) (User, error) {
	row := q.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password, display_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, password, display_name, created_at`,
		id, email, password, displayName)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUser(ctx context.Context, id string) (User, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE id = $1`, id)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE email = $1`, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (q *Queries) CreateDesign(ctx context.Context, id, ownerID, name string, document json.RawMessage, thumbnail string) (Design, error) {
	row := q.pool.QueryRow(ctx,
		`INSERT INTO designs (id, owner_id, name, document, thumbnail)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, owner_id, name, document, thumbnail, created_at, updated_at`,
		id, ownerID, name, document, thumbnail)

	return scanDesign(row)
}

func (q *Queries) GetDesign(ctx context.Context, id string) (Design, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT id, owner_id, name, document, thumbnail, created_at, updated_at
		 FROM designs WHERE id = $1`, id)

	return scanDesign(row)
}

func (q *Queries) ListDesignsForUser(ctx context.Context, ownerID string) ([]Design, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT id, owner_id, name, document, thumbnail, created_at, updated_at
		 FROM designs WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var designs []Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

func (q *Queries) UpdateDesignDocument(ctx context.Context, id string, document json.RawMessage, thumbnail string) error {
	_, err := q.pool.Exec(ctx,
		`UPDATE designs SET document = $2, thumbnail = $3, updated_at = now() WHERE id = $1`,
		id, document, thumbnail)
	return err
}

// SaveDesignDocument updates the document alone, leaving the thumbnail in
// place. Used by the studio autosave path.
func (q *Queries) SaveDesignDocument(ctx context.Context, id string, document json.RawMessage) error {
	_, err := q.pool.Exec(ctx,
		`UPDATE designs SET document = $2, updated_at = now() WHERE id = $1`, id, document)
	return err
}

func (q *Queries) RenameDesign(ctx context.Context, id, name string) error {
	_, err := q.pool.Exec(ctx,
		`UPDATE designs SET name = $2, updated_at = now() WHERE id = $1`, id, name)
	return err
}

func (q *Queries) DeleteDesign(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM designs WHERE id = $1`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDesign(row scanner) (Design, error) {
	var d Design
	err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &d.Document, &d.Thumbnail, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
