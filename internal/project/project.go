// internal/project/project.go
//
// Portfolio projects: model and MySQL repository.
//
// Context
//   A project is a title, a description, and the filename of its preview
//   image under the theme's assets.  The table is created on start-up if
//   missing; listing returns the newest project first.
//
//------------------------------------------------------------------------------

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/folio/internal/metrics"
)

// ErrNotFound is returned when no project has the requested ID.
var ErrNotFound = errors.New("project not found")

// Schema creates the projects table.
const Schema = `CREATE TABLE IF NOT EXISTS projects (
	id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	title          VARCHAR(255)    NOT NULL,
	description    TEXT            NOT NULL,
	image_filename VARCHAR(255)    NOT NULL,
	created_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Project is one row of the projects table.  The validate tags drive the
// add-project form.
type Project struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"          form:"title"          validate:"notblank,max=255"`
	Description   string    `db:"description"    form:"description"    validate:"notblank"`
	ImageFilename string    `db:"image_filename" form:"image_filename" validate:"notblank,max=255"`
	CreatedAt     time.Time `db:"created_at"`
}

// Repository reads and writes projects.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps db.
func NewRepository(db *sqlx.DB) *Repository { return &Repository{db: db} }

// Init creates the table when it does not exist.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create projects table: %w", err)
	}
	return nil
}

const selectCols = `SELECT id, title, description, image_filename, created_at FROM projects`

// All returns every project, newest first.
func (r *Repository) All(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := r.db.SelectContext(ctx, &out, selectCols+` ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	metrics.Projects.Set(float64(len(out)))
	return out, nil
}

// ByID returns one project or ErrNotFound.
func (r *Repository) ByID(ctx context.Context, id int64) (Project, error) {
	var p Project
	err := r.db.GetContext(ctx, &p, selectCols+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	if err != nil {
		return Project{}, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

// Insert stores p and returns its new ID.
func (r *Repository) Insert(ctx context.Context, p Project) (int64, error) {
	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO projects (title, description, image_filename)
		 VALUES (:title, :description, :image_filename)`, p)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	metrics.ProjectWrites.WithLabelValues("insert").Inc()
	return id, nil
}

// Update replaces the editable columns of project p.ID.
func (r *Repository) Update(ctx context.Context, p Project) error {
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE projects SET title = :title, description = :description,
		 image_filename = :image_filename WHERE id = :id`, p)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	if err := affected(res); err != nil {
		return err
	}
	metrics.ProjectWrites.WithLabelValues("update").Inc()
	return nil
}

// Delete removes project id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if err := affected(res); err != nil {
		return err
	}
	metrics.ProjectWrites.WithLabelValues("delete").Inc()
	return nil
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
