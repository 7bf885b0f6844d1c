package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vovarama1992/content-calendar/internal/models"
	"github.com/Vovarama1992/content-calendar/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contentColumns = `
	id,
	title,
	COALESCE(description, '') AS description,
	status,
	content_type,
	date_created,
	date_updated,
	COALESCE(url, '') AS url
`

const insertContent = `
	INSERT INTO content (title, description, status, content_type, date_created, date_updated, url)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
`

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresContentRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresContentRepo(pool *pgxpool.Pool) ports.ContentRepository {
	return &PostgresContentRepo{pool: pool}
}

func scanContent(row pgx.CollectableRow) (models.Content, error) {
	var c models.Content
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Desc,
		&c.Status,
		&c.ContentType,
		&c.DateCreated,
		&c.DateUpdated,
		&c.URL,
	)
	return c, err
}

func (r *PostgresContentRepo) list(ctx context.Context, op, query string, args ...any) ([]models.Content, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := pgx.CollectRows(rows, scanContent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (r *PostgresContentRepo) FindAll(ctx context.Context) ([]models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content ORDER BY id`
	return r.list(ctx, "find all content", query)
}

func (r *PostgresContentRepo) FindByID(ctx context.Context, id int) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanContent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return &c, nil
}

func (r *PostgresContentRepo) FindAllByTitleContains(ctx context.Context, keyword string) ([]models.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content
		WHERE title LIKE '%' || $1 || '%'
		ORDER BY id
	`
	return r.list(ctx, "find content by title", query, escapeLike(keyword))
}

func (r *PostgresContentRepo) ListByStatus(ctx context.Context, status models.Status) ([]models.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content
		WHERE status = $1
		ORDER BY id
	`
	return r.list(ctx, "list content by status", query, string(status))
}

func (r *PostgresContentRepo) Save(ctx context.Context, c *models.Content) error {
	if c.ID == nil {
		return insert(ctx, r.pool, c)
	}

	query := `
		UPDATE content
		SET title = $1,
		    description = $2,
		    status = $3,
		    content_type = $4,
		    date_created = COALESCE($5, date_created),
		    date_updated = $6,
		    url = $7
		WHERE id = $8
	`
	tag, err := r.pool.Exec(ctx, query,
		c.Title,
		c.Desc,
		string(c.Status),
		string(c.ContentType),
		nullTime(c.DateCreated),
		c.DateUpdated,
		c.URL,
		*c.ID,
	)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresContentRepo) SaveAll(ctx context.Context, items []models.Content) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for i := range items {
			if err := insert(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save all content: %w", err)
	}
	return nil
}

func insert(ctx context.Context, q rowQuerier, c *models.Content) error {
	var id int
	err := q.QueryRow(ctx, insertContent,
		c.Title,
		c.Desc,
		string(c.Status),
		string(c.ContentType),
		c.DateCreated,
		c.DateUpdated,
		c.URL,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	c.ID = &id
	return nil
}

func (r *PostgresContentRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM content WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("content exists by id: %w", err)
	}
	return exists, nil
}

func (r *PostgresContentRepo) DeleteByID(ctx context.Context, id int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete content: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresContentRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM content`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return n, nil
}

// nullTime maps the zero time to NULL so an update keeps the stored value.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// escapeLike makes LIKE treat keyword as a literal substring.
func escapeLike(keyword string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(keyword)
}
