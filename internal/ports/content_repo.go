package ports

import (
	"context"

	"github.com/Vovarama1992/content-calendar/internal/models"
)

type ContentRepository interface {
	FindAll(ctx context.Context) ([]models.Content, error)
	// FindByID returns nil, nil when no row matches.
	FindByID(ctx context.Context, id int) (*models.Content, error)
	FindAllByTitleContains(ctx context.Context, keyword string) ([]models.Content, error)
	ListByStatus(ctx context.Context, status models.Status) ([]models.Content, error)

	// Save inserts when c.ID is nil and writes the assigned id back into c.
	// Otherwise it replaces the row and returns models.ErrNotFound if none matched.
	Save(ctx context.Context, c *models.Content) error
	SaveAll(ctx context.Context, items []models.Content) error

	ExistsByID(ctx context.Context, id int) (bool, error)
	// DeleteByID is a no-op for unknown ids; the bool reports whether a row was removed.
	DeleteByID(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
}
