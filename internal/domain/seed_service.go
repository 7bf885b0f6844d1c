package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/content-calendar/internal/models"
	"github.com/Vovarama1992/content-calendar/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

// SeedService loads the startup fixture into an empty store.
type SeedService struct {
	repo   ports.ContentRepository
	source ports.FixtureSource
	log    *logger.ZapLogger
	now    func() time.Time
}

func NewSeedService(repo ports.ContentRepository, source ports.FixtureSource, log *logger.ZapLogger) *SeedService {
	return &SeedService{
		repo:   repo,
		source: source,
		log:    log,
		now:    time.Now,
	}
}

// Load inserts every fixture record and returns how many were stored. A
// missing fixture or a non-empty store is not an error.
func (s *SeedService) Load(ctx context.Context) (int, error) {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		s.log.Log(logger.LogEntry{
			Level:   "info",
			Message: "seed skipped: store not empty",
			Fields:  map[string]any{"rows": existing},
		})
		return 0, nil
	}

	rc, err := s.source.Open(ctx)
	if errors.Is(err, ports.ErrFixtureNotFound) {
		s.log.Log(logger.LogEntry{
			Level:   "info",
			Message: "seed skipped: fixture not found",
			Fields:  map[string]any{"location": s.source.Location()},
		})
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	var items []models.Content
	if err := json.NewDecoder(rc).Decode(&items); err != nil {
		return 0, fmt.Errorf("decode fixture %s: %w", s.source.Location(), err)
	}

	now := s.now()
	for i := range items {
		items[i].ID = nil
		if err := items[i].Validate(); err != nil {
			return 0, fmt.Errorf("fixture record %d: %w", i, err)
		}
		if items[i].DateCreated.IsZero() {
			items[i].DateCreated = now
		}
	}

	if len(items) > 0 {
		if err := s.repo.SaveAll(ctx, items); err != nil {
			return 0, err
		}
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "seed loaded",
		Fields: map[string]any{
			"location": s.source.Location(),
			"inserted": len(items),
		},
	})
	return len(items), nil
}
