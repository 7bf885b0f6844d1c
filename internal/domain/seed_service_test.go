package domain

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/content-calendar/internal/infra"
	"github.com/Vovarama1992/content-calendar/internal/models"
	"github.com/Vovarama1992/content-calendar/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	body string
	err  error
}

func (s stubSource) Open(context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s stubSource) Location() string { return "stub" }

var seedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newSeed(repo ports.ContentRepository, src ports.FixtureSource) *SeedService {
	s := NewSeedService(repo, src, logger.NewZapLogger(zap.NewNop().Sugar()))
	s.now = func() time.Time { return seedNow }
	return s
}

const fixture = `[
	{"id": 10, "title": "Seeded article", "desc": "d", "status": "IDEA", "contentType": "ARTICLE", "dateCreated": "2024-01-01T00:00:00Z"},
	{"title": "Seeded video", "status": "PUBLISHED", "contentType": "VIDEO", "url": "https://example.com/v"}
]`

func TestSeedService_Load(t *testing.T) {
	repo := infra.NewMemoryContentRepo()
	ctx := context.Background()

	n, err := newSeed(repo, stubSource{body: fixture}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// fixture ids are ignored
	assert.Equal(t, 1, *all[0].ID)
	assert.Equal(t, "Seeded article", all[0].Title)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), all[0].DateCreated)

	assert.Equal(t, models.StatusPublished, all[1].Status)
	assert.Equal(t, seedNow, all[1].DateCreated)
}

func TestSeedService_SkipsNonEmptyStore(t *testing.T) {
	repo := infra.NewMemoryContentRepo()
	ctx := context.Background()

	existing := models.Content{Title: "already here", Status: models.StatusIdea, ContentType: models.TypeCourse}
	require.NoError(t, repo.Save(ctx, &existing))

	n, err := newSeed(repo, stubSource{body: fixture}).Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeedService_MissingFixture(t *testing.T) {
	repo := infra.NewMemoryContentRepo()

	n, err := newSeed(repo, stubSource{err: ports.ErrFixtureNotFound}).Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedService_SourceError(t *testing.T) {
	boom := errors.New("permission denied")

	_, err := newSeed(infra.NewMemoryContentRepo(), stubSource{err: boom}).Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSeedService_InvalidRecord(t *testing.T) {
	repo := infra.NewMemoryContentRepo()
	ctx := context.Background()

	_, err := newSeed(repo, stubSource{body: `[{"title":" ","status":"IDEA","contentType":"VIDEO"}]`}).Load(ctx)
	assert.ErrorIs(t, err, models.ErrBlankTitle)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeedService_BadJSON(t *testing.T) {
	_, err := newSeed(infra.NewMemoryContentRepo(), stubSource{body: `{"not":"an array"}`}).Load(context.Background())
	assert.Error(t, err)
}

func TestSeedService_BundledFixture(t *testing.T) {
	repo := infra.NewMemoryContentRepo()

	n, err := newSeed(repo, infra.NewFileFixtureSource("../../data/content.json")).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSeedService_LocalTimestamps(t *testing.T) {
	repo := infra.NewMemoryContentRepo()
	ctx := context.Background()

	body := `[{"title": "Local", "status": "DONE", "contentType": "COURSE", "dateCreated": "2024-03-05T14:15:16.5"}]`
	n, err := newSeed(repo, stubSource{body: body}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, time.Date(2024, 3, 5, 14, 15, 16, 500000000, time.UTC).Equal(all[0].DateCreated))
}
