package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"video-catalog-service/internal/domain"
	"video-catalog-service/internal/infra/flatfile"
	"video-catalog-service/internal/infra/resultcache"
	"video-catalog-service/internal/infra/store"
)

// catalogLine builds a dump line with controllable filter-relevant
// fields. Views double as a unique sort key.
func catalogLine(i, duration, views int, category string) string {
	return fmt.Sprintf(
		"https://cdn.example.com/embed/%016x|https://img.example.com/20230415/c.jpg|s.jpg|Video %d|amateur|%s|Mia Lane|%d|%d|10|1|alt.jpg|seq.jpg|0",
		i, i, category, duration, views,
	)
}

func writeCatalog(t *testing.T, lines []string) string {
	t.Helper()

	var content string
	for _, l := range lines {
		content += l + "\n"
	}

	path := filepath.Join(t.TempDir(), "videos.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newQueryService(t *testing.T, path string) *QueryService {
	t.Helper()

	logger := zap.NewNop()
	loader := flatfile.NewLoader(flatfile.NewParser("|", ";"), 0, logger)
	st := store.New(loader, path, logger)
	st.Start(context.Background())

	return NewQueryService(st, resultcache.New(16, logger), logger)
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func TestQueryService_FilterAndSort(t *testing.T) {
	lines := []string{
		catalogLine(0, 300, 2_000_000, "Anal"),
		catalogLine(1, 400, 500, "Anal"),
		catalogLine(2, 500, 1_500_000, "Anal"),
		catalogLine(3, 600, 3_000_000, "Amateur"),
	}
	svc := newQueryService(t, writeCatalog(t, lines))

	q := domain.DefaultQuery()
	q.Category = "Anal"
	q.MinViews = 1_000_000

	result, err := svc.Query(testContext(t), q)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, 2, result.Total)
	// Default sort is views descending.
	assert.Equal(t, "Video 0", result.Records[0].Title)
	assert.Equal(t, "Video 2", result.Records[1].Title)
}

// TestQueryService_PaginationCompleteness: walking every page of a
// 45-record result set yields each record exactly once, in order.
func TestQueryService_PaginationCompleteness(t *testing.T) {
	var lines []string
	for i := 0; i < 45; i++ {
		lines = append(lines, catalogLine(i, 100, 100_000-i, "Amateur"))
	}
	svc := newQueryService(t, writeCatalog(t, lines))
	ctx := testContext(t)

	var seen []string
	q := domain.DefaultQuery() // limit 20, views desc
	for page := 1; page <= 3; page++ {
		q.Page = page
		result, err := svc.Query(ctx, q)
		require.NoError(t, err)

		assert.Equal(t, 45, result.Total)
		assert.Equal(t, 3, result.TotalPages)
		assert.Equal(t, page < 3, result.HasMore)

		for _, r := range result.Records {
			seen = append(seen, r.Title)
		}
	}

	require.Len(t, seen, 45)
	for i, title := range seen {
		assert.Equal(t, fmt.Sprintf("Video %d", i), title)
	}
}

func TestQueryService_MissingFileYieldsEmptyResult(t *testing.T) {
	svc := newQueryService(t, filepath.Join(t.TempDir(), "missing.txt"))

	result, err := svc.Query(testContext(t), domain.DefaultQuery())
	require.NoError(t, err)

	assert.Zero(t, result.Total)
	assert.Empty(t, result.Records)
	assert.False(t, result.HasMore)
}

func TestQueryService_NotReadyWithinDeadline(t *testing.T) {
	logger := zap.NewNop()
	loader := flatfile.NewLoader(flatfile.NewParser("|", ";"), 0, logger)
	st := store.New(loader, filepath.Join(t.TempDir(), "videos.txt"), logger)
	// Start is deliberately never called.

	svc := NewQueryService(st, resultcache.New(16, logger), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Query(ctx, domain.DefaultQuery())
	assert.True(t, errors.Is(err, domain.ErrNotReady))
}

func TestQueryService_GetByVideoID(t *testing.T) {
	svc := newQueryService(t, writeCatalog(t, []string{catalogLine(7, 100, 100, "Amateur")}))
	ctx := testContext(t)

	record, err := svc.GetByVideoID(ctx, fmt.Sprintf("%016x", 7))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Video 7", record.Title)

	record, err = svc.GetByVideoID(ctx, "ffffffffffffffff")
	require.NoError(t, err)
	assert.Nil(t, record)
}

// TestQueryService_ReloadInvalidatesCachedResults: cached result lists
// are keyed by dataset version, so a reload makes queries see the new
// data immediately.
func TestQueryService_ReloadInvalidatesCachedResults(t *testing.T) {
	path := writeCatalog(t, []string{catalogLine(0, 100, 100, "Amateur")})
	svc := newQueryService(t, path)
	ctx := testContext(t)

	q := domain.DefaultQuery()

	result, err := svc.Query(ctx, q)
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)

	content := catalogLine(0, 100, 100, "Amateur") + "\n" + catalogLine(1, 200, 200, "Amateur") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	version, count, err := svc.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.GreaterOrEqual(t, version, uint64(2))

	result, err = svc.Query(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

// TestQueryService_RepeatedQueryIsStable: the same query served twice
// (the second time from the result cache) returns identical pages.
func TestQueryService_RepeatedQueryIsStable(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, catalogLine(i, 100, 1000, "Amateur"))
	}
	svc := newQueryService(t, writeCatalog(t, lines))
	ctx := testContext(t)

	q := domain.DefaultQuery()
	q.SortBy = domain.SortFieldViews // all views equal: order falls back to input order

	first, err := svc.Query(ctx, q)
	require.NoError(t, err)
	second, err := svc.Query(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
}
