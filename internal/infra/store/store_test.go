package store

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
)

func writeCatalog(t *testing.T, n int) string {
	t.Helper()

	var content string
	for i := 0; i < n; i++ {
		content += fmt.Sprintf(
			"https://cdn.example.com/embed/%016x|https://img.example.com/20230415/c.jpg|s.jpg|Video %d|amateur|Amateur|Mia Lane|60|100|5|1|alt.jpg|seq.jpg|0\n",
			i, i,
		)
	}

	path := filepath.Join(t.TempDir(), "videos.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()

	loader := flatfile.NewLoader(flatfile.NewParser("|", ";"), 0, zap.NewNop())
	return New(loader, path, zap.NewNop())
}

func TestStore_NotReadyBeforeFirstLoad(t *testing.T) {
	st := newTestStore(t, writeCatalog(t, 1))

	assert.False(t, st.Ready())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := st.Snapshot(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotReady))
}

func TestStore_StartPublishesSnapshot(t *testing.T) {
	st := newTestStore(t, writeCatalog(t, 3))
	st.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := st.Snapshot(ctx)
	require.NoError(t, err)

	assert.True(t, st.Ready())
	assert.Equal(t, uint64(1), snap.Version)
	assert.Len(t, snap.Records, 3)
	assert.Equal(t, 3, snap.TotalLines)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestStore_ReloadBumpsVersion(t *testing.T) {
	path := writeCatalog(t, 2)
	st := newTestStore(t, path)

	first, err := st.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.Version)

	second, err := st.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.Version)

	snap, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Version)
}

// TestStore_ReloadDoesNotDisturbHeldSnapshot: a snapshot obtained before
// a reload keeps serving its original records.
func TestStore_ReloadDoesNotDisturbHeldSnapshot(t *testing.T) {
	path := writeCatalog(t, 5)
	st := newTestStore(t, path)

	held, err := st.Reload(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	_, err = st.Reload(context.Background())
	require.NoError(t, err)

	assert.Len(t, held.Records, 5)

	snap, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Records)
}

func TestStore_MissingFileStillBecomesReady(t *testing.T) {
	st := newTestStore(t, filepath.Join(t.TempDir(), "missing.txt"))

	snap, err := st.Reload(context.Background())
	require.NoError(t, err)

	assert.True(t, st.Ready())
	assert.Empty(t, snap.Records)
}

func TestSnapshot_ByVideoID(t *testing.T) {
	st := newTestStore(t, writeCatalog(t, 3))

	snap, err := st.Reload(context.Background())
	require.NoError(t, err)

	r, ok := snap.ByVideoID(fmt.Sprintf("%016x", 1))
	require.True(t, ok)
	assert.Equal(t, "Video 1", r.Title)

	_, ok = snap.ByVideoID("ffffffffffffffff")
	assert.False(t, ok)
}
