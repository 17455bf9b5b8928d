package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "videos.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newTestLoader(batchSize int) *Loader {
	return NewLoader(NewParser("|", ";"), batchSize, zap.NewNop())
}

// TestLoader_MalformedLinesDropped: a 3-line file where line 2 is
// malformed yields exactly 2 records and no failure.
func TestLoader_MalformedLinesDropped(t *testing.T) {
	content := wellFormedLine + "\n" +
		"a|b|c|d|e\n" +
		wellFormedLine + "\n"
	path := writeDump(t, content)

	result, err := newTestLoader(0).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, result.Records, 2)
	assert.Equal(t, 3, result.TotalLines)
	assert.Equal(t, 1, result.Dropped)
}

func TestLoader_MissingFileYieldsEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	result, err := newTestLoader(0).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Empty(t, result.Records)
	assert.Zero(t, result.TotalLines)
}

func TestLoader_BlankLinesIgnored(t *testing.T) {
	content := "\n\n" + wellFormedLine + "\n   \n" + wellFormedLine + "\n\n"
	path := writeDump(t, content)

	result, err := newTestLoader(0).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, result.Records, 2)
	assert.Equal(t, 2, result.TotalLines)
}

// TestLoader_SmallBatches verifies batching preserves record order.
func TestLoader_SmallBatches(t *testing.T) {
	content := ""
	for i := 0; i < 7; i++ {
		content += wellFormedLine + "\n"
	}
	path := writeDump(t, content)

	result, err := newTestLoader(2).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, result.Records, 7)
}

func TestLoader_CanceledContext(t *testing.T) {
	path := writeDump(t, wellFormedLine+"\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader(0).Load(ctx, path)
	assert.Error(t, err)
}

func TestLoader_ReportsFileSize(t *testing.T) {
	content := wellFormedLine + "\n"
	path := writeDump(t, content)

	result, err := newTestLoader(0).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), result.FileSize)
}
