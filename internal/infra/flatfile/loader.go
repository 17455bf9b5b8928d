package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"video-catalog-service/internal/domain"
)

// DefaultBatchSize is the number of lines parsed per batch. Batching
// bounds peak allocation churn and gives the progress log a heartbeat.
const DefaultBatchSize = 10000

// maxLineBytes bounds a single dump line; thumbnail sequences make
// lines long but nowhere near this.
const maxLineBytes = 1 << 20

// LoadResult holds the outcome of one file load.
type LoadResult struct {
	Records    []domain.Record
	TotalLines int // non-blank lines seen, including dropped ones
	Dropped    int
	FileSize   int64 // bytes
}

// Loader reads the dump file and parses it in batches.
type Loader struct {
	parser    *Parser
	batchSize int
	logger    *zap.Logger
}

// NewLoader creates a loader. batchSize <= 0 selects DefaultBatchSize.
func NewLoader(parser *Parser, batchSize int, logger *zap.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{
		parser:    parser,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Load reads and parses the whole dump file. A missing file is a normal,
// representable state: it yields an empty result, not an error.
// Malformed lines are logged and dropped; parsing continues.
func (l *Loader) Load(ctx context.Context, path string) (*LoadResult, error) {
	lines, size, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		l.logger.Warn("dump file missing, starting with empty catalog",
			zap.String("path", path),
		)
		return &LoadResult{Records: []domain.Record{}}, nil
	}

	result := &LoadResult{
		Records:    make([]domain.Record, 0, len(lines)),
		TotalLines: len(lines),
		FileSize:   size,
	}

	for start := 0; start < len(lines); start += l.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load canceled: %w", err)
		}

		end := start + l.batchSize
		if end > len(lines) {
			end = len(lines)
		}

		for i, line := range lines[start:end] {
			record, err := l.parser.ParseLine(line)
			if err != nil {
				result.Dropped++
				l.logger.Warn("dropping malformed record",
					zap.Int("line", start+i+1),
					zap.Error(err),
				)
				continue
			}
			result.Records = append(result.Records, record)
		}

		l.logger.Debug("parse progress",
			zap.Int("parsed", end),
			zap.Int("total", len(lines)),
		)
	}

	l.logger.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("records", len(result.Records)),
		zap.Int("dropped", result.Dropped),
		zap.Int64("bytes", result.FileSize),
	)

	return result, nil
}

// ReadLines reads the file and returns its non-blank lines and size in
// bytes. A missing file returns (nil, 0, nil).
func ReadLines(path string) ([]string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("opening dump file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat dump file: %w", err)
	}

	lines := []string{} // non-nil so an empty file is distinguishable from a missing one
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading dump file: %w", err)
	}

	return lines, info.Size(), nil
}
