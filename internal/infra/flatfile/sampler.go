package flatfile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"video-catalog-service/internal/domain"
)

// DefaultSampleCap is the maximum number of lines the sampler parses.
// Datasets at or below the cap get exact statistics; larger ones are
// stride-sampled and flagged approximate.
const DefaultSampleCap = 50000

// Sampler computes dataset statistics without materializing every
// record: it strides through the raw line list at an even interval and
// parses only the sampled lines. Distinct-value sets derived from a
// sample are subsets of the true sets; sampling cannot invent values.
type Sampler struct {
	parser    *Parser
	sampleCap int
	logger    *zap.Logger
}

// NewSampler creates a sampler. sampleCap <= 0 selects DefaultSampleCap.
func NewSampler(parser *Parser, sampleCap int, logger *zap.Logger) *Sampler {
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}
	return &Sampler{
		parser:    parser,
		sampleCap: sampleCap,
		logger:    logger,
	}
}

// Stats computes statistics for the dump file at path. A missing file
// yields empty exact stats.
func (s *Sampler) Stats(ctx context.Context, path string) (*domain.DatabaseStats, error) {
	lines, size, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		return &domain.DatabaseStats{
			Sources:    []string{},
			Categories: []string{},
			Performers: []string{},
		}, nil
	}

	total := len(lines)
	stride := 1
	approximate := false
	if total > s.sampleCap {
		stride = total / s.sampleCap
		approximate = true
	}

	sources := map[string]struct{}{}
	categories := map[string]struct{}{}
	performers := map[string]struct{}{}

	var (
		sampled     int
		sumDuration int64
		sumViews    int64
		earliest    time.Time
		latest      time.Time
	)

	for i := 0; i < total; i += stride {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("stats canceled: %w", err)
		}

		record, err := s.parser.ParseLine(lines[i])
		if err != nil {
			continue
		}
		sampled++

		sources[record.Source] = struct{}{}
		for _, c := range record.Categories {
			categories[c] = struct{}{}
		}
		for _, p := range record.Performers {
			performers[p] = struct{}{}
		}

		sumDuration += int64(record.Duration)
		sumViews += int64(record.Views)

		if record.HasUploadDate() {
			if earliest.IsZero() || record.Uploaded.Before(earliest) {
				earliest = record.Uploaded
			}
			if latest.IsZero() || record.Uploaded.After(latest) {
				latest = record.Uploaded
			}
		}
	}

	stats := &domain.DatabaseStats{
		TotalVideos: total,
		TotalSize:   size,
		Sources:     sortedKeys(sources),
		Categories:  sortedKeys(categories),
		Performers:  sortedKeys(performers),
		DateRange:   domain.DateRange{Earliest: earliest, Latest: latest},
		Approximate: approximate,
		SampleSize:  sampled,
	}

	if sampled > 0 {
		stats.AverageDuration = float64(sumDuration) / float64(sampled)
		if approximate {
			// Extrapolate from the sample mean; an estimate, not a sum.
			stats.TotalViews = int64(float64(sumViews) / float64(sampled) * float64(total))
		} else {
			stats.TotalViews = sumViews
		}
	}

	s.logger.Debug("stats computed",
		zap.Int("total_lines", total),
		zap.Int("sampled", sampled),
		zap.Int("stride", stride),
		zap.Bool("approximate", approximate),
	)

	return stats, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
