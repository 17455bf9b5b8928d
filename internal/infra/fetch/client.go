// Package fetch downloads the catalog dump from a remote source so the
// local backing file can be refreshed without shelling out.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ClientConfig holds configuration for the dump fetch client.
type ClientConfig struct {
	URL     string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client fetches the dump file over HTTP with retries and a circuit
// breaker, and writes it to disk atomically.
type Client struct {
	url    string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a dump fetch client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	cb := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:        "dump-fetch",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	})

	return &Client{
		url:    cfg.URL,
		client: client,
		cb:     cb,
		logger: logger,
	}
}

// Download fetches the dump and writes it to destPath via a temp file
// and rename, so a concurrent loader never reads a half-written dump.
func (c *Client) Download(ctx context.Context, destPath string) error {
	start := time.Now()

	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			Get(c.url)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("dump source returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("dump fetch failed",
			zap.String("url", c.url),
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return fmt.Errorf("fetching dump: %w", err)
	}

	if err := writeAtomic(destPath, resp.Body()); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}

	c.logger.Info("dump fetch completed",
		zap.String("path", destPath),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

func writeAtomic(destPath string, data []byte) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".dump-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, destPath)
}
