// Package fetch downloads streaming-history exports over HTTP.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/time/rate"

	"github.com/ademuri/listening-history/internal/history"
	"github.com/ademuri/listening-history/internal/logger"
)

// Config controls download retries. The zero value uses the defaults below.
type Config struct {
	Client   *http.Client
	Attempts uint
	// Interval is the minimum spacing between requests, including retries.
	Interval time.Duration
}

const (
	defaultAttempts = 3
	defaultInterval = 1 * time.Second
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Code)
}

var errPermanent = errors.New("not retryable")

func retryable(err error) bool {
	if errors.Is(err, errPermanent) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Code/100 == 5
	}
	return true
}

// IsRemote reports whether source names an http(s) URL rather than a local file.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Dataset downloads url and parses it as a history export. The format is inferred from the
// URL path. Server errors and transport failures are retried; 4xx responses are not.
func Dataset(ctx context.Context, url string, config Config) (history.Dataset, error) {
	body, err := Download(ctx, url, config)
	if err != nil {
		return history.Dataset{}, err
	}
	ds, err := history.Load(bytes.NewReader(body), history.FormatForPath(url))
	if err != nil {
		return history.Dataset{}, fmt.Errorf("%s: %w", url, err)
	}
	return ds, nil
}

// Download fetches the full body at url.
func Download(ctx context.Context, url string, config Config) ([]byte, error) {
	client := config.Client
	if client == nil {
		client = http.DefaultClient
	}
	attempts := config.Attempts
	if attempts == 0 {
		attempts = defaultAttempts
	}
	interval := config.Interval
	if interval == 0 {
		interval = defaultInterval
	}

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	var body []byte
	err := retry.Do(
		func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			var err error
			body, err = get(ctx, client, url)
			return err
		},
		retry.Attempts(attempts),
		retry.Delay(0),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("download failed, retrying", "url", url, "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w: %w", errPermanent, err)
	}
	req.Header.Set("User-Agent", "listening-history/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, nil
}
