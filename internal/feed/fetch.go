package feed

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/csams/tmtext/internal/models"
	"github.com/hashicorp/go-retryablehttp"
	"pkt.systems/pslog"
)

// Fetcher loads map listings from files or over HTTP
type Fetcher struct {
	client *retryablehttp.Client
}

// NewFetcher creates a fetcher that retries failed requests up to retries times.
// Retry chatter goes to the logger at debug level.
func NewFetcher(log pslog.Logger, retries int) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil
	if log != nil {
		client.Logger = retryLogger{log: log}
	}
	return &Fetcher{client: client}
}

// Load reads a listing from src, which is either an http(s) URL or a file path
func (f *Fetcher) Load(ctx context.Context, src string) ([]*models.Map, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return f.Fetch(ctx, src)
	}
	return Open(src)
}

// Fetch downloads and parses a listing
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]*models.Map, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch catalog: unexpected status %s", resp.Status)
	}

	return ParseCatalog(resp.Body)
}

// Open parses a listing stored on disk
func Open(path string) ([]*models.Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()

	return ParseCatalog(file)
}

// retryLogger routes retryablehttp messages to pslog with everything but
// errors demoted to debug
type retryLogger struct {
	log pslog.Logger
}

func (l retryLogger) Error(msg string, kv ...interface{}) { l.log.Error(msg, kv...) }
func (l retryLogger) Info(msg string, kv ...interface{})  { l.log.Debug(msg, kv...) }
func (l retryLogger) Debug(msg string, kv ...interface{}) { l.log.Debug(msg, kv...) }
func (l retryLogger) Warn(msg string, kv ...interface{})  { l.log.Debug(msg, kv...) }
