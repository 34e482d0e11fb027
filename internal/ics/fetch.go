package ics

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	appLog "eventdate/internal/log"
)

// ErrNotCached is returned when a feed answers 304 but no earlier body is held.
var ErrNotCached = errors.New("ics: not modified but nothing cached")

type feedEntry struct {
	etag         string
	lastModified string
	body         []byte
}

// Fetcher downloads ICS feeds, revalidating with ETag / Last-Modified so a
// scheduled rescan of an unchanged feed costs one 304.
type Fetcher struct {
	client *http.Client

	mu    sync.Mutex
	feeds map[string]feedEntry
}

// NewFetcher returns a Fetcher using client, or a 15s-timeout client if nil.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{client: client, feeds: make(map[string]feedEntry)}
}

// IsURL reports whether s names an http(s) feed rather than a local file.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch returns the feed body. On a network error or non-OK status a
// previously fetched body is returned instead, if there is one.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if feedURL == "" {
		return nil, errors.New("ics: feed URL is empty")
	}

	f.mu.Lock()
	cached, haveCached := f.feeds[feedURL]
	f.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ics: build request")
	}
	if cached.etag != "" {
		req.Header.Set("If-None-Match", cached.etag)
	}
	if cached.lastModified != "" {
		req.Header.Set("If-Modified-Since", cached.lastModified)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if haveCached {
			appLog.Warn("ics fetch failed, using cached body", "url", redactURL(feedURL), "error", err)
			return cached.body, nil
		}
		return nil, errors.Wrapf(err, "ics: fetch %s", redactURL(feedURL))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "ics: read body")
		}
		f.mu.Lock()
		f.feeds[feedURL] = feedEntry{
			etag:         resp.Header.Get("ETag"),
			lastModified: resp.Header.Get("Last-Modified"),
			body:         body,
		}
		f.mu.Unlock()
		appLog.Info("ics fetch success", "url", redactURL(feedURL), "bytes", len(body))
		return body, nil

	case http.StatusNotModified:
		if !haveCached {
			return nil, ErrNotCached
		}
		appLog.Debug("ics feed not modified", "url", redactURL(feedURL))
		return cached.body, nil

	default:
		if haveCached {
			appLog.Warn("ics fetch non-OK, using cached body", "url", redactURL(feedURL), "status", resp.StatusCode)
			return cached.body, nil
		}
		return nil, errors.Errorf("ics: fetch %s: %s", redactURL(feedURL), resp.Status)
	}
}

// redactURL keeps only scheme and host; feed paths often embed tokens.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "ics://...(redacted)"
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}
