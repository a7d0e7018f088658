package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	defaultLoadTimeout = 20 * time.Second
	defaultCacheSize   = 64
	maxClipBytes       = 32 << 20 // a single verse recitation is well under this
	userAgent          = "hifdh/0.1 (+https://github.com/llehouerou/hifdh)"
)

var (
	// ErrUnsupportedFormat is returned for clips that are not MP3.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrLoadTimeout is returned when fetching a clip takes too long.
	ErrLoadTimeout = errors.New("audio load timed out")

	// ErrClipTooLarge is returned when a clip exceeds maxClipBytes.
	ErrClipTooLarge = errors.New("audio clip too large")
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Client    *http.Client
	Timeout   time.Duration // per fetch; defaults to 20s
	CacheSize int           // number of clips kept in memory; defaults to 64
	Logger    *log.Logger
}

// Loader fetches verse audio over HTTP or from disk and keeps recent clips in
// an LRU cache. Concurrent requests for the same URL share one fetch.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	cache   *lru.Cache[string, []byte]
	group   singleflight.Group
	logger  *log.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts LoaderOptions) (*Loader, error) {
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLoadTimeout
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	cache, err := lru.New[string, []byte](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}

	return &Loader{
		client:  opts.Client,
		timeout: opts.Timeout,
		cache:   cache,
		logger:  opts.Logger,
	}, nil
}

// IsSupported reports whether the clip at url can be decoded.
// URLs without an extension are assumed to be MP3.
func IsSupported(rawURL string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	return ext == "" || ext == ".mp3"
}

// Load returns the bytes of the clip at url.
//
// The fetch itself is bounded by the loader timeout and shared between callers;
// cancelling ctx only abandons the wait.
func (l *Loader) Load(ctx context.Context, rawURL string) ([]byte, error) {
	if !IsSupported(rawURL) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, rawURL)
	}
	if data, ok := l.cache.Get(rawURL); ok {
		return data, nil
	}

	ch := l.group.DoChan(rawURL, func() (any, error) {
		return l.fetch(rawURL)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Prefetch starts loading url in the background. Errors are logged and dropped;
// the clip is fetched again when it is actually played.
func (l *Loader) Prefetch(rawURL string) {
	if !IsSupported(rawURL) || l.cache.Contains(rawURL) {
		return
	}
	go func() {
		if _, err := l.Load(context.Background(), rawURL); err != nil {
			l.logger.Debug("prefetch failed", "url", rawURL, "err", err)
		}
	}()
}

// Cached reports whether url is already in memory.
func (l *Loader) Cached(rawURL string) bool {
	return l.cache.Contains(rawURL)
}

func (l *Loader) fetch(rawURL string) ([]byte, error) {
	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		data, err = l.fetchHTTP(rawURL)
	case strings.HasPrefix(rawURL, "file://"):
		data, err = readClip(strings.TrimPrefix(rawURL, "file://"))
	default:
		data, err = readClip(rawURL)
	}
	if err != nil {
		return nil, err
	}

	l.cache.Add(rawURL, data)
	l.logger.Debug("audio loaded", "url", rawURL, "size", humanize.Bytes(uint64(len(data))), "took", time.Since(start))
	return data, nil
}

func (l *Loader) fetchHTTP(rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %s", ErrLoadTimeout, l.timeout, rawURL)
		}
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch audio: status %d for %s", resp.StatusCode, rawURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxClipBytes+1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: %s", ErrLoadTimeout, l.timeout, rawURL)
		}
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(data) > maxClipBytes {
		return nil, fmt.Errorf("%w: %s", ErrClipTooLarge, rawURL)
	}
	return data, nil
}

func readClip(p string) ([]byte, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxClipBytes {
		return nil, fmt.Errorf("%w: %s", ErrClipTooLarge, p)
	}
	return os.ReadFile(p)
}
