package quran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIURL   = "https://api.quran.com/api/v4"
	DefaultAudioURL = "https://verses.quran.com/"
	DefaultReciter  = 7 // Mishari Rashid al-Afasy

	userAgent = "hifdh/0.1 (https://github.com/llehouerou/hifdh)"
	perPage   = 50

	// Retry configuration
	maxRetries   = 3
	initialDelay = 2 * time.Second
	maxDelay     = 30 * time.Second
)

// ErrAPIStatus is returned for non-retryable error responses.
var ErrAPIStatus = errors.New("quran API error")

// ClientOptions configures a Client.
type ClientOptions struct {
	APIURL            string
	AudioURL          string // prefix for relative audio paths
	HTTPClient        *http.Client
	RequestsPerSecond float64
	Logger            *log.Logger
}

// Client provides access to the quran.com v4 API.
type Client struct {
	apiURL     string
	audioURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger

	initialDelay time.Duration
}

// NewClient creates a new API client.
func NewClient(opts ClientOptions) *Client {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.AudioURL == "" {
		opts.AudioURL = DefaultAudioURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if !strings.HasSuffix(opts.AudioURL, "/") {
		opts.AudioURL += "/"
	}

	return &Client{
		apiURL:       strings.TrimRight(opts.APIURL, "/"),
		audioURL:     opts.AudioURL,
		httpClient:   opts.HTTPClient,
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:       opts.Logger,
		initialDelay: initialDelay,
	}
}

// Verses returns the verses of a mushaf page in reading order.
func (c *Client) Verses(ctx context.Context, page int) ([]Verse, error) {
	if err := ValidatePage(page); err != nil {
		return nil, err
	}

	var verses []Verse
	for p := 1; ; p++ {
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(perPage))
		params.Set("page", strconv.Itoa(p))
		params.Set("fields", "text_uthmani")

		var resp versesResponse
		if err := c.get(ctx, fmt.Sprintf("/verses/by_page/%d", page), params, &resp); err != nil {
			return nil, fmt.Errorf("fetch verses of page %d: %w", page, err)
		}
		for _, v := range resp.Verses {
			key, err := ParseVerseKey(v.VerseKey)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", page, err)
			}
			verses = append(verses, Verse{
				Index: len(verses),
				Key:   key.String(),
				Surah: key.Surah,
				Ayah:  key.Ayah,
				Juz:   v.JuzNumber,
				Text:  v.TextUthmani,
			})
		}
		if resp.Pagination.NextPage == nil {
			break
		}
	}
	return verses, nil
}

// Recitation returns the verse clips of a page for reciter, sorted by verse key,
// with relative URLs resolved against the audio base URL.
func (c *Client) Recitation(ctx context.Context, reciter, page int) ([]AudioFile, error) {
	if err := ValidatePage(page); err != nil {
		return nil, err
	}

	var files []AudioFile
	for p := 1; ; p++ {
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(perPage))
		params.Set("page", strconv.Itoa(p))

		var resp recitationResponse
		path := fmt.Sprintf("/recitations/%d/by_page/%d", reciter, page)
		if err := c.get(ctx, path, params, &resp); err != nil {
			return nil, fmt.Errorf("fetch recitation %d of page %d: %w", reciter, page, err)
		}
		files = append(files, resp.AudioFiles...)
		if resp.Pagination.NextPage == nil {
			break
		}
	}

	for i := range files {
		files[i].URL = c.resolveAudio(files[i].URL)
	}
	slices.SortStableFunc(files, func(a, b AudioFile) int {
		ka, errA := ParseVerseKey(a.VerseKey)
		kb, errB := ParseVerseKey(b.VerseKey)
		if errA != nil || errB != nil {
			return strings.Compare(a.VerseKey, b.VerseKey)
		}
		return ka.Compare(kb)
	})
	return files, nil
}

// Chapters returns all 114 surahs.
func (c *Client) Chapters(ctx context.Context) ([]Chapter, error) {
	var resp chaptersResponse
	if err := c.get(ctx, "/chapters", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch chapters: %w", err)
	}
	chapters := make([]Chapter, 0, len(resp.Chapters))
	for _, ch := range resp.Chapters {
		chapters = append(chapters, ch.toChapter())
	}
	return chapters, nil
}

// Chapter returns one surah.
func (c *Client) Chapter(ctx context.Context, n int) (Chapter, error) {
	if n < 1 || n > ChapterCount {
		return Chapter{}, fmt.Errorf("%w: %d", ErrChapterOutOfRange, n)
	}
	var resp chapterResponse
	if err := c.get(ctx, "/chapters/"+strconv.Itoa(n), nil, &resp); err != nil {
		return Chapter{}, fmt.Errorf("fetch chapter %d: %w", n, err)
	}
	return resp.Chapter.toChapter(), nil
}

// ChapterStartPage returns the page on which surah n begins.
func (c *Client) ChapterStartPage(ctx context.Context, n int) (int, error) {
	ch, err := c.Chapter(ctx, n)
	if err != nil {
		return 0, err
	}
	if err := ValidatePage(ch.StartPage); err != nil {
		return 0, fmt.Errorf("chapter %d: %w", n, err)
	}
	return ch.StartPage, nil
}

// Reciters lists the recitations offering per-verse audio.
func (c *Client) Reciters(ctx context.Context) ([]Reciter, error) {
	var resp recitersResponse
	if err := c.get(ctx, "/resources/recitations", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch reciters: %w", err)
	}
	return resp.Recitations, nil
}

func (c *Client) resolveAudio(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return c.audioURL + strings.TrimLeft(u, "/")
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.apiURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	resp, err := c.doRequestWithRetry(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrAPIStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRequestWithRetry executes a GET with exponential backoff.
// Retries on 5xx errors and network errors.
func (c *Client) doRequestWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request", "url", reqURL, "attempt", attempt, "delay", delay, "err", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay = min(delay*2, maxDelay)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		// Success or client error (4xx) - don't retry
		if resp.StatusCode < 500 {
			return resp, nil
		}

		// Server error (5xx) - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries+1, lastErr)
}
