package quran

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const defaultPageCache = 32

type pageKey struct {
	page    int
	reciter int
}

// Library loads pages with their audio and keeps recent ones in memory.
// It is the audio source of the playback driver.
type Library struct {
	client *Client
	logger *log.Logger
	pages  *lru.Cache[pageKey, *Page]
	group  singleflight.Group

	mu       sync.Mutex
	chapters []Chapter
}

// NewLibrary creates a Library caching up to cacheSize pages.
func NewLibrary(client *Client, cacheSize int, logger *log.Logger) (*Library, error) {
	if cacheSize <= 0 {
		cacheSize = defaultPageCache
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	pages, err := lru.New[pageKey, *Page](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create page cache: %w", err)
	}
	return &Library{client: client, logger: logger, pages: pages}, nil
}

// LoadPage returns page number with audio URLs for reciter.
//
// A page whose recitation cannot be fetched is still returned, with every verse
// lacking audio; it is not cached so a later load retries.
func (l *Library) LoadPage(ctx context.Context, number, reciter int) (*Page, error) {
	if err := ValidatePage(number); err != nil {
		return nil, err
	}
	key := pageKey{page: number, reciter: reciter}
	if p, ok := l.pages.Get(key); ok {
		return p, nil
	}

	v, err, _ := l.group.Do(fmt.Sprintf("%d/%d", number, reciter), func() (any, error) {
		return l.fetch(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Page), nil
}

// Cached returns a page already in memory.
func (l *Library) Cached(number, reciter int) (*Page, bool) {
	return l.pages.Peek(pageKey{page: number, reciter: reciter})
}

// AudioURL implements playback.AudioSource for cached pages.
func (l *Library) AudioURL(pageID, verseIndex, reciterID int) (string, bool) {
	p, ok := l.pages.Peek(pageKey{page: pageID, reciter: reciterID})
	if !ok {
		return "", false
	}
	v, ok := p.Verse(verseIndex)
	if !ok || !v.HasAudio() {
		return "", false
	}
	return v.AudioURL, true
}

// ChapterStartPage returns the first page of surah n, from the chapter list
// when it is already loaded.
func (l *Library) ChapterStartPage(ctx context.Context, n int) (int, error) {
	l.mu.Lock()
	chapters := l.chapters
	l.mu.Unlock()
	for _, ch := range chapters {
		if ch.ID == n && ValidatePage(ch.StartPage) == nil {
			return ch.StartPage, nil
		}
	}
	return l.client.ChapterStartPage(ctx, n)
}

// Chapters returns all surahs. The list is fetched once; a failed fetch is
// retried on the next call.
func (l *Library) Chapters(ctx context.Context) ([]Chapter, error) {
	l.mu.Lock()
	if l.chapters != nil {
		defer l.mu.Unlock()
		return l.chapters, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do("chapters", func() (any, error) {
		return l.client.Chapters(ctx)
	})
	if err != nil {
		return nil, err
	}
	chapters := v.([]Chapter)

	l.mu.Lock()
	l.chapters = chapters
	l.mu.Unlock()
	return chapters, nil
}

// Reciters lists the available recitations.
func (l *Library) Reciters(ctx context.Context) ([]Reciter, error) {
	return l.client.Reciters(ctx)
}

// ChapterAt finds surah number surah in chapters.
func ChapterAt(chapters []Chapter, surah int) (Chapter, bool) {
	for _, ch := range chapters {
		if ch.ID == surah {
			return ch, true
		}
	}
	return Chapter{}, false
}

func (l *Library) fetch(ctx context.Context, key pageKey) (*Page, error) {
	var (
		verses   []Verse
		files    []AudioFile
		audioErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		verses, err = l.client.Verses(gctx, key.page)
		return err
	})
	g.Go(func() error {
		files, audioErr = l.client.Recitation(gctx, key.reciter, key.page)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byKey := make(map[string]string, len(files))
	for _, f := range files {
		byKey[f.VerseKey] = f.URL
	}
	for i := range verses {
		verses[i].AudioURL = byKey[verses[i].Key]
	}

	page := &Page{Number: key.page, Reciter: key.reciter, Verses: verses}
	if audioErr != nil {
		l.logger.Warn("recitation unavailable", "page", key.page, "reciter", key.reciter, "err", audioErr)
		return page, nil
	}

	l.pages.Add(key, page)
	l.logger.Debug("page loaded", "page", key.page, "reciter", key.reciter, "verses", len(verses), "clips", len(files))
	return page, nil
}
