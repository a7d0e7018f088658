// Package quran provides page data and verse audio from the quran.com API.
package quran

// Verse is one verse of a mushaf page.
type Verse struct {
	Index    int    // position on the page, 0-based
	Key      string // "surah:ayah"
	Surah    int
	Ayah     int
	Juz      int
	Text     string // Uthmani script, may be empty
	AudioURL string // empty when the reciter has no clip for this verse
}

// HasAudio reports whether the verse can be played.
func (v Verse) HasAudio() bool { return v.AudioURL != "" }

// Page is an immutable list of verses on a Madani mushaf page.
type Page struct {
	Number  int
	Reciter int
	Verses  []Verse
}

// ID returns the page number.
func (p *Page) ID() int { return p.Number }

// VerseCount returns the number of verses on the page.
func (p *Page) VerseCount() int { return len(p.Verses) }

// Verse returns the verse at index.
func (p *Page) Verse(index int) (Verse, bool) {
	if index < 0 || index >= len(p.Verses) {
		return Verse{}, false
	}
	return p.Verses[index], true
}

// FirstKey and LastKey describe the page range, e.g. "2:6" to "2:16".
func (p *Page) FirstKey() string {
	if len(p.Verses) == 0 {
		return ""
	}
	return p.Verses[0].Key
}

func (p *Page) LastKey() string {
	if len(p.Verses) == 0 {
		return ""
	}
	return p.Verses[len(p.Verses)-1].Key
}

// Chapter is a surah.
type Chapter struct {
	ID             int
	Name           string // transliterated
	TranslatedName string
	VersesCount    int
	StartPage      int
	EndPage        int
}

// Reciter is a recitation available for per-verse audio.
type Reciter struct {
	ID    int    `json:"id"`
	Name  string `json:"reciter_name"`
	Style string `json:"style"`
}

// AudioFile is one verse clip of a recitation.
type AudioFile struct {
	VerseKey string `json:"verse_key"`
	URL      string `json:"url"`
}

type pagination struct {
	CurrentPage int  `json:"current_page"`
	NextPage    *int `json:"next_page"`
	TotalPages  int  `json:"total_pages"`
}

type versesResponse struct {
	Verses []struct {
		ID          int    `json:"id"`
		VerseNumber int    `json:"verse_number"`
		VerseKey    string `json:"verse_key"`
		ChapterID   int    `json:"chapter_id"`
		JuzNumber   int    `json:"juz_number"`
		TextUthmani string `json:"text_uthmani"`
	} `json:"verses"`
	Pagination pagination `json:"pagination"`
}

type recitationResponse struct {
	AudioFiles []AudioFile `json:"audio_files"`
	Pagination pagination  `json:"pagination"`
}

type chapterResult struct {
	ID             int    `json:"id"`
	NameSimple     string `json:"name_simple"`
	VersesCount    int    `json:"verses_count"`
	Pages          []int  `json:"pages"`
	TranslatedName struct {
		Name string `json:"name"`
	} `json:"translated_name"`
}

type chaptersResponse struct {
	Chapters []chapterResult `json:"chapters"`
}

type chapterResponse struct {
	Chapter chapterResult `json:"chapter"`
}

type recitersResponse struct {
	Recitations []Reciter `json:"recitations"`
}

func (c chapterResult) toChapter() Chapter {
	ch := Chapter{
		ID:             c.ID,
		Name:           c.NameSimple,
		TranslatedName: c.TranslatedName.Name,
		VersesCount:    c.VersesCount,
	}
	if len(c.Pages) > 0 {
		ch.StartPage = c.Pages[0]
		ch.EndPage = c.Pages[len(c.Pages)-1]
	}
	return ch
}
