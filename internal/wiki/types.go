package wiki

// SearchHit is a search result that carried a usable title.
type SearchHit struct {
	Title  string
	PageID *int64
}

type searchResponse struct {
	Query *struct {
		Search []struct {
			Title  *string `json:"title"`
			PageID *int64  `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

const TypeStandard = "standard"

// Summary is the page summary record. Any field may be missing upstream,
// so read it through the accessors.
type Summary struct {
	Type      *string    `json:"type"`
	Title     *string    `json:"title"`
	Extract   *string    `json:"extract"`
	Thumbnail *Thumbnail `json:"thumbnail"`
}

type Thumbnail struct {
	Source *string `json:"source"`
	Width  *int    `json:"width"`
	Height *int    `json:"height"`
}

func (s Summary) IsStandard() bool {
	return s.Type != nil && *s.Type == TypeStandard
}

func (s Summary) TitleOr(def string) string {
	if s.Title == nil || *s.Title == "" {
		return def
	}
	return *s.Title
}

func (s Summary) ExtractText() string {
	if s.Extract == nil {
		return ""
	}
	return *s.Extract
}

func (s Summary) ThumbnailURL() (string, bool) {
	if s.Thumbnail == nil || s.Thumbnail.Source == nil || *s.Thumbnail.Source == "" {
		return "", false
	}
	return *s.Thumbnail.Source, true
}
