package catalog

import (
	"net/url"
	"regexp"
	"strings"

	"ParasiteAtlas/internal/wiki"
)

const placeholderImageURL = "https://via.placeholder.com/300x200/1a1a1a/00ff88?text="

var (
	whitespaceRun      = regexp.MustCompile(`\s+`)
	scientificNameExpr = regexp.MustCompile(`[A-Z][a-z]+ [a-z]+`)
)

// Slug derives the entry id from a lookup title.
func Slug(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(title), "-")
}

// FromSummary turns a page summary fetched under title into an Entry.
// Anything but a standard article is rejected.
func FromSummary(title string, s wiki.Summary) (Entry, bool) {
	if !s.IsStandard() {
		return Entry{}, false
	}

	name := s.TitleOr(title)
	extract := s.ExtractText()

	image, ok := s.ThumbnailURL()
	if !ok {
		image = placeholderImage(name)
	}

	return Entry{
		ID:             Slug(title),
		Name:           name,
		Category:       Categorize(extract, title),
		Description:    extract,
		Image:          image,
		Symptoms:       Symptoms(extract),
		Habitat:        Habitat(extract),
		Lifecycle:      Lifecycle(extract),
		ScientificName: scientificName(extract, title),
		Prevalence:     Prevalence(extract),
	}, true
}

func scientificName(extract, title string) string {
	if m := scientificNameExpr.FindString(extract); m != "" {
		return m
	}
	return title
}

func placeholderImage(title string) string {
	return placeholderImageURL + strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
}
