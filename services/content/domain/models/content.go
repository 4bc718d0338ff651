package models

import "time"

// Kind classifies a content item by the section of the site it lives under.
type Kind string

const (
	KindArticle Kind = "article"
	KindReport  Kind = "report"
	KindStory   Kind = "story"
	KindService Kind = "service"
)

// kindPaths maps a content kind to its public URL segment.
var kindPaths = map[Kind]string{
	KindArticle: "blog",
	KindReport:  "market-reports",
	KindStory:   "origin-stories",
	KindService: "services",
}

// PathSegment returns the URL segment for the kind, falling back to the raw
// kind string for unknown values.
func (k Kind) PathSegment() string {
	if p, ok := kindPaths[k]; ok {
		return p
	}
	return string(k)
}

// ContentItem is a published CMS page as seen by the relevance engine.
// Items are authored upstream and read-only here; slug is unique within a
// locale+kind pair.
type ContentItem struct {
	Slug        string
	Kind        Kind
	Locale      string
	Title       string
	Description string
	Excerpt     string
	Category    string
	Tags        []string
	PublishedAt time.Time
	Featured    bool
}

// URL builds the public path for the item: /{locale}/{section}/{slug}.
func (i *ContentItem) URL() string {
	return "/" + i.Locale + "/" + i.Kind.PathSegment() + "/" + i.Slug
}

// Summary is the related-content projection returned to page renderers.
type Summary struct {
	Slug        string   `json:"slug"`
	Kind        Kind     `json:"kind"`
	Locale      string   `json:"locale"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Score       int      `json:"score"`
}
