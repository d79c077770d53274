package domain

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type Tags = pq.StringArray // stored as a postgres text[], never a raw comma string

const DefaultAuthor = "Starwave Mod Team"

// FallbackSlug is used when neither title nor summary produce a slug base.
const FallbackSlug = "announcement"

// Category values match the original board taxonomy. Unknown values are
// accepted for storage and displayed via the title-cased fallback.
const (
	CategoryGeneral         = "general"
	CategoryEvents          = "events"
	CategoryReleases        = "releases"
	CategoryCreative        = "creative"
	CategoryBehindTheScenes = "behind_the_scenes"
)

type CategoryChoice struct {
	Value string
	Label string
}

// CategoryChoices is the ordered enum-to-label mapping shown in the
// board's category filter and creation form.
var CategoryChoices = []CategoryChoice{
	{CategoryGeneral, "General"},
	{CategoryEvents, "Events"},
	{CategoryReleases, "Releases"},
	{CategoryCreative, "Creative Projects"},
	{CategoryBehindTheScenes, "Behind the Scenes"},
}

var categoryLabels = func() map[string]string {
	m := make(map[string]string, len(CategoryChoices))
	for _, c := range CategoryChoices {
		m[c.Value] = c.Label
	}
	return m
}()

type Announcement struct {
	Id            int64
	Title         string
	Slug          string
	Summary       string
	Content       string
	AuthorDisplay string
	Category      string
	Tags          Tags
	IsPinned      bool
	PublishedAt   time.Time
}

// CategoryLabel returns the display label for the announcement's
// category, title-casing unmapped values.
func (a *Announcement) CategoryLabel() string {
	if label, ok := categoryLabels[a.Category]; ok {
		return label
	}
	return titleCase(a.Category)
}

func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// to iterate thru layers: handler -> service -> storage
type AnnouncementCreationData struct {
	Title         string
	Slug          string
	Summary       string
	Content       string
	AuthorDisplay string
	Category      string
	Tags          Tags
	IsPinned      bool
	PublishedAt   time.Time
}

// Filter narrows the announcement collection. Zero-value fields are
// no-ops, so filters compose in any order. Ordering is always
// pinned-first, most recent first.
type Filter struct {
	Search   string
	Category string
}

func (f Filter) Empty() bool {
	return f.Search == "" && f.Category == ""
}

// Metrics summarize a filtered result set, not the whole collection.
type Metrics struct {
	Total  int `json:"total"`
	Pinned int `json:"pinned"`
}
