package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/starwave-dev/starboard/internal/domain"
	"github.com/starwave-dev/starboard/internal/utils"
)

// FlexibleTags accepts either a comma separated string or an already
// structured list and resolves both into one canonical []string before
// the value reaches the entity.
type FlexibleTags []string

func (t *FlexibleTags) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = utils.SplitAndTrim(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

// Join renders the tags back into the comma separated form shown in
// text inputs.
func (t FlexibleTags) Join() string {
	return strings.Join(t, ", ")
}

// CreateAnnouncementRequest is the shared create payload for the board
// form and the JSON endpoint. Category intentionally has no oneof rule:
// unrecognized values are stored and displayed via the fallback label.
type CreateAnnouncementRequest struct {
	Title         string       `json:"title" validate:"required,max=150"`
	Slug          string       `json:"slug" validate:"omitempty,max=180"`
	Summary       string       `json:"summary" validate:"required,max=280"`
	Content       string       `json:"content" validate:"required"`
	AuthorDisplay string       `json:"author_display" validate:"max=80"`
	Category      string       `json:"category" validate:"max=32"`
	Tags          FlexibleTags `json:"tags"`
	IsPinned      bool         `json:"is_pinned"`
}

// AnnouncementResponse is the single source of truth for the external
// JSON shape of an announcement, used identically by the feed, the
// create endpoint, and the board page's initial payload.
type AnnouncementResponse struct {
	Id            int64    `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	Category      string   `json:"category"`
	CategoryLabel string   `json:"category_label"`
	Tags          []string `json:"tags"`
	IsPinned      bool     `json:"is_pinned"`
	PublishedAt   string   `json:"published_at"`
}

func NewAnnouncementResponse(a domain.Announcement) AnnouncementResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return AnnouncementResponse{
		Id:            a.Id,
		Slug:          a.Slug,
		Title:         a.Title,
		Summary:       a.Summary,
		Content:       a.Content,
		Author:        a.AuthorDisplay,
		Category:      a.Category,
		CategoryLabel: a.CategoryLabel(),
		Tags:          tags,
		IsPinned:      a.IsPinned,
		PublishedAt:   a.PublishedAt.Format(time.RFC3339),
	}
}

func NewAnnouncementResponses(announcements []domain.Announcement) []AnnouncementResponse {
	out := make([]AnnouncementResponse, len(announcements))
	for i, a := range announcements {
		out[i] = NewAnnouncementResponse(a)
	}
	return out
}

type FeedResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
}

type CreateAnnouncementResponse struct {
	Success      bool                  `json:"success"`
	Announcement *AnnouncementResponse `json:"announcement,omitempty"`
	Errors       map[string][]string   `json:"errors,omitempty"`
}

// Auth and application payloads

type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=80"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ModeratorApplicationRequest struct {
	DisplayName       string `json:"display_name" validate:"required,max=80"`
	ChannelHandle     string `json:"channel_handle" validate:"required,max=64"`
	Timezone          string `json:"timezone" validate:"required,max=48"`
	ContributionFocus string `json:"contribution_focus" validate:"required,oneof=events community creative tech"`
	Message           string `json:"message" validate:"required"`
}
