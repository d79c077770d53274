package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/config"
	"github.com/starwave-dev/starboard/internal/domain"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/utils"
)

// Upper bound on insert retries when concurrent creations race for the
// same slug. The existence check keeps this loop short in practice.
const maxSlugAttempts = 10

// Summary prefix length used as the slug base when the title
// normalizes to nothing.
const slugSummaryPrefixLen = 40

// to mock service in tests
type AnnouncementService interface {
	Create(req api.CreateAnnouncementRequest) (*domain.Announcement, error)
	List(filter domain.Filter) ([]domain.Announcement, error)
	Dashboard() (domain.Metrics, []domain.Announcement, error)
}

type AnnouncementStorage interface {
	CreateAnnouncement(data domain.AnnouncementCreationData) (*domain.Announcement, error)
	SlugTaken(slug string, excludeId int64) (bool, error)
	ListAnnouncements(filter domain.Filter) ([]domain.Announcement, error)
	DashboardStats(recentLimit int) (domain.Metrics, []domain.Announcement, error)
}

type Announcement struct {
	storage AnnouncementStorage
	cfg     *config.Public
	now     func() time.Time
}

func NewAnnouncement(storage AnnouncementStorage, cfg *config.Public) *Announcement {
	return &Announcement{storage: storage, cfg: cfg, now: time.Now}
}

// Create validates the shared request shape used by both the board form
// and the JSON endpoint, stamps published_at server-side, assigns a
// unique slug, and persists. Nothing is written unless every field
// validation passes.
func (s *Announcement) Create(req api.CreateAnnouncementRequest) (*domain.Announcement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	data := domain.AnnouncementCreationData{
		Title:         req.Title,
		Slug:          req.Slug,
		Summary:       req.Summary,
		Content:       req.Content,
		AuthorDisplay: req.AuthorDisplay,
		Category:      req.Category,
		Tags:          domain.Tags(req.Tags),
		IsPinned:      req.IsPinned,
		PublishedAt:   s.now().UTC(),
	}
	if data.AuthorDisplay == "" {
		data.AuthorDisplay = domain.DefaultAuthor
	}
	if data.Category == "" {
		data.Category = domain.CategoryGeneral
	}
	if data.Tags == nil {
		data.Tags = domain.Tags{}
	}

	// An explicitly supplied slug is used verbatim; a collision there is
	// the caller's mistake, not something to repair with suffixes.
	if data.Slug != "" {
		created, err := s.storage.CreateAnnouncement(data)
		var conflict *internal_errors.UniquenessConflict
		if errors.As(err, &conflict) {
			validationErr := internal_errors.NewValidationError()
			validationErr.Add("slug", "This slug is already in use.")
			return nil, validationErr
		}
		return created, err
	}

	return s.createWithGeneratedSlug(data)
}

// createWithGeneratedSlug walks suffix candidates (base, base-2, base-3,
// …) until the insert lands. The SlugTaken pre-check is a best-effort
// shortcut; the unique index is the real arbiter, and a unique
// violation simply advances to the next candidate.
func (s *Announcement) createWithGeneratedSlug(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
	base := s.slugBase(data.Title, data.Summary)

	index := 1
	candidate := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		for {
			// excludeId 0: creation never matches an existing record
			taken, err := s.storage.SlugTaken(candidate, 0)
			if err != nil {
				return nil, err
			}
			if !taken {
				break
			}
			index++
			candidate = fmt.Sprintf("%s-%d", base, index)
		}

		data.Slug = candidate
		created, err := s.storage.CreateAnnouncement(data)
		if err == nil {
			return created, nil
		}
		var conflict *internal_errors.UniquenessConflict
		if !errors.As(err, &conflict) {
			return nil, err
		}
		// Lost the race to a concurrent creation; try the next suffix
		logger.Log.Warn("slug conflict on insert, retrying", "slug", candidate)
		index++
		candidate = fmt.Sprintf("%s-%d", base, index)
	}
	return nil, fmt.Errorf("could not assign a unique slug for %q", base)
}

func (s *Announcement) slugBase(title, summary string) string {
	base := utils.Slugify(title)
	if base == "" {
		base = utils.Slugify(utils.Truncate(summary, slugSummaryPrefixLen))
	}
	if base == "" {
		base = domain.FallbackSlug
	}
	// Leave headroom for a "-NN" suffix within the column bound
	maxBase := s.cfg.SlugMaxLen - 4
	if len(base) > maxBase {
		base = base[:maxBase]
	}
	return base
}

func (s *Announcement) List(filter domain.Filter) ([]domain.Announcement, error) {
	return s.storage.ListAnnouncements(filter)
}

const dashboardRecentLimit = 5

func (s *Announcement) Dashboard() (domain.Metrics, []domain.Announcement, error) {
	return s.storage.DashboardStats(dashboardRecentLimit)
}
