package service

import (
	"errors"
	"testing"
	"time"

	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/config"
	"github.com/starwave-dev/starboard/internal/domain"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockAnnouncementStorage struct {
	MockCreateAnnouncement func(data domain.AnnouncementCreationData) (*domain.Announcement, error)
	MockSlugTaken          func(slug string, excludeId int64) (bool, error)
	MockListAnnouncements  func(filter domain.Filter) ([]domain.Announcement, error)
	MockDashboardStats     func(recentLimit int) (domain.Metrics, []domain.Announcement, error)
}

func (m *MockAnnouncementStorage) CreateAnnouncement(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
	if m.MockCreateAnnouncement != nil {
		return m.MockCreateAnnouncement(data)
	}
	created := announcementFrom(data)
	created.Id = 1
	return &created, nil
}

func announcementFrom(data domain.AnnouncementCreationData) domain.Announcement {
	return domain.Announcement{
		Title:         data.Title,
		Slug:          data.Slug,
		Summary:       data.Summary,
		Content:       data.Content,
		AuthorDisplay: data.AuthorDisplay,
		Category:      data.Category,
		Tags:          data.Tags,
		IsPinned:      data.IsPinned,
		PublishedAt:   data.PublishedAt,
	}
}

func (m *MockAnnouncementStorage) SlugTaken(slug string, excludeId int64) (bool, error) {
	if m.MockSlugTaken != nil {
		return m.MockSlugTaken(slug, excludeId)
	}
	return false, nil // Default behavior
}

func (m *MockAnnouncementStorage) ListAnnouncements(filter domain.Filter) ([]domain.Announcement, error) {
	if m.MockListAnnouncements != nil {
		return m.MockListAnnouncements(filter)
	}
	return nil, nil
}

func (m *MockAnnouncementStorage) DashboardStats(recentLimit int) (domain.Metrics, []domain.Announcement, error) {
	if m.MockDashboardStats != nil {
		return m.MockDashboardStats(recentLimit)
	}
	return domain.Metrics{}, nil, nil
}

func testPublicConfig() *config.Public {
	return &config.Public{TitleMaxLen: 150, SlugMaxLen: 180, SummaryMaxLen: 280, AuthorMaxLen: 80}
}

func newTestService(storage *MockAnnouncementStorage, now time.Time) *Announcement {
	s := NewAnnouncement(storage, testPublicConfig())
	s.now = func() time.Time { return now }
	return s
}

func validCreateRequest() api.CreateAnnouncementRequest {
	return api.CreateAnnouncementRequest{
		Title:   "Server Maintenance",
		Summary: "Short downtime tonight",
		Content: "We will be down for an hour.",
	}
}

func TestAnnouncementCreate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	t.Run("defaults applied and published_at server stamped", func(t *testing.T) {
		var saved domain.AnnouncementCreationData
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				saved = data
				created := announcementFrom(data)
				created.Id = 1
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		created, err := s.Create(validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultAuthor, saved.AuthorDisplay)
		assert.Equal(t, domain.CategoryGeneral, saved.Category)
		assert.Equal(t, domain.Tags{}, saved.Tags)
		assert.Equal(t, now.UTC(), saved.PublishedAt)
		assert.Equal(t, "server-maintenance", created.Slug)
	})

	t.Run("explicit fields kept", func(t *testing.T) {
		var saved domain.AnnouncementCreationData
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				saved = data
				created := announcementFrom(data)
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		req := validCreateRequest()
		req.AuthorDisplay = "DJ Nova"
		req.Category = domain.CategoryEvents
		req.Tags = api.FlexibleTags{"maintenance", "infra"}
		req.IsPinned = true
		_, err := s.Create(req)

		require.NoError(t, err)
		assert.Equal(t, "DJ Nova", saved.AuthorDisplay)
		assert.Equal(t, domain.CategoryEvents, saved.Category)
		assert.Equal(t, domain.Tags{"maintenance", "infra"}, saved.Tags)
		assert.True(t, saved.IsPinned)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		storageCalled := false
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				storageCalled = true
				return nil, nil
			},
			MockSlugTaken: func(slug string, excludeId int64) (bool, error) {
				storageCalled = true
				return false, nil
			},
		}
		s := newTestService(storage, now)

		_, err := s.Create(api.CreateAnnouncementRequest{Summary: "no title", Content: "body"})

		var validationErr *internal_errors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "title")
		assert.False(t, storageCalled)
	})

	t.Run("slug falls back to summary prefix", func(t *testing.T) {
		var saved domain.AnnouncementCreationData
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				saved = data
				created := announcementFrom(data)
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		req := validCreateRequest()
		req.Title = "!!!"
		req.Summary = "Broadcast schedule changes for the upcoming season finale"
		_, err := s.Create(req)

		require.NoError(t, err)
		// slug base comes from the first 40 bytes of the summary
		assert.Equal(t, "broadcast-schedule-changes-for-the-upcom", saved.Slug)
	})

	t.Run("slug falls back to constant when nothing survives", func(t *testing.T) {
		var saved domain.AnnouncementCreationData
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				saved = data
				created := announcementFrom(data)
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		req := validCreateRequest()
		req.Title = "???"
		req.Summary = "!!!"
		_, err := s.Create(req)

		require.NoError(t, err)
		assert.Equal(t, domain.FallbackSlug, saved.Slug)
	})

	t.Run("taken slugs get numeric suffixes", func(t *testing.T) {
		taken := map[string]bool{"server-maintenance": true, "server-maintenance-2": true}
		var saved domain.AnnouncementCreationData
		storage := &MockAnnouncementStorage{
			MockSlugTaken: func(slug string, excludeId int64) (bool, error) {
				return taken[slug], nil
			},
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				saved = data
				created := announcementFrom(data)
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		_, err := s.Create(validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "server-maintenance-3", saved.Slug)
	})

	t.Run("insert conflict retries with next suffix", func(t *testing.T) {
		// Pre-check says free, but a concurrent writer wins the first insert
		attempts := []string{}
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				attempts = append(attempts, data.Slug)
				if len(attempts) == 1 {
					return nil, &internal_errors.UniquenessConflict{Constraint: "announcements_slug_key"}
				}
				created := announcementFrom(data)
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		created, err := s.Create(validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, []string{"server-maintenance", "server-maintenance-2"}, attempts)
		assert.Equal(t, "server-maintenance-2", created.Slug)
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				return nil, &internal_errors.UniquenessConflict{Constraint: "announcements_slug_key"}
			},
		}
		s := newTestService(storage, now)

		_, err := s.Create(validCreateRequest())

		assert.Error(t, err)
	})

	t.Run("long title leaves suffix headroom", func(t *testing.T) {
		var saved domain.AnnouncementCreationData
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				saved = data
				created := announcementFrom(data)
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		req := validCreateRequest()
		for len(req.Title) < 150 {
			req.Title += "x"
		}
		_, err := s.Create(req)

		require.NoError(t, err)
		assert.LessOrEqual(t, len(saved.Slug), 176)
	})

	t.Run("explicit slug used verbatim", func(t *testing.T) {
		slugChecked := false
		var saved domain.AnnouncementCreationData
		storage := &MockAnnouncementStorage{
			MockSlugTaken: func(slug string, excludeId int64) (bool, error) {
				slugChecked = true
				return false, nil
			},
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				saved = data
				created := announcementFrom(data)
				return &created, nil
			},
		}
		s := newTestService(storage, now)

		req := validCreateRequest()
		req.Slug = "my-chosen-slug"
		_, err := s.Create(req)

		require.NoError(t, err)
		assert.Equal(t, "my-chosen-slug", saved.Slug)
		assert.False(t, slugChecked)
	})

	t.Run("explicit slug conflict is a validation error", func(t *testing.T) {
		storage := &MockAnnouncementStorage{
			MockCreateAnnouncement: func(data domain.AnnouncementCreationData) (*domain.Announcement, error) {
				return nil, &internal_errors.UniquenessConflict{Constraint: "announcements_slug_key"}
			},
		}
		s := newTestService(storage, now)

		req := validCreateRequest()
		req.Slug = "taken"
		_, err := s.Create(req)

		var validationErr *internal_errors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"This slug is already in use."}, validationErr.Fields["slug"])
	})

	t.Run("storage error passed through", func(t *testing.T) {
		mockErr := errors.New("Mock")
		storage := &MockAnnouncementStorage{
			MockSlugTaken: func(slug string, excludeId int64) (bool, error) {
				return false, mockErr
			},
		}
		s := newTestService(storage, now)

		_, err := s.Create(validCreateRequest())

		assert.ErrorIs(t, err, mockErr)
	})
}

func TestAnnouncementList(t *testing.T) {
	t.Run("filter passed through", func(t *testing.T) {
		var gotFilter domain.Filter
		storage := &MockAnnouncementStorage{
			MockListAnnouncements: func(filter domain.Filter) ([]domain.Announcement, error) {
				gotFilter = filter
				return []domain.Announcement{{Id: 1}}, nil
			},
		}
		s := NewAnnouncement(storage, testPublicConfig())

		got, err := s.List(domain.Filter{Search: "tour", Category: domain.CategoryEvents})

		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, domain.Filter{Search: "tour", Category: domain.CategoryEvents}, gotFilter)
	})
}

func TestAnnouncementDashboard(t *testing.T) {
	storage := &MockAnnouncementStorage{
		MockDashboardStats: func(recentLimit int) (domain.Metrics, []domain.Announcement, error) {
			assert.Equal(t, dashboardRecentLimit, recentLimit)
			return domain.Metrics{Total: 4, Pinned: 2}, []domain.Announcement{{Id: 9}}, nil
		},
	}
	s := NewAnnouncement(storage, testPublicConfig())

	metrics, recent, err := s.Dashboard()

	require.NoError(t, err)
	assert.Equal(t, domain.Metrics{Total: 4, Pinned: 2}, metrics)
	assert.Len(t, recent, 1)
}
