package pg

import (
	"time"

	"github.com/starwave-dev/starboard/internal/domain"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/utils"
)

// seedAnnouncements inserts sample announcements on an empty board so a
// fresh deployment has something to show. Skipped once any record exists.
func (s *Storage) seedAnnouncements() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM announcements").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []domain.AnnouncementCreationData{
		{
			Title:    "Starwave Live: Solaris Tour Announced",
			Summary:  "We are bringing the Solaris concert experience online with a three-date livestream run.",
			Content:  "Mark your calendars for April 29, May 6, and May 13. Each night features a unique setlist, backstage Q&A, and exclusive merch drops.",
			Category: domain.CategoryEvents,
			Tags:     domain.Tags{"livestream", "tour", "solaristour"},
			IsPinned: true,
		},
		{
			Title:    "Community Remix Challenge",
			Summary:  "Submit your best reinterpretation of “Neon Afterglow” for a chance to be featured on stream.",
			Content:  "Grab the stems from the resources channel and post your entries by May 20. Winners receive a signed vinyl and Discord flair.",
			Category: domain.CategoryCreative,
			Tags:     domain.Tags{"remix", "contest"},
		},
		{
			Title:    "Moderator Applications Open",
			Summary:  "We are expanding the crew with community guides, event hosts, and lore archivists.",
			Content:  "If you love supporting fans, helping organize events, or keeping conversation welcoming, fill out the application form. Interviews begin next week.",
			Category: domain.CategoryGeneral,
			Tags:     domain.Tags{"moderation", "community"},
			IsPinned: true,
		},
		{
			Title:    "Synth Lab Sneak Peek",
			Summary:  "A preview of the new sound design tools powering the upcoming EP.",
			Content:  "Watch our producer dive into custom patches, modular rigs, and the AI-assisted sequencer powering the next era of Starwave.",
			Category: domain.CategoryBehindTheScenes,
			Tags:     domain.Tags{"studio", "preview"},
		},
	}

	now := time.Now().UTC()
	for i, sample := range samples {
		sample.AuthorDisplay = domain.DefaultAuthor
		sample.Slug = utils.Slugify(sample.Title)
		sample.PublishedAt = now.Add(-time.Duration(i) * 24 * time.Hour)
		if _, err := s.CreateAnnouncement(sample); err != nil {
			return err
		}
	}
	logger.Log.Info("seeded sample announcements", "count", len(samples))
	return nil
}
