package pg

import (
	"github.com/starwave-dev/starboard/internal/domain"
)

func (s *Storage) SaveApplication(app domain.ModeratorApplication) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
	INSERT INTO moderator_applications(reference, display_name, channel_handle, timezone, contribution_focus, message)
	VALUES($1, $2, $3, $4, $5, $6)
	RETURNING id`,
		app.Reference, app.DisplayName, app.ChannelHandle, app.Timezone, app.ContributionFocus, app.Message,
	).Scan(&id)
	return id, err
}
