package service

import (
	"github.com/google/uuid"
	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/domain"
	"github.com/starwave-dev/starboard/internal/utils"
)

type ApplicationService interface {
	Submit(req api.ModeratorApplicationRequest) (string, error)
}

type Application struct {
	storage ApplicationStorage
}

type ApplicationStorage interface {
	SaveApplication(app domain.ModeratorApplication) (int64, error)
}

func NewApplication(storage ApplicationStorage) *Application {
	return &Application{storage: storage}
}

// Submit validates and stores a moderator application, returning the
// reference id handed back to the applicant.
func (s *Application) Submit(req api.ModeratorApplicationRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", err
	}

	reference := uuid.NewString()
	_, err := s.storage.SaveApplication(domain.ModeratorApplication{
		Reference:         reference,
		DisplayName:       req.DisplayName,
		ChannelHandle:     req.ChannelHandle,
		Timezone:          req.Timezone,
		ContributionFocus: req.ContributionFocus,
		Message:           req.Message,
	})
	if err != nil {
		return "", err
	}
	return reference, nil
}
