package domain

import "time"

type User struct {
	Id          int64
	Email       string
	DisplayName string
	PassHash    string
	Admin       bool
	CreatedAt   time.Time
}

type Credentials struct {
	Email    string
	Password string
}

// ModeratorApplication is the onboarding form for prospective crew.
type ModeratorApplication struct {
	Id                int64
	Reference         string // uuid handed back to the applicant
	DisplayName       string
	ChannelHandle     string
	Timezone          string
	ContributionFocus string
	Message           string
	SubmittedAt       time.Time
}

// Contribution focus choices for the moderator application form.
var ContributionFocusChoices = []CategoryChoice{
	{"events", "Event coordination"},
	{"community", "Community support"},
	{"creative", "Creative/content"},
	{"tech", "Tech & automation"},
}
