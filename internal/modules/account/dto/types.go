package dto

import "time"

type LoginInput struct {
	Email    string
	Password string
}

type ProfileOutput struct {
	ID                 string
	Email              string
	Name               string
	Plan               string
	PlanActiveUntil    time.Time
	OnboardingComplete bool
	Streak             int
	Goals              []string
	Baseline           map[string]int
	MobilityLimited    bool
	NotificationTime   string
	Theme              string
}

type UpdateInput struct {
	Name             *string
	NotificationTime *string
	Theme            *string
	MobilityLimited  *bool
}

type SessionOutput struct {
	Initializing  bool
	Authenticated bool
	Profile       *ProfileOutput
}

type ChangePasswordInput struct {
	Current string
	Next    string
}
