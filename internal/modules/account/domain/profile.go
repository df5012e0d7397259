package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const SchemaVersion = 1

type PlanType string

const (
	PlanW4  PlanType = "w4"
	PlanW8  PlanType = "w8"
	PlanW12 PlanType = "w12"
)

func (p PlanType) Validate() error {
	switch p {
	case PlanW4, PlanW8, PlanW12:
		return nil
	default:
		return fmt.Errorf("unsupported plan type %q", string(p))
	}
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Validate() error {
	switch t {
	case ThemeLight, ThemeDark:
		return nil
	default:
		return fmt.Errorf("unsupported theme %q", string(t))
	}
}

// Dimension is one of the five fixed baseline axes the onboarding wizard asks
// about.
type Dimension string

const (
	DimSleep     Dimension = "sleep"
	DimStress    Dimension = "stress"
	DimMovement  Dimension = "movement"
	DimNutrition Dimension = "nutrition"
	DimEnergy    Dimension = "energy"
)

func Dimensions() []Dimension {
	return []Dimension{DimSleep, DimStress, DimMovement, DimNutrition, DimEnergy}
}

// Baseline holds a 1..10 self-assessment per dimension.
type Baseline struct {
	Sleep     int `json:"sleep"`
	Stress    int `json:"stress"`
	Movement  int `json:"movement"`
	Nutrition int `json:"nutrition"`
	Energy    int `json:"energy"`
}

func DefaultBaseline() Baseline {
	return Baseline{Sleep: 5, Stress: 5, Movement: 5, Nutrition: 5, Energy: 5}
}

func (b Baseline) Get(dim Dimension) int {
	switch dim {
	case DimSleep:
		return b.Sleep
	case DimStress:
		return b.Stress
	case DimMovement:
		return b.Movement
	case DimNutrition:
		return b.Nutrition
	case DimEnergy:
		return b.Energy
	}
	return 0
}

// Set stores value for dim, clamped to [1,10].
func (b *Baseline) Set(dim Dimension, value int) error {
	if value < 1 {
		value = 1
	}
	if value > 10 {
		value = 10
	}
	switch dim {
	case DimSleep:
		b.Sleep = value
	case DimStress:
		b.Stress = value
	case DimMovement:
		b.Movement = value
	case DimNutrition:
		b.Nutrition = value
	case DimEnergy:
		b.Energy = value
	default:
		return fmt.Errorf("unknown baseline dimension %q", string(dim))
	}
	return nil
}

func (b Baseline) Validate() error {
	for _, dim := range Dimensions() {
		v := b.Get(dim)
		if v < 1 || v > 10 {
			return fmt.Errorf("baseline %s must be in 1..10, got %d", dim, v)
		}
	}
	return nil
}

// IsZero reports whether the baseline was never filled in, which is the cue
// to seed the onboarding draft with defaults.
func (b Baseline) IsZero() bool {
	return b == Baseline{}
}

var notificationTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Profile struct {
	ID                 string
	Email              string
	Name               string
	Plan               PlanType
	PlanActiveUntil    time.Time
	OnboardingComplete bool
	Streak             int
	Goals              []string
	Baseline           Baseline
	MobilityLimited    bool
	NotificationTime   string
	Theme              Theme
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("profile email is required")
	}
	if err := p.Plan.Validate(); err != nil {
		return err
	}
	if err := p.Theme.Validate(); err != nil {
		return err
	}
	if p.Streak < 0 {
		return fmt.Errorf("streak must be non-negative, got %d", p.Streak)
	}
	if !p.Baseline.IsZero() {
		if err := p.Baseline.Validate(); err != nil {
			return err
		}
	}
	if p.NotificationTime != "" && !notificationTimePattern.MatchString(p.NotificationTime) {
		return fmt.Errorf("notification time must be HH:MM, got %q", p.NotificationTime)
	}
	return nil
}

// ProfileUpdate is a partial profile; nil fields are left untouched by Apply.
type ProfileUpdate struct {
	Name               *string
	Goals              *[]string
	Baseline           *Baseline
	MobilityLimited    *bool
	OnboardingComplete *bool
	Streak             *int
	NotificationTime   *string
	Theme              *Theme
}

func (u ProfileUpdate) Validate() error {
	if u.Baseline != nil {
		if err := u.Baseline.Validate(); err != nil {
			return err
		}
	}
	if u.Streak != nil && *u.Streak < 0 {
		return fmt.Errorf("streak must be non-negative, got %d", *u.Streak)
	}
	if u.Theme != nil {
		if err := u.Theme.Validate(); err != nil {
			return err
		}
	}
	if u.NotificationTime != nil && !notificationTimePattern.MatchString(*u.NotificationTime) {
		return fmt.Errorf("notification time must be HH:MM, got %q", *u.NotificationTime)
	}
	return nil
}

// Apply returns a copy of p with the update's non-nil fields merged in.
func (p Profile) Apply(u ProfileUpdate) Profile {
	out := p
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Goals != nil {
		out.Goals = append([]string(nil), (*u.Goals)...)
	}
	if u.Baseline != nil {
		out.Baseline = *u.Baseline
	}
	if u.MobilityLimited != nil {
		out.MobilityLimited = *u.MobilityLimited
	}
	if u.OnboardingComplete != nil {
		out.OnboardingComplete = *u.OnboardingComplete
	}
	if u.Streak != nil {
		out.Streak = *u.Streak
	}
	if u.NotificationTime != nil {
		out.NotificationTime = *u.NotificationTime
	}
	if u.Theme != nil {
		out.Theme = *u.Theme
	}
	return out
}
