package domain

import (
	"fmt"

	account "flo8/internal/modules/account/domain"
)

// Step is the wizard's position. Transitions are strictly linear; committed
// is terminal.
type Step string

const (
	StepGoals       Step = "goals"
	StepBaseline    Step = "baseline"
	StepPreferences Step = "preferences"
	StepCommitted   Step = "committed"
)

// Goal is one entry of the fixed goal catalog shown in step one.
type Goal struct {
	Slug  string
	Label string
}

func GoalCatalog() []Goal {
	return []Goal{
		{Slug: "afvallen", Label: "Afvallen"},
		{Slug: "meer-energie", Label: "Meer energie"},
		{Slug: "beter-slapen", Label: "Beter slapen"},
		{Slug: "minder-stress", Label: "Minder stress"},
		{Slug: "fitter-worden", Label: "Fitter worden"},
	}
}

func knownGoal(slug string) bool {
	for _, g := range GoalCatalog() {
		if g.Slug == slug {
			return true
		}
	}
	return false
}

// Draft is the wizard's working copy. Nothing in it touches the profile
// until the final commit; abandoning the wizard loses nothing but the draft.
type Draft struct {
	Step            Step
	Goals           []string
	Baseline        account.Baseline
	MobilityLimited bool
}

// NewDraft seeds a draft from the profile: goals and mobility carry over, a
// never-filled baseline starts at the midpoint of every dimension.
func NewDraft(profile account.Profile) Draft {
	baseline := profile.Baseline
	if baseline.IsZero() {
		baseline = account.DefaultBaseline()
	}
	return Draft{
		Step:            StepGoals,
		Goals:           append([]string(nil), profile.Goals...),
		Baseline:        baseline,
		MobilityLimited: profile.MobilityLimited,
	}
}

// ToggleGoal adds or removes a catalog goal, preserving selection order.
// Only valid in the goals step.
func (d *Draft) ToggleGoal(slug string) error {
	if d.Step != StepGoals {
		return fmt.Errorf("goals can only change in step %q, wizard is at %q", StepGoals, d.Step)
	}
	if !knownGoal(slug) {
		return fmt.Errorf("unknown goal %q", slug)
	}
	for i, g := range d.Goals {
		if g == slug {
			d.Goals = append(d.Goals[:i], d.Goals[i+1:]...)
			return nil
		}
	}
	d.Goals = append(d.Goals, slug)
	return nil
}

// SetBaseline stores a 1..10 value (clamped) for one dimension. Only valid
// in the baseline step.
func (d *Draft) SetBaseline(dim account.Dimension, value int) error {
	if d.Step != StepBaseline {
		return fmt.Errorf("baseline can only change in step %q, wizard is at %q", StepBaseline, d.Step)
	}
	return d.Baseline.Set(dim, value)
}

// SetMobility flags limited mobility. Only valid in the preferences step.
func (d *Draft) SetMobility(limited bool) error {
	if d.Step != StepPreferences {
		return fmt.Errorf("mobility can only change in step %q, wizard is at %q", StepPreferences, d.Step)
	}
	d.MobilityLimited = limited
	return nil
}

// Advance moves one step forward. Advancing past the last step is the
// caller's cue to commit; the draft itself refuses it.
func (d *Draft) Advance() error {
	switch d.Step {
	case StepGoals:
		d.Step = StepBaseline
	case StepBaseline:
		d.Step = StepPreferences
	default:
		return fmt.Errorf("cannot advance from step %q", d.Step)
	}
	return nil
}

// Retreat moves one step back, keeping everything entered so far. At the
// first step it is a no-op.
func (d *Draft) Retreat() error {
	switch d.Step {
	case StepBaseline:
		d.Step = StepGoals
	case StepPreferences:
		d.Step = StepBaseline
	case StepGoals:
	default:
		return fmt.Errorf("cannot retreat from step %q", d.Step)
	}
	return nil
}

// Final reports whether the next Advance is the commit.
func (d Draft) Final() bool {
	return d.Step == StepPreferences
}

func (d *Draft) MarkCommitted() {
	d.Step = StepCommitted
}

// BuildUpdate turns the finished draft into the single atomic profile
// update the commit applies.
func (d Draft) BuildUpdate() account.ProfileUpdate {
	goals := append([]string(nil), d.Goals...)
	baseline := d.Baseline
	complete := true
	mobility := d.MobilityLimited
	return account.ProfileUpdate{
		Goals:              &goals,
		Baseline:           &baseline,
		MobilityLimited:    &mobility,
		OnboardingComplete: &complete,
	}
}
