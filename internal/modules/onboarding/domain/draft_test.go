package domain_test

import (
	"testing"

	account "flo8/internal/modules/account/domain"
	"flo8/internal/modules/onboarding/domain"
)

func freshDraft() domain.Draft {
	return domain.NewDraft(account.Profile{
		ID:    "usr-1",
		Email: "test@flo8.nl",
		Plan:  account.PlanW8,
		Theme: account.ThemeLight,
	})
}

func TestNewDraftSeedsDefaults(t *testing.T) {
	t.Parallel()

	d := freshDraft()
	if d.Step != domain.StepGoals {
		t.Fatalf("fresh draft starts at %q", d.Step)
	}
	if len(d.Goals) != 0 {
		t.Fatalf("fresh draft has goals %v", d.Goals)
	}
	for _, dim := range account.Dimensions() {
		if got := d.Baseline.Get(dim); got != 5 {
			t.Fatalf("baseline %s seeded to %d, want 5", dim, got)
		}
	}
}

func TestNewDraftCarriesExistingAnswers(t *testing.T) {
	t.Parallel()

	baseline := account.DefaultBaseline()
	baseline.Stress = 8
	d := domain.NewDraft(account.Profile{
		ID:              "usr-1",
		Goals:           []string{"beter-slapen"},
		Baseline:        baseline,
		MobilityLimited: true,
	})
	if len(d.Goals) != 1 || d.Goals[0] != "beter-slapen" {
		t.Fatalf("goals not carried over: %v", d.Goals)
	}
	if d.Baseline.Stress != 8 || !d.MobilityLimited {
		t.Fatalf("answers not carried over: %+v", d)
	}
}

func TestToggleGoal(t *testing.T) {
	t.Parallel()

	d := freshDraft()
	if err := d.ToggleGoal("afvallen"); err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if err := d.ToggleGoal("meer-energie"); err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if err := d.ToggleGoal("afvallen"); err != nil {
		t.Fatalf("ToggleGoal (remove): %v", err)
	}
	if len(d.Goals) != 1 || d.Goals[0] != "meer-energie" {
		t.Fatalf("toggle not symmetric: %v", d.Goals)
	}
	if err := d.ToggleGoal("hardlopen"); err == nil {
		t.Fatal("unknown goal must be rejected")
	}
}

func TestStepGating(t *testing.T) {
	t.Parallel()

	d := freshDraft()
	if err := d.SetBaseline(account.DimSleep, 3); err == nil {
		t.Fatal("baseline must be rejected in the goals step")
	}
	if err := d.SetMobility(true); err == nil {
		t.Fatal("mobility must be rejected in the goals step")
	}

	if err := d.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.ToggleGoal("afvallen"); err == nil {
		t.Fatal("goals must be rejected in the baseline step")
	}
	if err := d.SetBaseline(account.DimSleep, 3); err != nil {
		t.Fatalf("SetBaseline: %v", err)
	}

	if err := d.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.SetMobility(true); err != nil {
		t.Fatalf("SetMobility: %v", err)
	}
	if err := d.Advance(); err == nil {
		t.Fatal("draft must refuse to advance past the last step")
	}
}

func TestSetBaselineClamps(t *testing.T) {
	t.Parallel()

	d := freshDraft()
	if err := d.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.SetBaseline(account.DimEnergy, 0); err != nil {
		t.Fatalf("SetBaseline: %v", err)
	}
	if d.Baseline.Energy != 1 {
		t.Fatalf("low value clamped to %d, want 1", d.Baseline.Energy)
	}
	if err := d.SetBaseline(account.DimEnergy, 14); err != nil {
		t.Fatalf("SetBaseline: %v", err)
	}
	if d.Baseline.Energy != 10 {
		t.Fatalf("high value clamped to %d, want 10", d.Baseline.Energy)
	}
}

func TestRetreatPreservesAnswers(t *testing.T) {
	t.Parallel()

	d := freshDraft()
	if err := d.ToggleGoal("minder-stress"); err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if err := d.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.SetBaseline(account.DimSleep, 2); err != nil {
		t.Fatalf("SetBaseline: %v", err)
	}
	if err := d.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	if err := d.Retreat(); err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if err := d.Retreat(); err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	if d.Step != domain.StepGoals {
		t.Fatalf("after two retreats step = %q", d.Step)
	}
	if err := d.Retreat(); err != nil {
		t.Fatalf("retreat at the first step must be a no-op, got %v", err)
	}
	if len(d.Goals) != 1 || d.Baseline.Sleep != 2 {
		t.Fatalf("retreat lost answers: %+v", d)
	}
}

func TestBuildUpdate(t *testing.T) {
	t.Parallel()

	d := freshDraft()
	if err := d.ToggleGoal("fitter-worden"); err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if err := d.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.SetBaseline(account.DimMovement, 7); err != nil {
		t.Fatalf("SetBaseline: %v", err)
	}
	if err := d.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := d.SetMobility(true); err != nil {
		t.Fatalf("SetMobility: %v", err)
	}

	update := d.BuildUpdate()
	if update.Goals == nil || len(*update.Goals) != 1 || (*update.Goals)[0] != "fitter-worden" {
		t.Fatalf("update goals = %v", update.Goals)
	}
	if update.Baseline == nil || update.Baseline.Movement != 7 {
		t.Fatalf("update baseline = %+v", update.Baseline)
	}
	if update.MobilityLimited == nil || !*update.MobilityLimited {
		t.Fatal("update mobility missing")
	}
	if update.OnboardingComplete == nil || !*update.OnboardingComplete {
		t.Fatal("commit must set the completion flag")
	}
	if update.Name != nil || update.Streak != nil || update.Theme != nil || update.NotificationTime != nil {
		t.Fatalf("commit must touch nothing else: %+v", update)
	}
}
