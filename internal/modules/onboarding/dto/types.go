package dto

type GoalOutput struct {
	Slug     string
	Label    string
	Selected bool
}

type DraftOutput struct {
	Step            string
	Goals           []GoalOutput
	Baseline        map[string]int
	MobilityLimited bool
	Committed       bool
	CommitPending   bool
}
