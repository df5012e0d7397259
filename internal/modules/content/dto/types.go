package dto

type ItemOutput struct {
	ID               string
	Kind             string
	Title            string
	Slug             string
	Tags             []string
	Goals            []string
	Minutes          int
	MobilityFriendly bool
	HasGuide         bool
	Source           string
}

type ItemDetail struct {
	ItemOutput
	Body string
}

type GuidePageOutput struct {
	Text  string
	Page  int
	Total int
}

type CompleteOutput struct {
	Streak           int
	AlreadyCompleted bool
}
