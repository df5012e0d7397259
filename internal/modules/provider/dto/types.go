package dto

type ProviderInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type ItemOutput struct {
	ID               string
	Kind             string
	Title            string
	Slug             string
	Tags             []string
	Goals            []string
	MobilityFriendly bool
	Minutes          int
	Body             string
	Provider         string
}

// Failure names a provider that could not serve during an aggregate call.
type Failure struct {
	Provider string
	Error    string
}

type CollectOutput struct {
	Items    []ItemOutput
	Failures []Failure
}
