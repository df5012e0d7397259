package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// Capability names what a content provider can serve.
type Capability string

const (
	CapabilityContent   Capability = "content"
	CapabilityDailyCard Capability = "dailycard"
)

var (
	ErrProviderDisabled   = errors.New("provider is disabled")
	ErrChecksumMismatch   = errors.New("provider checksum mismatch")
	ErrCapabilityMissing  = errors.New("provider capability missing")
	ErrProviderTimeout    = errors.New("provider timeout")
	ErrProviderUnreadable = errors.New("provider returned an unreadable item")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one installed provider binary. The checksum is
// validated against the binary before every start.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("provider version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("provider binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("provider sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("provider capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityContent, CapabilityDailyCard:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// ProviderItem is a content item as served over the provider wire.
type ProviderItem struct {
	ID               string
	Kind             string
	Title            string
	Slug             string
	Tags             []string
	Goals            []string
	MobilityFriendly bool
	Minutes          int
	Body             string
}

func (i ProviderItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("provider item id is required")
	}
	if i.Title == "" {
		return fmt.Errorf("provider item title is required")
	}
	if i.Slug == "" {
		return fmt.Errorf("provider item slug is required")
	}
	switch i.Kind {
	case "dailycard", "recipe", "exercise", "knowledge":
		return nil
	default:
		return fmt.Errorf("unknown provider item kind %q", i.Kind)
	}
}
