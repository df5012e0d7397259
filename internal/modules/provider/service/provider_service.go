package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"flo8/internal/modules/provider/domain"
	"flo8/internal/modules/provider/dto"
	providerout "flo8/internal/modules/provider/port/out"
)

type ProviderService struct {
	store    providerout.ManifestStore
	host     providerout.Host
	verifier providerout.ChecksumVerifier
}

func NewProviderService(store providerout.ManifestStore, host providerout.Host, verifier providerout.ChecksumVerifier) *ProviderService {
	return &ProviderService{store: store, host: host, verifier: verifier}
}

func (s *ProviderService) List(ctx context.Context) ([]dto.ProviderInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.ProviderInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *ProviderService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = s.verifier.Verify(ctx, m) == nil
		}
		if result.BinaryReachable && result.ChecksumValid && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if result.BinaryReachable && !result.ChecksumValid {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ProviderService) ListItems(ctx context.Context, providerName string) ([]dto.ItemOutput, error) {
	manifest, err := s.runnableManifest(ctx, providerName, domain.CapabilityContent)
	if err != nil {
		return nil, err
	}
	items, err := s.host.ListItems(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemOutput, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnreadable, err)
		}
		out = append(out, toItemOutput(item, manifest.Name))
	}
	return out, nil
}

// CollectItems fans over every enabled content provider; one broken
// provider must never hide the others' content.
func (s *ProviderService) CollectItems(ctx context.Context) (dto.CollectOutput, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.CollectOutput{}, err
	}
	out := dto.CollectOutput{}
	for _, m := range manifests {
		if !m.Enabled || !m.HasCapability(domain.CapabilityContent) {
			continue
		}
		items, err := s.ListItems(ctx, m.Name)
		if err != nil {
			out.Failures = append(out.Failures, dto.Failure{Provider: m.Name, Error: err.Error()})
			continue
		}
		out.Items = append(out.Items, items...)
	}
	return out, nil
}

func (s *ProviderService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate provider name: %s", manifest.Name)
		}
		seen[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ProviderService) runnableManifest(ctx context.Context, providerName string, capability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == providerName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("provider %q not found", providerName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrProviderDisabled, providerName)
	}
	if capability != "" && !manifest.HasCapability(capability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, capability)
	}
	if err := s.verifier.Verify(ctx, manifest); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrProviderTimeout, providerName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func toItemOutput(item domain.ProviderItem, providerName string) dto.ItemOutput {
	return dto.ItemOutput{
		ID:               item.ID,
		Kind:             item.Kind,
		Title:            item.Title,
		Slug:             item.Slug,
		Tags:             item.Tags,
		Goals:            item.Goals,
		MobilityFriendly: item.MobilityFriendly,
		Minutes:          item.Minutes,
		Body:             item.Body,
		Provider:         providerName,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
