package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flo8/internal/modules/provider/domain"
	"flo8/internal/modules/provider/service"
)

type fakeStore struct {
	manifests []domain.Manifest
	err       error
}

func (s *fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, s.err
}

type fakeHost struct {
	items    map[string][]domain.ProviderItem
	failFor  map[string]error
	metadata domain.Metadata
}

func (h *fakeHost) CheckLifecycle(_ context.Context, m domain.Manifest) error {
	if err := h.failFor[m.Name]; err != nil {
		return err
	}
	return nil
}

func (h *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return h.metadata, nil
}

func (h *fakeHost) ListItems(_ context.Context, m domain.Manifest) ([]domain.ProviderItem, error) {
	if err := h.failFor[m.Name]; err != nil {
		return nil, err
	}
	return h.items[m.Name], nil
}

func (h *fakeHost) GetDailyCard(context.Context, domain.Manifest, string, []string, bool) (*domain.ProviderItem, error) {
	return nil, nil
}

type fakeVerifier struct {
	err error
}

func (v *fakeVerifier) Verify(context.Context, domain.Manifest) error {
	return v.err
}

const validSum = "ab56b4d92b40713acc5af89985d4b786a1b3b6f3c1d6b9e2f4a8c7d5e6f7a8b9"

func manifest(name string, enabled bool, caps ...domain.Capability) domain.Manifest {
	if len(caps) == 0 {
		caps = []domain.Capability{domain.CapabilityContent}
	}
	return domain.Manifest{
		Name:         name,
		Version:      "1.0.0",
		Binary:       "/opt/flo8/" + name,
		SHA256:       validSum,
		Enabled:      enabled,
		Capabilities: caps,
	}
}

func item(slug string) domain.ProviderItem {
	return domain.ProviderItem{ID: "itm-" + slug, Kind: "recipe", Title: slug, Slug: slug}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	store := &fakeStore{manifests: []domain.Manifest{manifest("a", true), manifest("a", true)}}
	svc := service.NewProviderService(store, &fakeHost{}, &fakeVerifier{})
	if _, err := svc.List(context.Background()); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestListItemsChecksAndConverts(t *testing.T) {
	t.Parallel()

	store := &fakeStore{manifests: []domain.Manifest{manifest("basispakket", true)}}
	host := &fakeHost{items: map[string][]domain.ProviderItem{"basispakket": {item("havermout")}}}
	svc := service.NewProviderService(store, host, &fakeVerifier{})

	items, err := svc.ListItems(context.Background(), "basispakket")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].Provider != "basispakket" {
		t.Fatalf("items = %+v", items)
	}
}

func TestListItemsRequiresEnabledAndCapable(t *testing.T) {
	t.Parallel()

	store := &fakeStore{manifests: []domain.Manifest{
		manifest("uit", false),
		manifest("kaal", true, domain.CapabilityDailyCard),
	}}
	svc := service.NewProviderService(store, &fakeHost{}, &fakeVerifier{})

	if _, err := svc.ListItems(context.Background(), "uit"); !errors.Is(err, domain.ErrProviderDisabled) {
		t.Fatalf("expected ErrProviderDisabled, got %v", err)
	}
	if _, err := svc.ListItems(context.Background(), "kaal"); !errors.Is(err, domain.ErrCapabilityMissing) {
		t.Fatalf("expected ErrCapabilityMissing, got %v", err)
	}
	if _, err := svc.ListItems(context.Background(), "onbekend"); err == nil {
		t.Fatal("unknown provider must error")
	}
}

func TestListItemsRefusesBadChecksum(t *testing.T) {
	t.Parallel()

	store := &fakeStore{manifests: []domain.Manifest{manifest("basispakket", true)}}
	svc := service.NewProviderService(store, &fakeHost{}, &fakeVerifier{err: domain.ErrChecksumMismatch})
	if _, err := svc.ListItems(context.Background(), "basispakket"); !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestListItemsRejectsUnreadableItems(t *testing.T) {
	t.Parallel()

	broken := domain.ProviderItem{ID: "itm-x", Kind: "mysterie", Title: "X", Slug: "x"}
	store := &fakeStore{manifests: []domain.Manifest{manifest("basispakket", true)}}
	host := &fakeHost{items: map[string][]domain.ProviderItem{"basispakket": {broken}}}
	svc := service.NewProviderService(store, host, &fakeVerifier{})
	if _, err := svc.ListItems(context.Background(), "basispakket"); !errors.Is(err, domain.ErrProviderUnreadable) {
		t.Fatalf("expected ErrProviderUnreadable, got %v", err)
	}
}

func TestCollectItemsSkipsBrokenProviders(t *testing.T) {
	t.Parallel()

	store := &fakeStore{manifests: []domain.Manifest{
		manifest("goed", true),
		manifest("kapot", true),
		manifest("uit", false),
	}}
	host := &fakeHost{
		items:   map[string][]domain.ProviderItem{"goed": {item("havermout"), item("stoelyoga")}},
		failFor: map[string]error{"kapot": errors.New("binary crashed")},
	}
	svc := service.NewProviderService(store, host, &fakeVerifier{})

	out, err := svc.CollectItems(context.Background())
	if err != nil {
		t.Fatalf("CollectItems: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("collected %d items, want 2", len(out.Items))
	}
	if len(out.Failures) != 1 || out.Failures[0].Provider != "kapot" {
		t.Fatalf("failures = %+v", out.Failures)
	}
}
