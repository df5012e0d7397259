package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"flo8/internal/modules/provider/adapter/out/rpc"
	"flo8/internal/modules/provider/domain"
	providerout "flo8/internal/modules/provider/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct{}

func NewGRPCHost() providerout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) ListItems(ctx context.Context, manifest domain.Manifest) ([]domain.ProviderItem, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.ListItems(callCtx)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", domain.ErrProviderTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]domain.ProviderItem, 0, len(response.Items))
	for _, item := range response.Items {
		out = append(out, fromWire(item))
	}
	return out, nil
}

func (h *GRPCHost) GetDailyCard(ctx context.Context, manifest domain.Manifest, date string, goals []string, mobilityLimited bool) (*domain.ProviderItem, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.GetDailyCard(callCtx, &rpc.DailyCardRequest{
		Date:            date,
		Goals:           goals,
		MobilityLimited: mobilityLimited,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", domain.ErrProviderTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("get daily card: %w", err)
	}
	if response.Card == nil {
		return nil, nil
	}
	card := fromWire(*response.Card)
	return &card, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (rpc.Flo8ProviderClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  rpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          rpc.ProviderMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start provider client: %w", err)
	}
	raw, err := rpcClient.Dispense(rpc.ProviderMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense provider: %w", err)
	}
	typed, ok := raw.(rpc.Flo8ProviderClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("provider rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

func fromWire(item rpc.Item) domain.ProviderItem {
	return domain.ProviderItem{
		ID:               item.ID,
		Kind:             item.Kind,
		Title:            item.Title,
		Slug:             item.Slug,
		Tags:             item.Tags,
		Goals:            item.Goals,
		MobilityFriendly: item.MobilityFriendly,
		Minutes:          int(item.Minutes),
		Body:             item.Body,
	}
}
