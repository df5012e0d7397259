package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	ProviderMapKey     = "flo8"
	serviceName        = "flo8.provider.v1.Flo8Provider"
	jsonCodecName      = "json"
	methodGetMetadata  = "/" + serviceName + "/GetMetadata"
	methodListItems    = "/" + serviceName + "/ListItems"
	methodGetDailyCard = "/" + serviceName + "/GetDailyCard"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FLO8_PROVIDER",
	MagicCookieValue: "flo8",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type Item struct {
	ID               string   `json:"id"`
	Kind             string   `json:"kind"`
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Tags             []string `json:"tags"`
	Goals            []string `json:"goals"`
	MobilityFriendly bool     `json:"mobility_friendly"`
	Minutes          int32    `json:"minutes"`
	Body             string   `json:"body"`
}

type ListItemsResponse struct {
	Items []Item `json:"items"`
}

type DailyCardRequest struct {
	Date            string   `json:"date"`
	Goals           []string `json:"goals"`
	MobilityLimited bool     `json:"mobility_limited"`
}

type DailyCardResponse struct {
	Card *Item `json:"card"`
}

type Flo8ProviderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListItems(ctx context.Context, in *Empty) (*ListItemsResponse, error)
	GetDailyCard(ctx context.Context, in *DailyCardRequest) (*DailyCardResponse, error)
}

type Flo8ProviderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListItems(ctx context.Context) (*ListItemsResponse, error)
	GetDailyCard(ctx context.Context, in *DailyCardRequest) (*DailyCardResponse, error)
}

type flo8ProviderClient struct {
	conn *grpc.ClientConn
}

func NewFlo8ProviderClient(conn *grpc.ClientConn) Flo8ProviderClient {
	return &flo8ProviderClient{conn: conn}
}

func (c *flo8ProviderClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *flo8ProviderClient) ListItems(ctx context.Context) (*ListItemsResponse, error) {
	out := &ListItemsResponse{}
	if err := c.conn.Invoke(ctx, methodListItems, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *flo8ProviderClient) GetDailyCard(ctx context.Context, in *DailyCardRequest) (*DailyCardResponse, error) {
	out := &DailyCardResponse{}
	if err := c.conn.Invoke(ctx, methodGetDailyCard, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterFlo8ProviderServer(server grpc.ServiceRegistrar, impl Flo8ProviderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*Flo8ProviderServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ListItems",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ListItems(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListItems}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ListItems(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "GetDailyCard",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &DailyCardRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetDailyCard(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetDailyCard}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*DailyCardRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetDailyCard(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/provider-rpc-v1.proto",
	}, impl)
}

type GRPCProvider struct {
	plugin.NetRPCUnsupportedPlugin
	Impl Flo8ProviderServer
}

func (p *GRPCProvider) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterFlo8ProviderServer(server, p.Impl)
	return nil
}

func (p *GRPCProvider) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewFlo8ProviderClient(conn), nil
}

func ProviderMap(impl Flo8ProviderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		ProviderMapKey: &GRPCProvider{Impl: impl},
	}
}
