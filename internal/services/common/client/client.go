// Package client is the Go SDK for the common.Common service.
//
// Calls seal an empty request envelope with the caller's shared secret,
// send the DID as metadata and open the response envelope. A call is a
// single unary exchange; errors from the transport are returned unchanged.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	commonpb "github.com/cyber-republic/go-grpc-adenine/api/gen/go/common"
	grpcmeta "github.com/cyber-republic/go-grpc-adenine/internal/api/grpc/metadata"
	platformgrpc "github.com/cyber-republic/go-grpc-adenine/internal/platform/grpc"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/timeouts"
	commonservice "github.com/cyber-republic/go-grpc-adenine/internal/services/common/api/grpc/common"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/envelope"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Result is the decoded outcome of a Common call.
type Result struct {
	// APIKey is empty when Status is false.
	APIKey        string
	DID           string
	Status        bool
	StatusMessage string
}

// Client calls the Common service over one connection.
type Client struct {
	rpc     commonpb.CommonClient
	envOpts []envelope.Option
}

// Option configures a Client.
type Option func(*Client)

// WithEnvelopeOptions applies opts to every request and response envelope.
func WithEnvelopeOptions(opts ...envelope.Option) Option {
	return func(c *Client) {
		c.envOpts = append(c.envOpts, opts...)
	}
}

// Dial connects to addr and waits for the server to report SERVING.
func Dial(ctx context.Context, addr string, logger *zap.Logger, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("server address is required")
	}
	dialOpts := append(platformgrpc.DefaultClientDialOptions(), opts...)
	return platformgrpc.DialWithHealth(ctx, nil, addr, timeouts.GRPCDial, logger, dialOpts...)
}

// New wraps conn.
func New(conn grpc.ClientConnInterface, opts ...Option) *Client {
	c := &Client{rpc: commonpb.NewCommonClient(conn)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateAPIKey asks the server to issue a new API key for did.
func (c *Client) GenerateAPIKey(ctx context.Context, secretKey, did string) (*Result, error) {
	return c.call(ctx, secretKey, did, c.rpc.GenerateAPIRequest)
}

// GetAPIKey fetches the current API key for did.
func (c *Client) GetAPIKey(ctx context.Context, secretKey, did string) (*Result, error) {
	return c.call(ctx, secretKey, did, c.rpc.GetAPIKey)
}

type unaryCall func(context.Context, *commonpb.Request, ...grpc.CallOption) (*commonpb.Response, error)

func (c *Client) call(ctx context.Context, secretKey, did string, invoke unaryCall) (*Result, error) {
	if c == nil || c.rpc == nil {
		return nil, errors.New("client is not configured")
	}
	env, err := envelope.New(secretKey, c.envOpts...)
	if err != nil {
		return nil, err
	}
	token, err := env.Seal(envelope.Info{})
	if err != nil {
		return nil, err
	}

	resp, err := invoke(grpcmeta.WithOutgoingDID(ctx, did), &commonpb.Request{Input: token})
	if err != nil {
		return nil, err
	}
	result := &Result{
		Status:        resp.GetStatus(),
		StatusMessage: resp.GetStatusMessage(),
	}
	if !result.Status {
		return result, nil
	}
	info, err := env.Open(resp.GetOutput())
	if err != nil {
		return nil, fmt.Errorf("open response: %w", err)
	}
	result.APIKey = info.String(commonservice.InfoAPIKey)
	result.DID = info.String(commonservice.InfoDID)
	return result, nil
}
