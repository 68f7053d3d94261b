package client

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	commonpb "github.com/cyber-republic/go-grpc-adenine/api/gen/go/common"
	grpcmeta "github.com/cyber-republic/go-grpc-adenine/internal/api/grpc/metadata"
	commonservice "github.com/cyber-republic/go-grpc-adenine/internal/services/common/api/grpc/common"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/envelope"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/storage"
	"github.com/cyber-republic/go-grpc-adenine/internal/testkit/grpctest"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const testSecret = "client-secret"

type memoryStore struct {
	keys map[string]storage.APIKey
}

func (s *memoryStore) PutAPIKey(_ context.Context, key storage.APIKey) error {
	s.keys[key.DID] = key
	return nil
}

func (s *memoryStore) GetAPIKey(_ context.Context, did string) (storage.APIKey, error) {
	key, ok := s.keys[did]
	if !ok {
		return storage.APIKey{}, storage.ErrNotFound
	}
	return key, nil
}

func startKeyring(t *testing.T) *grpc.ClientConn {
	t.Helper()
	env, err := envelope.New(testSecret)
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}
	svc := grpctest.NewService(grpc.ChainUnaryInterceptor(grpcmeta.UnaryServerInterceptor(nil)))
	commonservice.Register(svc.Server(), commonservice.NewService(&memoryStore{keys: map[string]storage.APIKey{}}, env))
	svc.Start(t)
	return svc.Dial(t)
}

func TestClientGenerateThenGet(t *testing.T) {
	c := New(startKeyring(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	missing, err := c.GetAPIKey(ctx, testSecret, "did:elastos:iCarol")
	if err != nil {
		t.Fatalf("get before generate: %v", err)
	}
	if missing.Status || missing.StatusMessage != commonservice.MessageNotFound || missing.APIKey != "" {
		t.Fatalf("missing result = %+v", missing)
	}

	generated, err := c.GenerateAPIKey(ctx, testSecret, "did:elastos:iCarol")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !generated.Status || generated.APIKey == "" || generated.DID != "did:elastos:iCarol" {
		t.Fatalf("generated result = %+v", generated)
	}

	got, err := c.GetAPIKey(ctx, testSecret, "did:elastos:iCarol")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.APIKey != generated.APIKey || got.StatusMessage != commonservice.MessageRetrieved {
		t.Fatalf("get result = %+v, want key %q", got, generated.APIKey)
	}
}

func TestClientReportsAuthenticationFailure(t *testing.T) {
	c := New(startKeyring(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := c.GenerateAPIKey(ctx, "wrong-secret", "did:elastos:iCarol")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Status || result.StatusMessage != commonservice.MessageTokenInvalid {
		t.Fatalf("result = %+v", result)
	}
}

func TestClientSurfacesRPCErrors(t *testing.T) {
	svc := grpctest.NewService()
	commonservice.Register(svc.Server(), nil)
	svc.Start(t)
	c := New(svc.Dial(t))

	_, err := c.GetAPIKey(context.Background(), testSecret, "did:a")
	st := status.Convert(err)
	if st.Code() != codes.Unimplemented || st.Message() != commonservice.UnimplementedMessage {
		t.Fatalf("status = %v %q", st.Code(), st.Message())
	}
}

func TestClientRequiresSecret(t *testing.T) {
	c := New(startKeyring(t))
	if _, err := c.GetAPIKey(context.Background(), "", "did:a"); err == nil {
		t.Fatal("expected missing secret error")
	}
	var nilClient *Client
	if _, err := nilClient.GetAPIKey(context.Background(), testSecret, "did:a"); err == nil {
		t.Fatal("expected unconfigured client error")
	}
}

type stubCommonClient struct {
	commonpb.CommonClient
	resp *commonpb.Response
}

func (s stubCommonClient) GetAPIKey(context.Context, *commonpb.Request, ...grpc.CallOption) (*commonpb.Response, error) {
	return s.resp, nil
}

func TestClientRejectsUnsignedOutput(t *testing.T) {
	c := &Client{rpc: stubCommonClient{resp: &commonpb.Response{Status: true, Output: "forged"}}}
	_, err := c.GetAPIKey(context.Background(), testSecret, "did:a")
	if !errors.Is(err, envelope.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestDialWaitsForHealth(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer()
	commonservice.Register(server, nil)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := Dial(ctx, lis.Addr().String(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_, err = New(conn).GenerateAPIKey(ctx, testSecret, "did:a")
	if status.Code(err) != codes.Unimplemented {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.Unimplemented)
	}
}

func TestDialRequiresAddress(t *testing.T) {
	if _, err := Dial(context.Background(), "  ", nil); err == nil || !strings.Contains(err.Error(), "address") {
		t.Fatalf("err = %v, want address error", err)
	}
}
