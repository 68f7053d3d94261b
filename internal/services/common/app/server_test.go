package server

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	commonpb "github.com/cyber-republic/go-grpc-adenine/api/gen/go/common"
	grpcmeta "github.com/cyber-republic/go-grpc-adenine/internal/api/grpc/metadata"
	commonservice "github.com/cyber-republic/go-grpc-adenine/internal/services/common/api/grpc/common"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/envelope"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func serve(t *testing.T, srv *Server) *grpc.ClientConn {
	t.Helper()
	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()

	conn, err := grpc.NewClient(srv.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		runCancel()
		t.Fatalf("dial common server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Errorf("close gRPC connection: %v", closeErr)
		}
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Errorf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Error("timeout waiting for server shutdown")
		}
	})
	return conn
}

func TestServer_DefaultsToUnimplemented(t *testing.T) {
	srv, err := NewWithOptions(Options{Addr: "127.0.0.1:0", Logger: zaptest.NewLogger(t)})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	conn := serve(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var header metadata.MD
	_, err = commonpb.NewCommonClient(conn).GenerateAPIRequest(ctx, &commonpb.Request{Input: "x"}, grpc.Header(&header))
	st := status.Convert(err)
	if st.Code() != codes.Unimplemented || st.Message() != commonservice.UnimplementedMessage {
		t.Fatalf("status = %v %q", st.Code(), st.Message())
	}
	if got := header.Get(grpcmeta.RequestIDHeader); len(got) != 1 || got[0] == "" {
		t.Fatalf("request id header = %v", got)
	}

	healthClient := grpc_health_v1.NewHealthClient(conn)
	for _, service := range []string{"", "common.Common"} {
		resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("health %q: %v", service, err)
		}
		if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
			t.Fatalf("health %q = %v", service, resp.GetStatus())
		}
	}
	if srv.MetricsAddr() != "" {
		t.Fatalf("metrics addr = %q, want disabled", srv.MetricsAddr())
	}
}

func TestServer_KeyringRoundTripFromEnv(t *testing.T) {
	const secret = "round-trip-secret"
	t.Setenv("ADENINE_COMMON_DB_PATH", filepath.Join(t.TempDir(), "nested", "common.db"))
	t.Setenv("ADENINE_SHARED_SECRET", secret)
	t.Setenv("ADENINE_TOKEN_TTL", "1m")
	t.Setenv("ADENINE_METRICS_ADDR", "127.0.0.1:0")

	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	conn := serve(t, srv)
	client := commonpb.NewCommonClient(conn)

	env, err := envelope.New(secret)
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}
	token, err := env.Seal(envelope.Info{})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ctx = grpcmeta.WithOutgoingDID(ctx, "did:elastos:iRoundTrip")

	generated, err := client.GenerateAPIRequest(ctx, &commonpb.Request{Input: token})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !generated.GetStatus() || generated.GetStatusMessage() != commonservice.MessageGenerated {
		t.Fatalf("generate response = %v", generated)
	}
	retrieved, err := client.GetAPIKey(ctx, &commonpb.Request{Input: token})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !retrieved.GetStatus() || retrieved.GetStatusMessage() != commonservice.MessageRetrieved {
		t.Fatalf("get response = %v", retrieved)
	}

	generatedInfo, err := env.Open(generated.GetOutput())
	if err != nil {
		t.Fatalf("open generate output: %v", err)
	}
	retrievedInfo, err := env.Open(retrieved.GetOutput())
	if err != nil {
		t.Fatalf("open get output: %v", err)
	}
	if generatedInfo[commonservice.InfoAPIKey] != retrievedInfo[commonservice.InfoAPIKey] {
		t.Fatalf("keys differ: %v vs %v", generatedInfo, retrievedInfo)
	}

	resp, err := http.Get("http://" + srv.MetricsAddr() + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(body), `grpc_server_handled_total{grpc_code="OK",grpc_method="GetAPIKey"`) {
		t.Fatalf("metrics missing handled counter:\n%s", body)
	}
}

func TestServer_RateLimit(t *testing.T) {
	srv, err := NewWithOptions(Options{Addr: "127.0.0.1:0", RateLimit: 0.001, RateBurst: 1})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	client := commonpb.NewCommonClient(serve(t, srv))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.GetAPIKey(ctx, &commonpb.Request{}); status.Code(err) != codes.Unimplemented {
		t.Fatalf("first call code = %v, want %v", status.Code(err), codes.Unimplemented)
	}
	if _, err := client.GetAPIKey(ctx, &commonpb.Request{}); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("second call code = %v, want %v", status.Code(err), codes.ResourceExhausted)
	}
}

func TestNewWithAddr_InvalidEnv(t *testing.T) {
	t.Setenv("ADENINE_TOKEN_TTL", "forever")
	if _, err := NewWithAddr("127.0.0.1:0"); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestNewWithOptions_ListenError(t *testing.T) {
	if _, err := NewWithOptions(Options{Addr: "bad-address"}); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestServer_NilReceivers(t *testing.T) {
	var srv *Server
	if err := srv.Serve(context.Background()); err == nil {
		t.Fatal("expected nil server error")
	}
	if srv.Addr() != "" || srv.MetricsAddr() != "" {
		t.Fatal("expected empty addresses")
	}
	srv.Close()
}
