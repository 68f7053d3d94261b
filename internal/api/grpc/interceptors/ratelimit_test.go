package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRateLimitInterceptorDisabled(t *testing.T) {
	if RateLimitInterceptor(0, 10) != nil {
		t.Fatal("expected nil interceptor for zero rate")
	}
	if RateLimitInterceptor(-1, 10) != nil {
		t.Fatal("expected nil interceptor for negative rate")
	}
}

func TestRateLimitInterceptorRejectsBeyondBurst(t *testing.T) {
	// A tiny refill rate keeps the bucket empty for the duration of the test.
	interceptor := RateLimitInterceptor(0.001, 2)

	calls := 0
	handler := func(context.Context, any) (any, error) {
		calls++
		return nil, nil
	}
	for i := range 2 {
		if _, err := interceptor(context.Background(), nil, generateInfo, handler); err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
	}
	_, err := interceptor(context.Background(), nil, generateInfo, handler)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("code = %v, want %v", status.Code(err), codes.ResourceExhausted)
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func TestRateLimitInterceptorDefaultsBurst(t *testing.T) {
	interceptor := RateLimitInterceptor(0.001, 0)
	if _, err := interceptor(context.Background(), nil, generateInfo, func(context.Context, any) (any, error) { return nil, nil }); err != nil {
		t.Fatalf("first call should pass with default burst: %v", err)
	}
}
