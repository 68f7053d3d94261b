package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestGRPCCode(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeRequestMissing, codes.InvalidArgument},
		{CodeSecretNotConfigured, codes.FailedPrecondition},
		{CodeStoreNotConfigured, codes.Internal},
		{CodeStorageFailure, codes.Internal},
		{CodeUnknown, codes.Internal},
		{Code("SOMETHING_ELSE"), codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Errorf("%s.GRPCCode() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeStorageFailure, "put api key", cause)
	if err.Error() != "put api key: disk full" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if !stderrors.Is(fmt.Errorf("outer: %w", err), New(CodeStorageFailure, "")) {
		t.Fatal("expected code match through wrapping")
	}
	if stderrors.Is(err, New(CodeUnknown, "")) {
		t.Fatal("unexpected match on different code")
	}
}

func TestGRPCStatusCarriesErrorInfo(t *testing.T) {
	err := New(CodeSecretNotConfigured, "shared secret is not configured").
		WithMetadata(map[string]string{"method": "GetAPIKey"})

	st := status.Convert(err)
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("code = %v", st.Code())
	}
	if st.Message() != "shared secret is not configured" {
		t.Fatalf("message = %q", st.Message())
	}
	var info *errdetails.ErrorInfo
	for _, detail := range st.Details() {
		if v, ok := detail.(*errdetails.ErrorInfo); ok {
			info = v
		}
	}
	if info == nil {
		t.Fatal("expected ErrorInfo detail")
	}
	if info.GetReason() != string(CodeSecretNotConfigured) || info.GetDomain() != Domain || info.GetMetadata()["method"] != "GetAPIKey" {
		t.Fatalf("info = %v", info)
	}
	if ReasonOf(st.Err()) != string(CodeSecretNotConfigured) {
		t.Fatalf("ReasonOf = %q", ReasonOf(st.Err()))
	}
}

func TestReasonOfPlainErrors(t *testing.T) {
	if got := ReasonOf(stderrors.New("plain")); got != "" {
		t.Fatalf("ReasonOf(plain) = %q", got)
	}
	if got := ReasonOf(status.Error(codes.Internal, "no details")); got != "" {
		t.Fatalf("ReasonOf(status) = %q", got)
	}
}
