// Package errors provides structured errors that map onto gRPC statuses.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeRequestMissing Code = "REQUEST_MISSING"

	// Configuration errors
	CodeSecretNotConfigured Code = "SHARED_SECRET_NOT_CONFIGURED"
	CodeStoreNotConfigured  Code = "API_KEY_STORE_NOT_CONFIGURED"

	// Keyring errors
	CodeKeyGenerationFailed Code = "API_KEY_GENERATION_FAILED"
	CodeEnvelopeSealFailed  Code = "ENVELOPE_SEAL_FAILED"

	// Storage errors
	CodeStorageFailure Code = "STORAGE_FAILURE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeRequestMissing:
		return codes.InvalidArgument
	case CodeSecretNotConfigured:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}
