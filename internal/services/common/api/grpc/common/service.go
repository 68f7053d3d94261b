package common

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	commonpb "github.com/cyber-republic/go-grpc-adenine/api/gen/go/common"
	grpcmeta "github.com/cyber-republic/go-grpc-adenine/internal/api/grpc/metadata"
	apperrors "github.com/cyber-republic/go-grpc-adenine/internal/platform/errors"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/id"
	"github.com/cyber-republic/go-grpc-adenine/internal/platform/logging"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/envelope"
	"github.com/cyber-republic/go-grpc-adenine/internal/services/common/storage"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

// APIKeySize is the number of random bytes behind each generated API key.
const APIKeySize = 32

// Status messages returned in Response.status_message.
const (
	MessageGenerated    = "Successfully generated API Key"
	MessageRetrieved    = "Successfully retrieved API Key"
	MessageNotFound     = "No API Key found for this DID"
	MessageTokenExpired = "Authentication Error: JWT Token has expired"
	MessageTokenInvalid = "Authentication Error: JWT Token is invalid"
	MessageDIDRequired  = "Authentication Error: DID is required"
)

// Output envelope keys.
const (
	InfoAPIKey = "api_key"
	InfoDID    = "did"
)

// Service issues and looks up API keys for authenticated DIDs.
type Service struct {
	commonpb.UnimplementedCommonServer
	store    storage.APIKeyStore
	envelope *envelope.Envelope
	clock    func() time.Time
	keys     io.Reader
}

// NewService creates a keyring service backed by store. Requests and
// responses are sealed with env.
func NewService(store storage.APIKeyStore, env *envelope.Envelope) *Service {
	return &Service{
		store:    store,
		envelope: env,
		clock:    time.Now,
	}
}

// GenerateAPIRequest issues a fresh API key for the caller DID, replacing any
// previous key.
func (s *Service) GenerateAPIRequest(ctx context.Context, in *commonpb.Request) (*commonpb.Response, error) {
	if err := s.ready(ctx, in); err != nil {
		return nil, err
	}
	did, failure := s.authenticate(ctx, in)
	if failure != "" {
		return &commonpb.Response{Status: false, StatusMessage: failure}, nil
	}

	key, err := id.NewKey(s.keys, APIKeySize)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeKeyGenerationFailed, "generate api key", err)
	}
	now := s.now()
	if err := s.store.PutAPIKey(ctx, storage.APIKey{
		DID:       did,
		Key:       key,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return nil, storageError("put api key", err)
	}
	logging.FromContext(ctx).Info("api key generated", zap.String("did", did))
	return s.reply(key, did, MessageGenerated)
}

// GetAPIKey returns the caller DID's current API key.
func (s *Service) GetAPIKey(ctx context.Context, in *commonpb.Request) (*commonpb.Response, error) {
	if err := s.ready(ctx, in); err != nil {
		return nil, err
	}
	did, failure := s.authenticate(ctx, in)
	if failure != "" {
		return &commonpb.Response{Status: false, StatusMessage: failure}, nil
	}

	record, err := s.store.GetAPIKey(ctx, did)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &commonpb.Response{Status: false, StatusMessage: MessageNotFound}, nil
		}
		return nil, storageError("get api key", err)
	}
	return s.reply(record.Key, did, MessageRetrieved)
}

func (s *Service) ready(ctx context.Context, in *commonpb.Request) error {
	if in == nil {
		return apperrors.New(apperrors.CodeRequestMissing, "request is required")
	}
	if s == nil || s.envelope == nil {
		return apperrors.New(apperrors.CodeSecretNotConfigured, "shared secret is not configured")
	}
	if s.store == nil {
		return apperrors.New(apperrors.CodeStoreNotConfigured, "api key store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return status.FromContextError(err).Err()
	}
	return nil
}

// authenticate returns the caller DID, or a non-empty status message when
// the request must be refused.
func (s *Service) authenticate(ctx context.Context, in *commonpb.Request) (string, string) {
	if _, err := s.envelope.Open(in.GetInput()); err != nil {
		logging.FromContext(ctx).Debug("request token rejected", zap.Error(err))
		if errors.Is(err, envelope.ErrExpired) {
			return "", MessageTokenExpired
		}
		return "", MessageTokenInvalid
	}
	did := strings.TrimSpace(grpcmeta.DIDFromContext(ctx))
	if did == "" {
		return "", MessageDIDRequired
	}
	return did, ""
}

func (s *Service) reply(key, did, message string) (*commonpb.Response, error) {
	output, err := s.envelope.Seal(envelope.Info{InfoAPIKey: key, InfoDID: did})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeEnvelopeSealFailed, "seal response", err)
	}
	return &commonpb.Response{
		Output:        output,
		Status:        true,
		StatusMessage: message,
	}, nil
}

func (s *Service) now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

func storageError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	return apperrors.Wrap(apperrors.CodeStorageFailure, op, err)
}
