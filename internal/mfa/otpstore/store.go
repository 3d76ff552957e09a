// Package otpstore issues and validates single-use numeric codes scoped
// by purpose and user.
package otpstore

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/shandysiswandi/goshield/internal/pkg/instrument"
	"github.com/shandysiswandi/goshield/internal/pkg/otp"
	"github.com/shandysiswandi/goshield/internal/pkg/uid"
	"go.opentelemetry.io/otel/trace"
)

// Repository is the storage contract the store needs.
type Repository interface {
	// NewCode removes every unused code for the record's (purpose, user)
	// pair and inserts the record, all inside one transaction.
	NewCode(ctx context.Context, rec entity.OTPRecord) error

	// GetLiveCode returns the newest unused code for (purpose, user) that
	// still has attempts left, or goerror.ErrNotFound.
	GetLiveCode(ctx context.Context, purpose entity.OTPPurpose, userID int64) (*entity.OTPRecord, error)

	// MarkCodeUsed consumes the code. It reports false when the code was
	// already consumed by a concurrent call.
	MarkCodeUsed(ctx context.Context, id int64) (bool, error)

	// IncrementCodeAttempt records a failed guess against the code.
	IncrementCodeAttempt(ctx context.Context, id int64) error
}

// Store issues and validates delivered one-time codes.
type Store struct {
	repo Repository
	gen  otp.CodeGenerator
	uid  uid.NumberID
	ins  instrument.Instrumentation
}

// Dependency bundles what New needs.
type Dependency struct {
	Repo       Repository
	Generator  otp.CodeGenerator
	UID        uid.NumberID
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Store {
	return &Store{
		repo: dep.Repo,
		gen:  dep.Generator,
		uid:  dep.UID,
		ins:  dep.Instrument,
	}
}

func (s *Store) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mfa.otpstore").Start(ctx, name)
}

// Create issues a fresh 6-digit code for (purpose, user). Any unused
// codes for the pair are purged in the same transaction, so at most one
// live code exists per pair.
func (s *Store) Create(ctx context.Context, purpose entity.OTPPurpose, userID int64) (string, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	code, err := s.gen.Generate(otp.DefaultCodeDigits)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", userID, "error", err)
		return "", err
	}

	rec := entity.OTPRecord{
		ID:      s.uid.Generate(),
		Purpose: purpose,
		UserID:  userID,
		Code:    code,
	}

	if err := s.repo.NewCode(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to store otp code", "user_id", userID, "error", err)
		return "", err
	}

	return code, nil
}

// Validate checks a guess against the newest live code for (purpose,
// user). A match consumes the code; a mismatch burns one attempt. When
// no live code exists, nothing is mutated.
func (s *Store) Validate(ctx context.Context, purpose entity.OTPPurpose, userID int64, code string) (bool, error) {
	ctx, span := s.startSpan(ctx, "Validate")
	defer span.End()

	rec, err := s.repo.GetLiveCode(ctx, purpose, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get live otp code", "user_id", userID, "error", err)
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		if err := s.repo.IncrementCodeAttempt(ctx, rec.ID); err != nil {
			slog.ErrorContext(ctx, "failed to increment otp attempt", "user_id", userID, "error", err)
			return false, err
		}
		return false, nil
	}

	used, err := s.repo.MarkCodeUsed(ctx, rec.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark otp code used", "user_id", userID, "error", err)
		return false, err
	}

	// A concurrent validation already consumed this code.
	return used, nil
}
