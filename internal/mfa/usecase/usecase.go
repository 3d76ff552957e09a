package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/captcha"
	"github.com/shandysiswandi/goshield/internal/pkg/clock"
	"github.com/shandysiswandi/goshield/internal/pkg/config"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/shandysiswandi/goshield/internal/pkg/goroutine"
	"github.com/shandysiswandi/goshield/internal/pkg/idempotency"
	"github.com/shandysiswandi/goshield/internal/pkg/instrument"
	"github.com/shandysiswandi/goshield/internal/pkg/jwt"
	"github.com/shandysiswandi/goshield/internal/pkg/mfacrypto"
	"github.com/shandysiswandi/goshield/internal/pkg/otp"
	"github.com/shandysiswandi/goshield/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// OTPIssuedEvent is published whenever a delivered code is issued, so a
// downstream consumer can send it over the right channel.
type OTPIssuedEvent struct {
	UserID      int64
	Method      entity.Method
	Purpose     entity.OTPPurpose
	Destination string
	Code        string
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoDB interface {
	GetEnrollment(ctx context.Context, userID int64) (*entity.Enrollment, error)
	UpsertEnrollmentMethod(ctx context.Context, in entity.UpsertMethod) error
	MarkMethodVerified(ctx context.Context, userID int64, method entity.Method) error
}

type otpStore interface {
	Create(ctx context.Context, purpose entity.OTPPurpose, userID int64) (string, error)
	Validate(ctx context.Context, purpose entity.OTPPurpose, userID int64, code string) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	otps          otpStore
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	captcha       captcha.Verifier
	encryptor     mfacrypto.Encryptor
	totp          otp.OTP
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	OTPStore      otpStore
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Captcha       captcha.Verifier
	Encryptor     mfacrypto.Encryptor
	Totp          otp.OTP
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		otps:          dep.OTPStore,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		captcha:       dep.Captcha,
		encryptor:     dep.Encryptor,
		totp:          dep.Totp,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mfa.usecase").Start(ctx, name)
}

// errVerificationFailed is the uniform denial for every verification
// path. Callers must never learn whether the method was unenrolled, the
// code expired, attempts ran out, or the guess was wrong.
func errVerificationFailed() error {
	return goerror.NewBusiness("verification failed", goerror.CodeUnauthorized)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// getEnrollmentForVerify loads the enrollment row, collapsing a missing
// row into the uniform denial.
func (s *Usecase) getEnrollmentForVerify(ctx context.Context, userID int64) (*entity.Enrollment, error) {
	enr, err := s.repoDB.GetEnrollment(ctx, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "mfa verification against missing enrollment", "user_id", userID)
		return nil, errVerificationFailed()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get enrollment", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return enr, nil
}

// checkTOTP decrypts the stored secret and validates the code inside the
// configured time window.
func (s *Usecase) checkTOTP(ctx context.Context, userID int64, secretCiphertext []byte, code string) (bool, error) {
	if len(secretCiphertext) == 0 {
		return false, nil
	}

	secret, err := s.encryptor.Decrypt(secretCiphertext, mfacrypto.Scope{
		UserID:  userID,
		Purpose: mfacrypto.PurposeTOTPSecret,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp secret", "user_id", userID, "error", err)
		return false, goerror.NewServer(err)
	}

	return s.totp.Validate(code, string(secret), s.clock.Now()), nil
}

// throttleIssue rejects a code issue when one was handed out for the
// same key inside the cooldown window. The tracker being unreachable
// only disables the throttle, it never blocks the flow.
func (s *Usecase) throttleIssue(ctx context.Context, key string) error {
	ttl := s.cfg.GetSecond("modules.mfa.otp_resend_ttl_seconds")
	if ttl <= 0 {
		return nil
	}

	state, err := s.idemp.Acquire(ctx, key, ttl)
	if err != nil {
		slog.WarnContext(ctx, "otp throttle unavailable, allowing request", "key", key, "error", err)
		return nil
	}

	if state != idempotency.StateNone {
		return goerror.NewBusiness("a code was issued recently, try again later", goerror.CodeTooManyRequest)
	}

	return nil
}

// publishOTPIssued hands the event to a bounded background worker so
// slow brokers never block the request path. The worker context is
// detached from the request: the event is the only delivery path of
// the code, so a client disconnect must not drop it.
func (s *Usecase) publishOTPIssued(ctx context.Context, msg OTPIssuedEvent) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(gctx context.Context) error {
		if err := s.repoMessaging.PublishOTPIssued(gctx, msg); err != nil {
			slog.ErrorContext(gctx, "failed to publish otp issued event",
				"user_id", msg.UserID, "method", msg.Method.String(), "error", err)
			return err
		}
		return nil
	})
}
