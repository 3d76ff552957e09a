package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
)

type ChallengeVerifyInput struct {
	Method entity.Method
	Code   string `validate:"required,otpcode"`
}

// ChallengeVerify checks a step-up code against an active method. It
// never transitions enrollment state; it only answers yes or no, and
// every kind of no looks the same to the caller.
func (s *Usecase) ChallengeVerify(ctx context.Context, in ChallengeVerifyInput) error {
	ctx, span := s.startSpan(ctx, "ChallengeVerify")
	defer span.End()

	if in.Method.IsUnknown() {
		return goerror.NewBusiness("unsupported mfa method", goerror.CodeInvalidInput)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	enr, err := s.getEnrollmentForVerify(ctx, clm.UserID)
	if err != nil {
		return err
	}

	if !enr.MethodActive(in.Method) {
		slog.WarnContext(ctx, "challenge verification for inactive method",
			"user_id", clm.UserID, "method", in.Method.String())
		return errVerificationFailed()
	}

	if in.Method == entity.MethodTOTP {
		ok, err := s.checkTOTP(ctx, clm.UserID, enr.TOTPSecret, in.Code)
		if err != nil {
			return err
		}
		if !ok {
			slog.WarnContext(ctx, "totp challenge verification failed", "user_id", clm.UserID)
			return errVerificationFailed()
		}
		return nil
	}

	purpose, ok := in.Method.ChallengePurpose()
	if !ok {
		return errVerificationFailed()
	}

	valid, err := s.otps.Validate(ctx, purpose, clm.UserID, in.Code)
	if err != nil {
		return goerror.NewServer(err)
	}
	if !valid {
		slog.WarnContext(ctx, "otp challenge verification failed",
			"user_id", clm.UserID, "method", in.Method.String())
		return errVerificationFailed()
	}

	return nil
}
