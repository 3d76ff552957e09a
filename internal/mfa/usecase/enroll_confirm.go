package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
)

type EnrollConfirmInput struct {
	Method entity.Method
	Code   string `validate:"required,otpcode"`
}

// EnrollConfirm proves possession of a pending method. Success marks
// the method verified and enabled; any failure leaves state untouched
// and surfaces the uniform denial.
func (s *Usecase) EnrollConfirm(ctx context.Context, in EnrollConfirmInput) error {
	ctx, span := s.startSpan(ctx, "EnrollConfirm")
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

	if in.Method == entity.MethodTOTP {
		ok, err := s.checkTOTP(ctx, clm.UserID, enr.TOTPSecret, in.Code)
		if err != nil {
			return err
		}
		if !ok {
			slog.WarnContext(ctx, "totp enrollment confirmation failed", "user_id", clm.UserID)
			return errVerificationFailed()
		}
	} else {
		purpose, ok := in.Method.EnrollPurpose()
		if !ok || enr.Destination(in.Method) == "" {
			slog.WarnContext(ctx, "enrollment confirmation for unenrolled method",
				"user_id", clm.UserID, "method", in.Method.String())
			return errVerificationFailed()
		}

		valid, err := s.otps.Validate(ctx, purpose, clm.UserID, in.Code)
		if err != nil {
			return goerror.NewServer(err)
		}
		if !valid {
			slog.WarnContext(ctx, "otp enrollment confirmation failed",
				"user_id", clm.UserID, "method", in.Method.String())
			return errVerificationFailed()
		}
	}

	if err := s.repoDB.MarkMethodVerified(ctx, clm.UserID, in.Method); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark method verified",
			"user_id", clm.UserID, "method", in.Method.String(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
