package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
)

type CaptchaVerifyInput struct {
	Token    string `validate:"required"`
	RemoteIP string
}

// CaptchaVerify asks the provider whether the token proves a human. A
// provider failure is a server error, never a pass.
func (s *Usecase) CaptchaVerify(ctx context.Context, in CaptchaVerifyInput) error {
	ctx, span := s.startSpan(ctx, "CaptchaVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	ok, err := s.captcha.Verify(ctx, in.Token, in.RemoteIP)
	if err != nil {
		slog.ErrorContext(ctx, "captcha provider call failed", "error", err)
		return goerror.NewServer(err)
	}

	if !ok {
		slog.WarnContext(ctx, "captcha verification rejected", "remote_ip", in.RemoteIP)
		return goerror.NewBusiness("captcha verification failed", goerror.CodeUnauthorized)
	}

	return nil
}
