package inbound

import (
	"context"

	"github.com/shandysiswandi/goshield/internal/mfa/usecase"
	"github.com/shandysiswandi/goshield/internal/pkg/router"
)

type uc interface {
	CaptchaVerify(ctx context.Context, in usecase.CaptchaVerifyInput) error

	Status(ctx context.Context) (*usecase.StatusOutput, error)

	Enroll(ctx context.Context, in usecase.EnrollInput) (*usecase.EnrollOutput, error)
	EnrollConfirm(ctx context.Context, in usecase.EnrollConfirmInput) error

	Challenge(ctx context.Context, in usecase.ChallengeInput) (*usecase.ChallengeOutput, error)
	ChallengeVerify(ctx context.Context, in usecase.ChallengeVerifyInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Human verification (public)
	r.POST("/api/v1/mfa/captcha/verify", end.CaptchaVerify)

	// Enrollment (need authenticated)
	r.GET("/api/v1/mfa/status", end.Status)
	r.POST("/api/v1/mfa/enroll", end.Enroll)
	r.POST("/api/v1/mfa/enroll/confirm", end.EnrollConfirm)

	// Step-up challenges (need authenticated)
	r.POST("/api/v1/mfa/challenge", end.Challenge)
	r.POST("/api/v1/mfa/challenge/verify", end.ChallengeVerify)
}
