package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
)

type ChallengeInput struct {
	Method entity.Method
}

type ChallengeOutput struct {
	Method      entity.Method
	Destination string
}

// Challenge issues a step-up code over a delivered method. The method
// must be verified and enabled; authenticator codes are generated by
// the user's device, so there is no challenge for them.
func (s *Usecase) Challenge(ctx context.Context, in ChallengeInput) (*ChallengeOutput, error) {
	ctx, span := s.startSpan(ctx, "Challenge")
	defer span.End()

	purpose, ok := in.Method.ChallengePurpose()
	if !ok {
		return nil, goerror.NewBusiness("unsupported mfa method for challenge", goerror.CodeInvalidInput)
	}

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	enr, err := s.getEnrollmentForVerify(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	if !enr.MethodActive(in.Method) {
		slog.WarnContext(ctx, "challenge requested for inactive method",
			"user_id", clm.UserID, "method", in.Method.String())
		return nil, errVerificationFailed()
	}

	key := fmt.Sprintf("mfa:challenge:%d:%s", clm.UserID, in.Method.String())
	if err := s.throttleIssue(ctx, key); err != nil {
		return nil, err
	}

	code, err := s.otps.Create(ctx, purpose, clm.UserID)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	destination := enr.Destination(in.Method)
	s.publishOTPIssued(ctx, OTPIssuedEvent{
		UserID:      clm.UserID,
		Method:      in.Method,
		Purpose:     purpose,
		Destination: destination,
		Code:        code,
	})

	return &ChallengeOutput{
		Method:      in.Method,
		Destination: destination,
	}, nil
}
