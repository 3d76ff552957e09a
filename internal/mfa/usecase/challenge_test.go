package usecase

import (
	"testing"
	"time"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/shandysiswandi/goshield/internal/pkg/idempotency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeEmailEnrollment() *entity.Enrollment {
	return &entity.Enrollment{
		UserID:        testUserID,
		Email:         testEmail,
		EmailVerified: true,
		EmailEnabled:  true,
	}
}

func TestChallengeTOTPNotSupported(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Challenge(authCtx(), ChallengeInput{Method: entity.MethodTOTP})
	assertErrCode(t, err, goerror.CodeInvalidInput)
}

func TestChallengeUnknownMethod(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Challenge(authCtx(), ChallengeInput{Method: entity.MethodUnknown})
	assertErrCode(t, err, goerror.CodeInvalidInput)
}

func TestChallengeMissingEnrollment(t *testing.T) {
	fx := newFixture(t)
	fx.db.getErr = goerror.ErrNotFound

	_, err := fx.uc.Challenge(authCtx(), ChallengeInput{Method: entity.MethodEmail})
	assertVerificationFailed(t, err)
}

func TestChallengePendingMethodDenied(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{UserID: testUserID, Email: testEmail}

	_, err := fx.uc.Challenge(authCtx(), ChallengeInput{Method: entity.MethodEmail})
	assertVerificationFailed(t, err)
	assert.Empty(t, fx.otps.created)
}

func TestChallengeEmail(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = activeEmailEnrollment()

	out, err := fx.uc.Challenge(authCtx(), ChallengeInput{Method: entity.MethodEmail})
	require.NoError(t, err)
	require.NoError(t, fx.g.Wait())

	assert.Equal(t, entity.MethodEmail, out.Method)
	assert.Equal(t, testEmail, out.Destination)

	require.Len(t, fx.otps.created, 1)
	assert.Equal(t, entity.OTPPurposeChallengeEmail, fx.otps.created[0])

	events := fx.mq.published()
	require.Len(t, events, 1)
	assert.Equal(t, entity.OTPPurposeChallengeEmail, events[0].Purpose)
	assert.Equal(t, testEmail, events[0].Destination)
}

func TestChallengeThrottled(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = activeEmailEnrollment()
	fx.cfg.seconds["modules.mfa.otp_resend_ttl_seconds"] = 30 * time.Second
	fx.idemp.state = idempotency.StateInProgress

	_, err := fx.uc.Challenge(authCtx(), ChallengeInput{Method: entity.MethodEmail})
	assertErrCode(t, err, goerror.CodeTooManyRequest)

	assert.Equal(t, []string{"mfa:challenge:7:email"}, fx.idemp.keys)
	assert.Empty(t, fx.otps.created)
}
