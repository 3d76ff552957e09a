package usecase

import (
	"testing"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeTOTPEnrollment(t *testing.T, fx *fixture) *entity.Enrollment {
	t.Helper()

	return &entity.Enrollment{
		UserID:       testUserID,
		TOTPSecret:   fx.encryptSecret(t, testSecret),
		TOTPVerified: true,
		TOTPEnabled:  true,
	}
}

func TestChallengeVerifyInactiveMethod(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{UserID: testUserID, Email: testEmail}

	err := fx.uc.ChallengeVerify(authCtx(), ChallengeVerifyInput{Method: entity.MethodEmail, Code: "456789"})
	assertVerificationFailed(t, err)
	assert.Empty(t, fx.otps.validated)
}

func TestChallengeVerifyTOTP(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = activeTOTPEnrollment(t, fx)

	err := fx.uc.ChallengeVerify(authCtx(), ChallengeVerifyInput{
		Method: entity.MethodTOTP,
		Code:   fx.totpCode(t, testSecret),
	})
	require.NoError(t, err)

	// a step-up check never touches enrollment state
	assert.Empty(t, fx.db.verified)
	assert.Empty(t, fx.db.upserts)
}

func TestChallengeVerifyTOTPWrongCode(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = activeTOTPEnrollment(t, fx)

	err := fx.uc.ChallengeVerify(authCtx(), ChallengeVerifyInput{Method: entity.MethodTOTP, Code: "000000"})
	assertVerificationFailed(t, err)
}

func TestChallengeVerifyEmail(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = activeEmailEnrollment()
	fx.otps.valid = true

	err := fx.uc.ChallengeVerify(authCtx(), ChallengeVerifyInput{Method: entity.MethodEmail, Code: "456789"})
	require.NoError(t, err)

	require.Len(t, fx.otps.validated, 1)
	assert.Equal(t, entity.OTPPurposeChallengeEmail, fx.otps.validated[0])
}

func TestChallengeVerifyEmailWrongCode(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = activeEmailEnrollment()
	fx.otps.valid = false

	err := fx.uc.ChallengeVerify(authCtx(), ChallengeVerifyInput{Method: entity.MethodEmail, Code: "456789"})
	assertVerificationFailed(t, err)
}

func TestChallengeVerifyUnknownMethod(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.ChallengeVerify(authCtx(), ChallengeVerifyInput{Method: entity.MethodUnknown, Code: "456789"})
	assertErrCode(t, err, goerror.CodeInvalidInput)
}
