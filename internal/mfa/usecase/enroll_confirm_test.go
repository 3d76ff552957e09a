package usecase

import (
	"errors"
	"testing"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "JBSWY3DPEHPK3PXP"

func TestEnrollConfirmBadCodeFormat(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodTOTP, Code: "12ab56"})
	assertErrCode(t, err, goerror.CodeInvalidInput)
}

func TestEnrollConfirmMissingEnrollment(t *testing.T) {
	fx := newFixture(t)
	fx.db.getErr = goerror.ErrNotFound

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodTOTP, Code: "123456"})
	assertVerificationFailed(t, err)
}

func TestEnrollConfirmTOTP(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{
		UserID:     testUserID,
		TOTPSecret: fx.encryptSecret(t, testSecret),
	}

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{
		Method: entity.MethodTOTP,
		Code:   fx.totpCode(t, testSecret),
	})
	require.NoError(t, err)

	require.Len(t, fx.db.verified, 1)
	assert.Equal(t, testUserID, fx.db.verified[0].userID)
	assert.Equal(t, entity.MethodTOTP, fx.db.verified[0].method)
}

func TestEnrollConfirmTOTPWrongCode(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{
		UserID:     testUserID,
		TOTPSecret: fx.encryptSecret(t, testSecret),
	}

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodTOTP, Code: "000000"})
	assertVerificationFailed(t, err)
	assert.Empty(t, fx.db.verified)
}

func TestEnrollConfirmTOTPNotEnrolled(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{UserID: testUserID, Email: testEmail}

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodTOTP, Code: "123456"})
	assertVerificationFailed(t, err)
}

func TestEnrollConfirmEmail(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{UserID: testUserID, Email: testEmail}
	fx.otps.valid = true

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodEmail, Code: "456789"})
	require.NoError(t, err)

	require.Len(t, fx.otps.validated, 1)
	assert.Equal(t, entity.OTPPurposeEnrollEmail, fx.otps.validated[0])
	require.Len(t, fx.db.verified, 1)
	assert.Equal(t, entity.MethodEmail, fx.db.verified[0].method)
}

func TestEnrollConfirmEmailWrongCode(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{UserID: testUserID, Email: testEmail}
	fx.otps.valid = false

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodEmail, Code: "456789"})
	assertVerificationFailed(t, err)
	assert.Empty(t, fx.db.verified)
}

func TestEnrollConfirmEmailNotEnrolled(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{UserID: testUserID, Phone: testPhone}

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodEmail, Code: "456789"})
	assertVerificationFailed(t, err)
	assert.Empty(t, fx.otps.validated)
}

func TestEnrollConfirmStoreError(t *testing.T) {
	fx := newFixture(t)
	fx.db.enr = &entity.Enrollment{UserID: testUserID, Email: testEmail}
	fx.otps.validateErr = errors.New("db down")

	err := fx.uc.EnrollConfirm(authCtx(), EnrollConfirmInput{Method: entity.MethodEmail, Code: "456789"})
	assertErrCode(t, err, goerror.CodeInternal)
}
