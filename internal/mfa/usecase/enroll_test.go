package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/shandysiswandi/goshield/internal/pkg/idempotency"
	"github.com/shandysiswandi/goshield/internal/pkg/mfacrypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollUnknownMethod(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodUnknown})
	assertErrCode(t, err, goerror.CodeInvalidInput)
}

func TestEnrollUnauthenticated(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Enroll(context.Background(), EnrollInput{Method: entity.MethodTOTP})
	assertErrCode(t, err, goerror.CodeUnauthorized)
}

func TestEnrollInvalidEmail(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodEmail, Email: "not-an-email"})
	assertErrCode(t, err, goerror.CodeInvalidInput)
	assert.Empty(t, fx.db.upserts)
}

func TestEnrollTOTP(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodTOTP})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Secret)
	assert.True(t, strings.HasPrefix(out.URI, "otpauth://totp/"))
	assert.Empty(t, out.Destination)

	require.Len(t, fx.db.upserts, 1)
	up := fx.db.upserts[0]
	assert.Equal(t, testUserID, up.UserID)
	assert.Equal(t, entity.MethodTOTP, up.Method)

	// the stored secret is ciphertext, never the raw value
	assert.NotEqual(t, []byte(out.Secret), up.TOTPSecret)
	plain, err := fx.enc.Decrypt(up.TOTPSecret, mfacrypto.Scope{
		UserID:  testUserID,
		Purpose: mfacrypto.PurposeTOTPSecret,
	})
	require.NoError(t, err)
	assert.Equal(t, out.Secret, string(plain))
}

func TestEnrollEmail(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodEmail, Email: "User@Example.COM "})
	require.NoError(t, err)
	require.NoError(t, fx.g.Wait())

	assert.Equal(t, entity.MethodEmail, out.Method)
	assert.Equal(t, testEmail, out.Destination)

	require.Len(t, fx.db.upserts, 1)
	assert.Equal(t, testEmail, fx.db.upserts[0].Contact)

	require.Len(t, fx.otps.created, 1)
	assert.Equal(t, entity.OTPPurposeEnrollEmail, fx.otps.created[0])

	events := fx.mq.published()
	require.Len(t, events, 1)
	assert.Equal(t, testUserID, events[0].UserID)
	assert.Equal(t, entity.OTPPurposeEnrollEmail, events[0].Purpose)
	assert.Equal(t, testEmail, events[0].Destination)
	assert.Equal(t, "456789", events[0].Code)
}

func TestEnrollPhone(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodPhone, Phone: testPhone})
	require.NoError(t, err)
	require.NoError(t, fx.g.Wait())

	assert.Equal(t, testPhone, out.Destination)
	require.Len(t, fx.otps.created, 1)
	assert.Equal(t, entity.OTPPurposeEnrollPhone, fx.otps.created[0])
}

func TestEnrollEmailPublishesAfterRequestEnds(t *testing.T) {
	fx := newFixture(t)

	// simulate the client going away before the background publish runs
	ctx, cancel := context.WithCancel(authCtx())
	cancel()

	out, err := fx.uc.Enroll(ctx, EnrollInput{Method: entity.MethodEmail, Email: testEmail})
	require.NoError(t, err)
	require.NoError(t, fx.g.Wait())

	assert.Equal(t, testEmail, out.Destination)
	require.Len(t, fx.mq.published(), 1)
}

func TestEnrollDeliveredMissingContact(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodEmail})
	assertErrCode(t, err, goerror.CodeInvalidInput)
	assert.Empty(t, fx.db.upserts)
}

func TestEnrollThrottled(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.seconds["modules.mfa.otp_resend_ttl_seconds"] = 30 * time.Second
	fx.idemp.state = idempotency.StateInProgress

	_, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodEmail, Email: testEmail})
	assertErrCode(t, err, goerror.CodeTooManyRequest)

	assert.Equal(t, []string{"mfa:enroll:7:email"}, fx.idemp.keys)
	assert.Empty(t, fx.db.upserts)
	assert.Empty(t, fx.otps.created)
}

func TestEnrollThrottleTrackerDownFailsOpen(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.seconds["modules.mfa.otp_resend_ttl_seconds"] = 30 * time.Second
	fx.idemp.err = errors.New("redis unreachable")

	_, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodEmail, Email: testEmail})
	require.NoError(t, err)
	assert.Len(t, fx.otps.created, 1)
}

func TestEnrollUpsertError(t *testing.T) {
	fx := newFixture(t)
	fx.db.upsertErr = errors.New("db down")

	_, err := fx.uc.Enroll(authCtx(), EnrollInput{Method: entity.MethodEmail, Email: testEmail})
	assertErrCode(t, err, goerror.CodeInternal)
	assert.Empty(t, fx.otps.created)
}
