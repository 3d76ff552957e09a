package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodFromString(t *testing.T) {
	assert.Equal(t, MethodTOTP, MethodFromString("totp"))
	assert.Equal(t, MethodEmail, MethodFromString("email"))
	assert.Equal(t, MethodPhone, MethodFromString("phone"))
	assert.Equal(t, MethodUnknown, MethodFromString("sms"))
	assert.Equal(t, MethodUnknown, MethodFromString(""))
}

func TestMethodRoundTrip(t *testing.T) {
	for _, m := range []Method{MethodTOTP, MethodEmail, MethodPhone} {
		assert.Equal(t, m, MethodFromString(m.String()))
		assert.False(t, m.IsUnknown())
	}

	assert.True(t, MethodUnknown.IsUnknown())
	assert.True(t, Method(99).IsUnknown())
}

func TestOTPPurposeWireStrings(t *testing.T) {
	assert.Equal(t, "set_mfa_email", OTPPurposeEnrollEmail.String())
	assert.Equal(t, "set_mfa_phone", OTPPurposeEnrollPhone.String())
	assert.Equal(t, "mfa_email_verification", OTPPurposeChallengeEmail.String())
	assert.Equal(t, "mfa_phone_verification", OTPPurposeChallengePhone.String())
}

func TestMethodPurposes(t *testing.T) {
	p, ok := MethodEmail.EnrollPurpose()
	assert.True(t, ok)
	assert.Equal(t, OTPPurposeEnrollEmail, p)

	p, ok = MethodPhone.ChallengePurpose()
	assert.True(t, ok)
	assert.Equal(t, OTPPurposeChallengePhone, p)

	// authenticator codes never go through the delivered-code store
	_, ok = MethodTOTP.EnrollPurpose()
	assert.False(t, ok)
	_, ok = MethodTOTP.ChallengePurpose()
	assert.False(t, ok)
}

func TestEnrollmentMethodActive(t *testing.T) {
	var nilEnr *Enrollment
	assert.False(t, nilEnr.MethodActive(MethodEmail))

	enr := &Enrollment{
		Email:         "a@b.co",
		EmailVerified: true,
		EmailEnabled:  false,
	}
	assert.False(t, enr.MethodActive(MethodEmail))

	enr.EmailEnabled = true
	assert.True(t, enr.MethodActive(MethodEmail))
	assert.False(t, enr.MethodActive(MethodTOTP))
	assert.Equal(t, "a@b.co", enr.Destination(MethodEmail))
	assert.Empty(t, enr.Destination(MethodTOTP))
}
