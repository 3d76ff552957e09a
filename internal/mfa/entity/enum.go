package entity

// Method identifies an MFA verification channel.
type Method int16

const (
	// MethodUnknown means the method is not known / not set.
	MethodUnknown Method = 0

	// MethodTOTP is an authenticator-app time-based code.
	MethodTOTP Method = 1

	// MethodEmail is a one-time code delivered over email.
	MethodEmail Method = 2

	// MethodPhone is a one-time code delivered over SMS.
	MethodPhone Method = 3
)

func MethodFromString(str string) Method {
	switch str {
	case "totp":
		return MethodTOTP
	case "email":
		return MethodEmail
	case "phone":
		return MethodPhone
	default:
		return MethodUnknown
	}
}

func (m Method) String() string {
	switch m {
	case MethodTOTP:
		return "totp"
	case MethodEmail:
		return "email"
	case MethodPhone:
		return "phone"
	default:
		return "unknown"
	}
}

func (m Method) IsUnknown() bool {
	switch m {
	case MethodTOTP, MethodEmail, MethodPhone:
		return false
	default:
		return true
	}
}

// OTPPurpose scopes a one-time code to the flow that issued it, so an
// enrollment code can never satisfy a step-up challenge and vice versa.
type OTPPurpose int16

const (
	OTPPurposeUnknown        OTPPurpose = 0
	OTPPurposeEnrollEmail    OTPPurpose = 1
	OTPPurposeEnrollPhone    OTPPurpose = 2
	OTPPurposeChallengeEmail OTPPurpose = 3
	OTPPurposeChallengePhone OTPPurpose = 4
)

func (p OTPPurpose) String() string {
	switch p {
	case OTPPurposeEnrollEmail:
		return "set_mfa_email"
	case OTPPurposeEnrollPhone:
		return "set_mfa_phone"
	case OTPPurposeChallengeEmail:
		return "mfa_email_verification"
	case OTPPurposeChallengePhone:
		return "mfa_phone_verification"
	default:
		return "unknown"
	}
}

// EnrollPurpose returns the purpose tag used when proving possession of a
// newly enrolled contact. TOTP has no code purpose, it returns false.
func (m Method) EnrollPurpose() (OTPPurpose, bool) {
	switch m {
	case MethodEmail:
		return OTPPurposeEnrollEmail, true
	case MethodPhone:
		return OTPPurposeEnrollPhone, true
	default:
		return OTPPurposeUnknown, false
	}
}

// ChallengePurpose returns the purpose tag used for login step-up codes.
func (m Method) ChallengePurpose() (OTPPurpose, bool) {
	switch m {
	case MethodEmail:
		return OTPPurposeChallengeEmail, true
	case MethodPhone:
		return OTPPurposeChallengePhone, true
	default:
		return OTPPurposeUnknown, false
	}
}
