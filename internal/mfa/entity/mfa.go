package entity

import (
	"time"
)

// Enrollment is the per-user MFA row. Each method carries its own
// value plus a verified/enabled flag pair; a method is usable for
// step-up challenges only when both flags are true.
type Enrollment struct {
	UserID int64

	TOTPSecret   []byte // AES-GCM ciphertext, see pkg/mfacrypto
	TOTPVerified bool
	TOTPEnabled  bool

	Email         string
	EmailVerified bool
	EmailEnabled  bool

	Phone         string
	PhoneVerified bool
	PhoneEnabled  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MethodActive reports whether the method is verified and enabled.
func (e *Enrollment) MethodActive(m Method) bool {
	if e == nil {
		return false
	}

	switch m {
	case MethodTOTP:
		return e.TOTPVerified && e.TOTPEnabled
	case MethodEmail:
		return e.EmailVerified && e.EmailEnabled
	case MethodPhone:
		return e.PhoneVerified && e.PhoneEnabled
	default:
		return false
	}
}

// Destination returns where codes for the method are delivered.
func (e *Enrollment) Destination(m Method) string {
	if e == nil {
		return ""
	}

	switch m {
	case MethodEmail:
		return e.Email
	case MethodPhone:
		return e.Phone
	default:
		return ""
	}
}

// UpsertMethod carries the partial write performed when a user enrolls
// (or re-enrolls) a method. Only the field matching Method is used; the
// write always resets that method's verified/enabled flags.
type UpsertMethod struct {
	UserID     int64
	Method     Method
	TOTPSecret []byte
	Contact    string
}

// MaxOTPAttempts is the eligibility ceiling for a one-time code. A
// record is consulted only while attempt < MaxOTPAttempts, so 10 wrong
// retries are allowed after creation and the next one locks it for
// good without deleting the row.
const MaxOTPAttempts = 11

// OTPRecord is a single-use numeric code scoped by (purpose, user).
type OTPRecord struct {
	ID      int64 // snowflake, descending id equals descending creation order
	Purpose OTPPurpose
	UserID  int64
	Code    string
	IsUsed  bool
	Attempt int16
}
