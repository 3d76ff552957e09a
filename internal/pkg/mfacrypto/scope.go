package mfacrypto

// Purpose identifies what a ciphertext protects.
type Purpose string

const (
	// PurposeTOTPSecret scopes encryption to enrolled TOTP secrets.
	PurposeTOTPSecret Purpose = "totp_secret"
)

// Scope binds encryption to MFA-specific identifiers.
// This is used as AAD (Additional Authenticated Data) in AES-GCM.
type Scope struct {
	// UserID is the user identifier for scoping.
	UserID int64
	// Purpose is the encryption purpose.
	Purpose Purpose
}
