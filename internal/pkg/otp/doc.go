// Package otp provides helpers for generating and validating one-time
// passwords (OTP): TOTP (time-based OTP) for authenticator apps, and
// random numeric codes for delivery over email/SMS.
//
// This is typically used for 2FA/MFA flows: generate a secret and URI for an
// authenticator app, then validate user-provided codes.
package otp
