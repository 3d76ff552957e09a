package db

import (
	"context"
	"errors"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
)

// ErrUnknownMethod indicates an upsert for a method this store cannot persist.
var ErrUnknownMethod = errors.New("db: unknown mfa method")

// Each upsert replaces the method's value and drops its verified and
// enabled flags, so a re-enrolled method always goes back to pending.
const upsertTOTPQuery = `
INSERT INTO mfa_enrollments (user_id, totp_secret, totp_verified, totp_enabled)
VALUES ($1, $2, FALSE, FALSE)
ON CONFLICT (user_id) DO UPDATE
SET totp_secret = EXCLUDED.totp_secret,
    totp_verified = FALSE,
    totp_enabled = FALSE,
    updated_at = NOW()`

const upsertEmailQuery = `
INSERT INTO mfa_enrollments (user_id, email, email_verified, email_enabled)
VALUES ($1, $2, FALSE, FALSE)
ON CONFLICT (user_id) DO UPDATE
SET email = EXCLUDED.email,
    email_verified = FALSE,
    email_enabled = FALSE,
    updated_at = NOW()`

const upsertPhoneQuery = `
INSERT INTO mfa_enrollments (user_id, phone, phone_verified, phone_enabled)
VALUES ($1, $2, FALSE, FALSE)
ON CONFLICT (user_id) DO UPDATE
SET phone = EXCLUDED.phone,
    phone_verified = FALSE,
    phone_enabled = FALSE,
    updated_at = NOW()`

func (s *DB) UpsertEnrollmentMethod(ctx context.Context, in entity.UpsertMethod) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertEnrollmentMethod")
	defer func() { s.endSpan(span, err) }()

	switch in.Method {
	case entity.MethodTOTP:
		_, err = s.conn.Exec(ctx, upsertTOTPQuery, in.UserID, in.TOTPSecret)
	case entity.MethodEmail:
		_, err = s.conn.Exec(ctx, upsertEmailQuery, in.UserID, in.Contact)
	case entity.MethodPhone:
		_, err = s.conn.Exec(ctx, upsertPhoneQuery, in.UserID, in.Contact)
	default:
		return ErrUnknownMethod
	}

	return s.mapError(err)
}
