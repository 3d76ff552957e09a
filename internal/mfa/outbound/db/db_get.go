package db

import (
	"context"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
)

const getEnrollmentQuery = `
SELECT user_id,
       COALESCE(totp_secret, ''::bytea), totp_verified, totp_enabled,
       COALESCE(email, ''), email_verified, email_enabled,
       COALESCE(phone, ''), phone_verified, phone_enabled,
       created_at, updated_at
FROM mfa_enrollments
WHERE user_id = $1`

func (s *DB) GetEnrollment(ctx context.Context, userID int64) (_ *entity.Enrollment, err error) {
	ctx, span := s.startSpan(ctx, "GetEnrollment")
	defer func() { s.endSpan(span, err) }()

	var enr entity.Enrollment
	err = s.conn.QueryRow(ctx, getEnrollmentQuery, userID).Scan(
		&enr.UserID,
		&enr.TOTPSecret, &enr.TOTPVerified, &enr.TOTPEnabled,
		&enr.Email, &enr.EmailVerified, &enr.EmailEnabled,
		&enr.Phone, &enr.PhoneVerified, &enr.PhoneEnabled,
		&enr.CreatedAt, &enr.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &enr, nil
}

const getLiveCodeQuery = `
SELECT id, purpose, user_id, code, is_used, attempt
FROM mfa_otp_codes
WHERE purpose = $1 AND user_id = $2 AND attempt < $3 AND is_used = FALSE
ORDER BY id DESC
LIMIT 1`

func (s *DB) GetLiveCode(ctx context.Context, purpose entity.OTPPurpose, userID int64) (_ *entity.OTPRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetLiveCode")
	defer func() { s.endSpan(span, err) }()

	var rec entity.OTPRecord
	err = s.conn.QueryRow(ctx, getLiveCodeQuery, int16(purpose), userID, int16(entity.MaxOTPAttempts)).Scan(
		&rec.ID, &rec.Purpose, &rec.UserID, &rec.Code, &rec.IsUsed, &rec.Attempt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &rec, nil
}
