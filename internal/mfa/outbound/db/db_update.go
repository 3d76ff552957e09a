package db

import (
	"context"

	"github.com/shandysiswandi/goshield/internal/mfa/entity"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
)

const markTOTPVerifiedQuery = `
UPDATE mfa_enrollments
SET totp_verified = TRUE, totp_enabled = TRUE, updated_at = NOW()
WHERE user_id = $1`

const markEmailVerifiedQuery = `
UPDATE mfa_enrollments
SET email_verified = TRUE, email_enabled = TRUE, updated_at = NOW()
WHERE user_id = $1`

const markPhoneVerifiedQuery = `
UPDATE mfa_enrollments
SET phone_verified = TRUE, phone_enabled = TRUE, updated_at = NOW()
WHERE user_id = $1`

func (s *DB) MarkMethodVerified(ctx context.Context, userID int64, method entity.Method) (err error) {
	ctx, span := s.startSpan(ctx, "MarkMethodVerified")
	defer func() { s.endSpan(span, err) }()

	var query string
	switch method {
	case entity.MethodTOTP:
		query = markTOTPVerifiedQuery
	case entity.MethodEmail:
		query = markEmailVerifiedQuery
	case entity.MethodPhone:
		query = markPhoneVerifiedQuery
	default:
		return ErrUnknownMethod
	}

	tag, err := s.conn.Exec(ctx, query, userID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

const markCodeUsedQuery = `
UPDATE mfa_otp_codes
SET is_used = TRUE
WHERE id = $1 AND is_used = FALSE`

// MarkCodeUsed consumes the code. The is_used guard makes concurrent
// validations race on the row update, so exactly one caller wins.
func (s *DB) MarkCodeUsed(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkCodeUsed")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, markCodeUsedQuery, id)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}

const incrementCodeAttemptQuery = `
UPDATE mfa_otp_codes
SET attempt = attempt + 1
WHERE id = $1`

func (s *DB) IncrementCodeAttempt(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "IncrementCodeAttempt")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, incrementCodeAttemptQuery, id)
	return s.mapError(err)
}
