package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/goshield/internal/mfa/entity"
)

const purgeUnusedCodesQuery = `
DELETE FROM mfa_otp_codes
WHERE purpose = $1 AND user_id = $2 AND is_used = FALSE`

const insertCodeQuery = `
INSERT INTO mfa_otp_codes (id, purpose, user_id, code, is_used, attempt)
VALUES ($1, $2, $3, $4, FALSE, 0)`

// NewCode purges unused codes for the (purpose, user) pair and inserts
// the fresh one inside a single transaction, so a reader can never see
// the pair without a live code mid-replacement.
func (s *DB) NewCode(ctx context.Context, rec entity.OTPRecord) (err error) {
	ctx, span := s.startSpan(ctx, "NewCode")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, purgeUnusedCodesQuery, int16(rec.Purpose), rec.UserID); err != nil {
		return s.mapError(err)
	}

	if _, err := tx.Exec(ctx, insertCodeQuery, rec.ID, int16(rec.Purpose), rec.UserID, rec.Code); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
