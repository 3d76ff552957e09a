package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shandysiswandi/goshield/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	s := &DB{}

	assert.NoError(t, s.mapError(nil))
	assert.ErrorIs(t, s.mapError(pgx.ErrNoRows), goerror.ErrNotFound)
	assert.ErrorIs(t, s.mapError(&pgconn.PgError{Code: "23505"}), goerror.ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, s.mapError(other))

	foreignKey := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, foreignKey, s.mapError(foreignKey))
}
