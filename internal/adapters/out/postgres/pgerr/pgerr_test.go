package pgerr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"lechon/internal/adapters/out/postgres/pgerr"
	"lechon/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMap(t *testing.T) {
	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "slots_name_key"}

	testCases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"record not found", gorm.ErrRecordNotFound, errs.ErrObjectNotFound},
		{"wrapped record not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), errs.ErrObjectNotFound},
		{"unique violation", duplicate, errs.ErrObjectAlreadyExists},
		{"other pg error", &pgconn.PgError{Code: "40P01"}, errs.ErrStorageFailure},
		{"context canceled", context.Canceled, errs.ErrStorageFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := pgerr.Map("slots.add", "slot", "42", tc.err)

			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("keeps cause reachable", func(t *testing.T) {
		err := pgerr.Map("slots.add", "slot", "42", context.Canceled)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, pgerr.Map("slots.add", "slot", "42", nil))
	})

	t.Run("taxonomy errors pass through", func(t *testing.T) {
		notFound := errs.NewObjectNotFoundError("order", "7")

		err := pgerr.Map("orders.get", "slot", "42", notFound)

		var target *errs.ObjectNotFoundError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "order", target.ParamName)
	})
}
