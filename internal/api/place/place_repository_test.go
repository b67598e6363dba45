package place

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/akua-travel/akua-api/internal/types"
)

func TestRecomputeRating(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	t.Run("blends seed with review qualifications", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("SELECT qualification FROM reviews").
			WithArgs(placeID).
			WillReturnRows(pgxmock.NewRows([]string{"qualification"}).AddRow(5).AddRow(4))
		mockPool.ExpectExec("UPDATE places SET rating_average").
			WithArgs(4.33, placeID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		tx, err := mockPool.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, recomputeRating(ctx, tx, placeID, 4.0))
		require.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("no reviews falls back to the seed", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("SELECT qualification FROM reviews").
			WithArgs(placeID).
			WillReturnRows(pgxmock.NewRows([]string{"qualification"}))
		mockPool.ExpectExec("UPDATE places SET rating_average").
			WithArgs(4.2, placeID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		tx, err := mockPool.Begin(ctx)
		require.NoError(t, err)

		require.NoError(t, recomputeRating(ctx, tx, placeID, 4.2))
		require.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestLockPlaceSeed(t *testing.T) {
	ctx := context.Background()
	placeID := uuid.New()

	t.Run("returns the seed under row lock", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("SELECT rating_seed FROM places").
			WithArgs(placeID).
			WillReturnRows(pgxmock.NewRows([]string{"rating_seed"}).AddRow(3.9))

		tx, err := mockPool.Begin(ctx)
		require.NoError(t, err)

		seed, err := lockPlaceSeed(ctx, tx, placeID)
		require.NoError(t, err)
		require.Equal(t, 3.9, seed)
	})

	t.Run("unknown place is not found", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("SELECT rating_seed FROM places").
			WithArgs(placeID).
			WillReturnRows(pgxmock.NewRows([]string{"rating_seed"}))

		tx, err := mockPool.Begin(ctx)
		require.NoError(t, err)

		_, err = lockPlaceSeed(ctx, tx, placeID)
		require.ErrorIs(t, err, types.ErrNotFound)
	})
}
