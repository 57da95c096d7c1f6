package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderNumberSequence_NextNumber(t *testing.T) {
	t.Run("returns the incremented counter", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		seq := NewOrderNumberSequence(db)

		storeID := uuid.New()
		mock.ExpectQuery(`INSERT INTO order_number_sequences .*ON CONFLICT \(store_id\).*RETURNING last_number`).
			WithArgs(storeID).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(int64(42)))

		number, err := seq.NextNumber(context.Background(), storeID)

		require.NoError(t, err)
		assert.Equal(t, int64(42), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps allocation errors", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		seq := NewOrderNumberSequence(db)

		storeID := uuid.New()
		mock.ExpectQuery(`INSERT INTO order_number_sequences`).
			WithArgs(storeID).
			WillReturnError(assert.AnError)

		_, err := seq.NextNumber(context.Background(), storeID)

		assert.ErrorContains(t, err, "failed to allocate order number")
	})
}
