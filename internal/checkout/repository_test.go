package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	session := &Session{
		ID:            uuid.New(),
		UserID:        7,
		Status:        SessionStatusPending,
		Subtotal:      130000,
		Discount:      13000,
		Total:         117000,
		TotalQuantity: 3,
		Currency:      "VND",
		CreatedAt:     now,
		ExpiresAt:     now.Add(sessionTTL),
	}
	session.Items = []SessionItem{
		{ID: uuid.New(), SessionID: session.ID, CartItemID: "item-1", ProductID: "prod-1", ProductName: "Sneakers", Price: 50000, Quantity: 2},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO checkout_sessions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO checkout_session_items").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateSession(context.Background(), session)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ItemInsertFails_RollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO checkout_sessions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO checkout_session_items").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.CreateSession(context.Background(), session)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	sessionID := uuid.New()
	now := time.Now()

	headerColumns := []string{
		"id", "user_id", "status", "coupon_code", "address_id",
		"subtotal", "discount", "total", "total_quantity", "currency",
		"created_at", "expires_at", "confirmed_at",
	}
	itemColumns := []string{
		"id", "session_id", "cart_item_id", "product_id", "variant_id",
		"category_id", "product_name", "price", "quantity",
	}

	t.Run("Success", func(t *testing.T) {
		header := sqlmock.NewRows(headerColumns).AddRow(
			sessionID.String(), 7, "PENDING", nil, nil,
			int64(130000), int64(0), int64(130000), 3, "VND",
			now, now.Add(sessionTTL), nil,
		)
		items := sqlmock.NewRows(itemColumns).AddRow(
			uuid.NewString(), sessionID.String(), "item-1", "prod-1", nil,
			nil, "Sneakers", int64(50000), 2,
		)

		mock.ExpectQuery("SELECT .* FROM checkout_sessions WHERE id = \\$1").
			WithArgs(sessionID).
			WillReturnRows(header)
		mock.ExpectQuery("SELECT .* FROM checkout_session_items WHERE session_id = \\$1").
			WithArgs(sessionID).
			WillReturnRows(items)

		s, err := repo.GetSession(context.Background(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, SessionStatusPending, s.Status)
		assert.Len(t, s.Items, 1)
		assert.Equal(t, int64(100000), s.Items[0].LineTotal())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM checkout_sessions WHERE id = \\$1").
			WithArgs(sessionID).
			WillReturnRows(sqlmock.NewRows(headerColumns))

		s, err := repo.GetSession(context.Background(), sessionID)
		assert.NoError(t, err)
		assert.Nil(t, s)
	})
}

func TestRepository_MarkConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	sessionID := uuid.New()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE checkout_sessions SET status = \\$1, confirmed_at = \\$2").
			WithArgs(string(SessionStatusConfirmed), now, sessionID, string(SessionStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkConfirmed(context.Background(), sessionID, now)
		assert.NoError(t, err)
	})

	t.Run("AlreadyConfirmed", func(t *testing.T) {
		mock.ExpectExec("UPDATE checkout_sessions SET status = \\$1, confirmed_at = \\$2").
			WithArgs(string(SessionStatusConfirmed), now, sessionID, string(SessionStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkConfirmed(context.Background(), sessionID, now)
		assert.ErrorIs(t, err, ErrSessionConfirmed)
	})
}
