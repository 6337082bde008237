package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var couponRowColumns = []string{
	"code", "discount_type", "discount_value", "min_order_value",
	"applies_to", "applicable_ids", "is_active",
	"starts_at", "expires_at", "max_uses", "used_count",
	"created_at", "updated_at",
}

// ids is the postgres array literal the driver would hand back, e.g. "{cat-1,cat-2}".
func addCouponRow(rows *sqlmock.Rows, code string, scope Scope, ids string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(code, "percentage", int64(10), int64(0),
		string(scope), []byte(ids), true,
		nil, nil, nil, 0,
		now, now)
}

func TestRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(couponRowColumns)
		addCouponRow(rows, "SAVE10", ScopeCategories, "{cat-1,cat-2}")

		mock.ExpectQuery("SELECT .* FROM coupons c WHERE c.code = \\$1").
			WithArgs("SAVE10").
			WillReturnRows(rows)

		c, err := repo.GetByCode(context.Background(), "SAVE10")
		assert.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
		assert.Equal(t, ScopeCategories, c.AppliesTo)
		assert.Equal(t, []string{"cat-1", "cat-2"}, c.ApplicableIDs)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM coupons c WHERE c.code = \\$1").
			WithArgs("MISSING").
			WillReturnRows(sqlmock.NewRows(couponRowColumns))

		c, err := repo.GetByCode(context.Background(), "MISSING")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("EmptyCode", func(t *testing.T) {
		_, err := repo.GetByCode(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})
}

func TestRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(couponRowColumns)
		addCouponRow(rows, "SAVE10", ScopeAll, "{}")
		addCouponRow(rows, "SHOES", ScopeCategories, "{cat-1}")

		mock.ExpectQuery("SELECT .* FROM coupons c WHERE c.is_active = TRUE ORDER BY c.code ASC").
			WillReturnRows(rows)

		res, err := repo.ListActive(context.Background())
		assert.NoError(t, err)
		assert.Len(t, res, 2)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM coupons c WHERE c.is_active = TRUE").
			WillReturnError(errors.New("db error"))

		_, err := repo.ListActive(context.Background())
		assert.Error(t, err)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	input := CreateCouponInput{
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		AppliesTo:     ScopeAll,
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(couponRowColumns)
		addCouponRow(rows, "SAVE10", ScopeAll, "{}")

		mock.ExpectQuery("INSERT INTO coupons").
			WillReturnRows(rows)

		c, err := repo.Create(context.Background(), input)
		assert.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
		assert.True(t, c.Active)
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO coupons").
			WillReturnError(&pq.Error{Code: pq.ErrorCode(PgUniqueViolation)})

		_, err := repo.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrCouponExists)
	})
}

func TestRepository_SetActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE coupons SET is_active = \\$1").
			WithArgs(false, "SAVE10").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetActive(context.Background(), "SAVE10", false)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE coupons SET is_active = \\$1").
			WithArgs(true, "MISSING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetActive(context.Background(), "MISSING", true)
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestRepository_IncrementUsage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE coupons SET used_count = used_count \\+ 1").
			WithArgs("SAVE10").
			WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := db.Begin()
		require.NoError(t, err)

		err = repo.IncrementUsage(context.Background(), tx, "SAVE10")
		assert.NoError(t, err)
	})

	t.Run("Exhausted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE coupons SET used_count = used_count \\+ 1").
			WithArgs("SAVE10").
			WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := db.Begin()
		require.NoError(t, err)

		err = repo.IncrementUsage(context.Background(), tx, "SAVE10")
		assert.ErrorIs(t, err, ErrCouponExhausted)
	})
}
