package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"purchase-manager/internal/logger"
	"purchase-manager/internal/models"
	"purchase-manager/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var customerColumns = []string{
	"customer_code", "customer_name", "customer_inn", "customer_kpp",
	"customer_legal_address", "customer_postal_address", "customer_email",
	"customer_code_main", "is_organization", "is_person",
}

var lotColumns = []string{
	"id", "lot_name", "customer_code", "price", "currency_code",
	"nds_rate", "place_delivery", "date_delivery",
}

func newMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := New(sqlDB)
	require.NoError(t, err)
	return db, mock
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

//
// КОНТРАГЕНТЫ
//

func TestCustomerStore_Search(t *testing.T) {
	t.Run("all filters", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT \* FROM "customer" WHERE LOWER\(customer_name\) LIKE \$1 AND customer_inn = \$2 AND is_organization = \$3 ORDER BY customer_name asc`).
			WithArgs("%ром%", "7707083893", true).
			WillReturnRows(sqlmock.NewRows(customerColumns).
				AddRow("C-001", "Ромашка", "7707083893", "773601001", "", "", "info@romashka.ru", "", true, false))

		yes := true
		rows, err := store.Search(context.Background(), models.CustomerFilter{Name: "Ром", Inn: "7707083893", IsOrganization: &yes})

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "C-001", rows[0].CustomerCode)
		assert.True(t, rows[0].IsOrganization)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT \* FROM "customer" ORDER BY customer_name asc`).
			WillReturnRows(sqlmock.NewRows(customerColumns))

		rows, err := store.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestCustomerStore_Get(t *testing.T) {
	db, mock := newMock(t)
	store := NewCustomerStore(db)

	mock.ExpectQuery(`SELECT \* FROM "customer" WHERE customer_code = \$1`).
		WillReturnRows(sqlmock.NewRows(customerColumns))

	c, err := store.Get(context.Background(), "C-404")

	assert.Nil(t, c)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.EqualError(t, err, "Контрагент не найден: C-404")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerStore_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE customer_code = \$1`).
			WithArgs("C-001").
			WillReturnRows(countRows(0))
		mock.ExpectExec(`INSERT INTO "customer"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Create(context.Background(), &models.Customer{CustomerCode: " C-001 ", CustomerName: "Ромашка"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate code", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE customer_code = \$1`).
			WithArgs("C-001").
			WillReturnRows(countRows(1))

		err := store.Create(context.Background(), &models.Customer{CustomerCode: "C-001", CustomerName: "Ромашка"})

		assert.True(t, errors.Is(err, models.ErrAlreadyExists))
		assert.EqualError(t, err, "Контрагент с кодом C-001 уже существует")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent insert with the same code", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE customer_code = \$1`).
			WillReturnRows(countRows(0))
		mock.ExpectExec(`INSERT INTO "customer"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := store.Create(context.Background(), &models.Customer{CustomerCode: "C-001", CustomerName: "Ромашка"})

		assert.True(t, errors.Is(err, models.ErrAlreadyExists))
		assert.EqualError(t, err, "Контрагент с кодом C-001 уже существует")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank name never reaches the db", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		err := store.Create(context.Background(), &models.Customer{CustomerCode: "C-1", CustomerName: "   "})

		var errs validation.Errors
		require.True(t, errors.As(err, &errs))
		assert.Equal(t, validation.MsgRequired, errs["customerName"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid record never reaches the db", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		err := store.Create(context.Background(), &models.Customer{
			CustomerCode:   "C-001",
			CustomerName:   "Ромашка",
			IsOrganization: true,
			IsPerson:       true,
		})

		var errs validation.Errors
		require.True(t, errors.As(err, &errs))
		assert.Contains(t, errs, "isPerson")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerStore_Update(t *testing.T) {
	stored := func() *sqlmock.Rows {
		return sqlmock.NewRows(customerColumns).
			AddRow("C-001", "Ромашка", "7707083893", "", "", "", "info@romashka.ru", "", true, false)
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "customer" WHERE customer_code = \$1`).
			WillReturnRows(stored())
		mock.ExpectExec(`UPDATE "customer" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		name := "Ромашка-2"
		c, err := store.Update(context.Background(), "C-001", models.CustomerPatch{CustomerName: &name})

		require.NoError(t, err)
		assert.Equal(t, "Ромашка-2", c.CustomerName)
		assert.Equal(t, "7707083893", c.CustomerInn)
		assert.Equal(t, "info@romashka.ru", c.CustomerEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid result rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "customer" WHERE customer_code = \$1`).
			WillReturnRows(stored())
		mock.ExpectRollback()

		yes := true
		_, err := store.Update(context.Background(), "C-001", models.CustomerPatch{IsPerson: &yes})

		assert.True(t, errors.Is(err, models.ErrInvalid))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "customer" WHERE customer_code = \$1`).
			WillReturnRows(sqlmock.NewRows(customerColumns))
		mock.ExpectRollback()

		_, err := store.Update(context.Background(), "C-404", models.CustomerPatch{})

		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerStore_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "lot" WHERE customer_code = \$1`).
			WithArgs("C-001").
			WillReturnRows(countRows(0))
		mock.ExpectExec(`DELETE FROM "customer" WHERE customer_code = \$1`).
			WithArgs("C-001").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Delete(context.Background(), "C-001"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("referenced by lots", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "lot" WHERE customer_code = \$1`).
			WithArgs("C-001").
			WillReturnRows(countRows(2))

		err := store.Delete(context.Background(), "C-001")

		assert.True(t, errors.Is(err, models.ErrInUse))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lot added after the check", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "lot" WHERE customer_code = \$1`).
			WillReturnRows(countRows(0))
		mock.ExpectExec(`DELETE FROM "customer" WHERE customer_code = \$1`).
			WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

		err := store.Delete(context.Background(), "C-001")

		assert.True(t, errors.Is(err, models.ErrInUse))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewCustomerStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "lot" WHERE customer_code = \$1`).
			WillReturnRows(countRows(0))
		mock.ExpectExec(`DELETE FROM "customer" WHERE customer_code = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Delete(context.Background(), "C-404")

		assert.True(t, errors.Is(err, models.ErrNotFound))
	})
}

//
// ЛОТЫ
//

func TestLotStore_Search(t *testing.T) {
	db, mock := newMock(t)
	store := NewLotStore(db)

	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "lot" WHERE currency_code = \$1 ORDER BY lot_name asc,id asc`).
		WithArgs("EUR").
		WillReturnRows(sqlmock.NewRows(lotColumns).
			AddRow(1, "Бумага", "C-001", "1500.50", "EUR", "20%", "Москва", date).
			AddRow(2, "Картон", "C-002", "10", "EUR", "Без НДС", "", nil))

	rows, err := store.Search(context.Background(), models.LotFilter{CurrencyCode: "EUR"})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Price.Equal(decimal.RequireFromString("1500.5")))
	require.NotNil(t, rows[0].DateDelivery)
	assert.True(t, rows[0].DateDelivery.Equal(date))
	assert.Nil(t, rows[1].DateDelivery)
	assert.Equal(t, models.NdsNone, rows[1].NdsRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotStore_Create(t *testing.T) {
	lot := func() *models.Lot {
		return &models.Lot{
			ID:           99,
			LotName:      "Steel batch",
			CustomerCode: "C-001",
			Price:        decimal.NewFromInt(1500),
			CurrencyCode: models.CurrencyUSD,
			NdsRate:      models.Nds20,
		}
	}

	t.Run("id from database", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewLotStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE customer_code = \$1`).
			WithArgs("C-001").
			WillReturnRows(countRows(1))
		mock.ExpectQuery(`INSERT INTO "lot"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		l := lot()
		require.NoError(t, store.Create(context.Background(), l))
		assert.Equal(t, int64(7), l.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown customer", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewLotStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE customer_code = \$1`).
			WithArgs("C-001").
			WillReturnRows(countRows(0))

		err := store.Create(context.Background(), lot())

		assert.True(t, errors.Is(err, models.ErrInvalid))
		assert.EqualError(t, err, "Контрагент не найден: C-001")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("customer deleted after the check", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewLotStore(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE customer_code = \$1`).
			WillReturnRows(countRows(1))
		mock.ExpectQuery(`INSERT INTO "lot"`).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		err := store.Create(context.Background(), lot())

		assert.True(t, errors.Is(err, models.ErrInvalid))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("price below storage precision", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewLotStore(db)

		l := lot()
		l.Price = decimal.RequireFromString("0.001")
		err := store.Create(context.Background(), l)

		var errs validation.Errors
		require.True(t, errors.As(err, &errs))
		assert.Equal(t, validation.MsgPriceScale, errs["price"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive price", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewLotStore(db)

		l := lot()
		l.Price = decimal.Zero
		err := store.Create(context.Background(), l)

		var errs validation.Errors
		require.True(t, errors.As(err, &errs))
		assert.Equal(t, validation.MsgPositivePrice, errs["price"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLotStore_Update(t *testing.T) {
	db, mock := newMock(t)
	store := NewLotStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "lot" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(lotColumns).
			AddRow(42, "Бумага", "C-001", "100", "RUB", "20%", "", nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "customer" WHERE customer_code = \$1`).
		WithArgs("C-002").
		WillReturnRows(countRows(1))
	mock.ExpectExec(`UPDATE "lot" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	code := "C-002"
	l, err := store.Update(context.Background(), 42, models.LotPatch{CustomerCode: &code})

	require.NoError(t, err)
	assert.Equal(t, int64(42), l.ID)
	assert.Equal(t, "C-002", l.CustomerCode)
	assert.Equal(t, "Бумага", l.LotName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLotStore_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewLotStore(db)

		mock.ExpectExec(`DELETE FROM "lot" WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Delete(context.Background(), 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		store := NewLotStore(db)

		mock.ExpectExec(`DELETE FROM "lot" WHERE id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Delete(context.Background(), 42)

		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.EqualError(t, err, "Лот не найден: 42")
	})
}

//
// ПРОЧЕЕ
//

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%ромашка%", containsPattern("РОМАШКА"))
	assert.Equal(t, `%50\%\_a%`, containsPattern("50%_a"))
}

func TestSeed_SkipsFilledDatabase(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "customer"`).
		WillReturnRows(countRows(3))

	require.NoError(t, Seed(context.Background(), db, 10, logger.NewTestLogger()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoDataIsValid(t *testing.T) {
	for i := 1; i <= 20; i++ {
		c := demoCustomer(i)
		require.NoError(t, validation.Struct(c), "customer %d", i)

		l := demoLot(c.CustomerCode)
		require.NoError(t, validation.Struct(l), "lot for %s", c.CustomerCode)
	}
}
