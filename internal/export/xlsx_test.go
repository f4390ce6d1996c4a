package export

import (
	"testing"
	"time"

	"purchase-manager/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCustomers(t *testing.T) {
	buf, err := Customers([]models.Customer{
		{CustomerCode: "C1", CustomerName: "Ромашка", CustomerInn: "7707083893", IsOrganization: true},
		{CustomerCode: "P1", CustomerName: "Иванов", IsPerson: true},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Контрагенты")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Код", rows[0][0])
	assert.Equal(t, []string{"C1", "Ромашка", "7707083893"}, rows[1][:3])
	assert.Equal(t, "да", rows[1][8])
	assert.Equal(t, "P1", rows[2][0])
	assert.Equal(t, "да", rows[2][9])
}

func TestLots(t *testing.T) {
	date := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	buf, err := Lots([]models.Lot{
		{
			ID:           42,
			LotName:      "Бумага",
			CustomerCode: "C1",
			Price:        decimal.RequireFromString("1500.5"),
			CurrencyCode: models.CurrencyEUR,
			NdsRate:      models.Nds20,
			DateDelivery: &date,
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Лоты")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "42", rows[1][0])
	assert.Equal(t, "Бумага", rows[1][1])
	assert.Equal(t, "1500.5", rows[1][3])
	assert.Equal(t, "EUR", rows[1][4])
	assert.Equal(t, "20%", rows[1][5])
	assert.Equal(t, "01.05.2024 10:30", rows[1][7])
}

func TestEmptyExport(t *testing.T) {
	buf, err := Lots(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Лоты")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "lots_20240102_030405.xlsx", FileName("lots", now))
}
