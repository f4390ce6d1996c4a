// Package export выгружает списки справочников в Excel.
package export

import (
	"bytes"
	"fmt"
	"time"

	"purchase-manager/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateLayout = "02.01.2006 15:04"
)

var (
	customerHeader = []interface{}{
		"Код", "Наименование", "ИНН", "КПП", "Юридический адрес", "Почтовый адрес",
		"E-mail", "Код головной организации", "Юрлицо", "Физлицо",
	}
	lotHeader = []interface{}{
		"ID", "Наименование", "Код контрагента", "Цена", "Валюта", "НДС",
		"Место доставки", "Дата доставки",
	}
)

// Customers строит книгу с одним листом контрагентов.
func Customers(rows []models.Customer) (*bytes.Buffer, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, c := range rows {
		data = append(data, []interface{}{
			c.CustomerCode,
			c.CustomerName,
			c.CustomerInn,
			c.CustomerKpp,
			c.CustomerLegalAddress,
			c.CustomerPostalAddress,
			c.CustomerEmail,
			c.CustomerCodeMain,
			yesNo(c.IsOrganization),
			yesNo(c.IsPerson),
		})
	}
	return book("Контрагенты", customerHeader, data)
}

// Lots строит книгу с одним листом лотов. Цена пишется числом.
func Lots(rows []models.Lot) (*bytes.Buffer, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, l := range rows {
		price, _ := l.Price.Float64()
		data = append(data, []interface{}{
			l.ID,
			l.LotName,
			l.CustomerCode,
			price,
			string(l.CurrencyCode),
			string(l.NdsRate),
			l.PlaceDelivery,
			formatDate(l.DateDelivery),
		})
	}
	return book("Лоты", lotHeader, data)
}

// FileName: имя файла выгрузки с отметкой времени.
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102_150405"))
}

func book(sheet string, header []interface{}, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write book: %w", err)
	}
	return buf, nil
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(dateLayout)
}
