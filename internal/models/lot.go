package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// цена уходит в JSON числом, а не строкой
	decimal.MarshalJSONWithoutQuotes = true
}

type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

func Currencies() []Currency {
	return []Currency{CurrencyRUB, CurrencyUSD, CurrencyEUR}
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyRUB, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// NdsRate — метка ставки НДС, не вычисляемая сумма налога.
type NdsRate string

const (
	NdsNone NdsRate = "Без НДС"
	Nds18   NdsRate = "18%"
	Nds20   NdsRate = "20%"
)

func NdsRates() []NdsRate {
	return []NdsRate{NdsNone, Nds18, Nds20}
}

func (r NdsRate) Valid() bool {
	switch r {
	case NdsNone, Nds18, Nds20:
		return true
	}
	return false
}

type Lot struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	LotName       string          `gorm:"size:255;not null" json:"lotName" validate:"required,notblank,max=255"`
	CustomerCode  string          `gorm:"size:50;not null;index" json:"customerCode" validate:"required,notblank,max=50"`
	Price         decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"price" validate:"gt=0,price_scale"`
	CurrencyCode  Currency        `gorm:"size:3;not null" json:"currencyCode" validate:"required,currency"`
	NdsRate       NdsRate         `gorm:"size:10;not null" json:"ndsRate" validate:"required,nds_rate"`
	PlaceDelivery string          `gorm:"type:text" json:"placeDelivery,omitempty"`
	DateDelivery  *time.Time      `json:"dateDelivery,omitempty"`
}

func (Lot) TableName() string { return "lot" }

// NullableTime различает в PUT-запросе отсутствующее поле и явный null.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func SetTime(t *time.Time) NullableTime {
	return NullableTime{Set: true, Value: t}
}

func (n NullableTime) IsZero() bool { return !n.Set }

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *NullableTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

// LotPatch — тело PUT /lots/{id}; id в теле игнорируется.
type LotPatch struct {
	LotName       *string          `json:"lotName,omitempty"`
	CustomerCode  *string          `json:"customerCode,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	CurrencyCode  *Currency        `json:"currencyCode,omitempty"`
	NdsRate       *NdsRate         `json:"ndsRate,omitempty"`
	PlaceDelivery *string          `json:"placeDelivery,omitempty"`
	DateDelivery  NullableTime     `json:"dateDelivery,omitzero"`
}

func FullLotPatch(l Lot) LotPatch {
	return LotPatch{
		LotName:       &l.LotName,
		CustomerCode:  &l.CustomerCode,
		Price:         &l.Price,
		CurrencyCode:  &l.CurrencyCode,
		NdsRate:       &l.NdsRate,
		PlaceDelivery: &l.PlaceDelivery,
		DateDelivery:  SetTime(l.DateDelivery),
	}
}

func (p LotPatch) Apply(l *Lot) {
	setString(&l.LotName, p.LotName)
	setString(&l.CustomerCode, p.CustomerCode)
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.CurrencyCode != nil {
		l.CurrencyCode = *p.CurrencyCode
	}
	if p.NdsRate != nil {
		l.NdsRate = *p.NdsRate
	}
	setString(&l.PlaceDelivery, p.PlaceDelivery)
	if p.DateDelivery.Set {
		l.DateDelivery = p.DateDelivery.Value
	}
}

// LotFilter — параметры GET /lots/search.
type LotFilter struct {
	LotName      string `form:"lotName"`
	CustomerCode string `form:"customerCode"`
	CurrencyCode string `form:"currencyCode"`
}

func (f LotFilter) IsEmpty() bool {
	return f.LotName == "" && f.CustomerCode == "" && f.CurrencyCode == ""
}
