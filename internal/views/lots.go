package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"purchase-manager/internal/client"
	"purchase-manager/internal/models"
	"purchase-manager/internal/validation"

	"github.com/shopspring/decimal"
)

const (
	MsgLotCreated   = "Лот создан"
	MsgLotUpdated   = "Лот обновлен"
	LotDeletePrompt = "Удалить лот?"

	// формат поля datetime-local
	DateInputLayout = "2006-01-02T15:04"
)

type LotAPI interface {
	Search(ctx context.Context, f models.LotFilter) ([]models.Lot, error)
	Get(ctx context.Context, id int64) (*models.Lot, error)
	Create(ctx context.Context, l models.Lot) (*models.Lot, error)
	Update(ctx context.Context, id int64, patch models.LotPatch) (*models.Lot, error)
	Delete(ctx context.Context, id int64) error
}

//
// СПИСОК
//

type LotList struct {
	machine
	api LotAPI

	Filter models.LotFilter
	Rows   []models.Lot
	Notice *Notice
}

func NewLotList(api LotAPI, filter models.LotFilter) *LotList {
	return &LotList{api: api, Filter: filter}
}

func (v *LotList) Load(ctx context.Context) error {
	v.begin()
	defer v.finish()

	rows, err := v.api.Search(ctx, v.Filter)
	if err != nil {
		v.Notice = alert(MsgLoadFailed)
		return fmt.Errorf("search lots: %w", err)
	}
	v.Rows = rows
	return nil
}

func (v *LotList) Reset(ctx context.Context) error {
	v.Filter = models.LotFilter{}
	return v.Load(ctx)
}

func (v *LotList) URL() string {
	return withQuery(PathLots, client.LotQuery(v.Filter))
}

func (v *LotList) Remove(ctx context.Context, id int64) (Effect, error) {
	v.begin()
	err := v.api.Delete(ctx, id)
	v.finish()

	eff := Effect{Redirect: v.URL()}
	if err != nil {
		v.Notice = alert(client.UserMessage(err, MsgDeleteFailed))
		eff.Notice = v.Notice
		return eff, fmt.Errorf("delete lot %d: %w", id, err)
	}
	return eff, nil
}

func (v *LotList) Delete(ctx context.Context, id int64) error {
	if _, err := v.Remove(ctx, id); err != nil {
		return err
	}
	return v.Load(ctx)
}

//
// ФОРМА
//

// LotValues: значения полей формы в том виде, в каком их вводит пользователь.
type LotValues struct {
	LotName       string `form:"lotName" validate:"required,notblank"`
	CustomerCode  string `form:"customerCode" validate:"required,notblank"`
	Price         string `form:"price" validate:"required,positive_decimal,price_scale"`
	CurrencyCode  string `form:"currencyCode" validate:"required,currency"`
	NdsRate       string `form:"ndsRate" validate:"required,nds_rate"`
	PlaceDelivery string `form:"placeDelivery"`
	DateDelivery  string `form:"dateDelivery" validate:"omitempty,datetime=2006-01-02T15:04"`
}

func DefaultLotValues() LotValues {
	return LotValues{
		CurrencyCode: string(models.CurrencyRUB),
		NdsRate:      string(models.Nds20),
	}
}

// Lot переводит проверенные значения формы в запись.
func (lv LotValues) Lot() (models.Lot, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(lv.Price))
	if err != nil {
		return models.Lot{}, fmt.Errorf("price: %w", err)
	}

	lot := models.Lot{
		LotName:       lv.LotName,
		CustomerCode:  lv.CustomerCode,
		Price:         price,
		CurrencyCode:  models.Currency(lv.CurrencyCode),
		NdsRate:       models.NdsRate(lv.NdsRate),
		PlaceDelivery: lv.PlaceDelivery,
	}
	if lv.DateDelivery != "" {
		t, err := time.ParseInLocation(DateInputLayout, lv.DateDelivery, time.Local)
		if err != nil {
			return models.Lot{}, fmt.Errorf("dateDelivery: %w", err)
		}
		lot.DateDelivery = &t
	}
	return lot, nil
}

func LotValuesFrom(l models.Lot) LotValues {
	lv := LotValues{
		LotName:       l.LotName,
		CustomerCode:  l.CustomerCode,
		Price:         l.Price.String(),
		CurrencyCode:  string(l.CurrencyCode),
		NdsRate:       string(l.NdsRate),
		PlaceDelivery: l.PlaceDelivery,
	}
	if l.DateDelivery != nil {
		lv.DateDelivery = l.DateDelivery.In(time.Local).Format(DateInputLayout)
	}
	return lv
}

type LotForm struct {
	machine
	api LotAPI
	id  int64

	Values LotValues
	Errors validation.Errors
	Notice *Notice
}

// NewLotForm: id == 0 означает режим создания.
func NewLotForm(api LotAPI, id int64) *LotForm {
	return &LotForm{api: api, id: id}
}

func (f *LotForm) IsEdit() bool { return f.id != 0 }
func (f *LotForm) ID() int64 { return f.id }

func (f *LotForm) Open(ctx context.Context) Effect {
	if !f.IsEdit() {
		f.Values = DefaultLotValues()
		return Effect{}
	}

	f.begin()
	defer f.finish()

	l, err := f.api.Get(ctx, f.id)
	if err != nil {
		return Effect{Notice: alert(MsgLoadFailed), Redirect: PathLots}
	}
	f.Values = LotValuesFrom(*l)
	return Effect{}
}

func (f *LotForm) Validate() bool {
	f.Errors = nil
	if err := validation.Struct(f.Values); err != nil {
		errs, ok := err.(validation.Errors)
		if !ok {
			errs = validation.Errors{"": err.Error()}
		}
		f.Errors = errs
		return false
	}
	return true
}

func (f *LotForm) Submit(ctx context.Context) Effect {
	if !f.Validate() {
		return Effect{}
	}

	lot, err := f.Values.Lot()
	if err != nil {
		f.Errors = validation.Errors{"": err.Error()}
		return Effect{}
	}

	f.begin()
	defer f.finish()

	var msg string
	if f.IsEdit() {
		_, err = f.api.Update(ctx, f.id, models.FullLotPatch(lot))
		msg = MsgLotUpdated
	} else {
		_, err = f.api.Create(ctx, lot)
		msg = MsgLotCreated
	}
	if err != nil {
		f.Notice = alert(client.UserMessage(err, MsgSaveFailed))
		return Effect{Notice: f.Notice}
	}
	return Effect{Notice: info(msg), Redirect: PathLots}
}
