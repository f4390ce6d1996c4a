package views

import (
	"context"
	"fmt"

	"purchase-manager/internal/client"
	"purchase-manager/internal/models"
	"purchase-manager/internal/validation"
)

const (
	MsgCustomerCreated   = "Контрагент создан"
	MsgCustomerUpdated   = "Контрагент обновлен"
	CustomerDeletePrompt = "Удалить контрагента?"
)

type CustomerAPI interface {
	Search(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error)
	Get(ctx context.Context, code string) (*models.Customer, error)
	Create(ctx context.Context, c models.Customer) (*models.Customer, error)
	Update(ctx context.Context, code string, patch models.CustomerPatch) (*models.Customer, error)
	Delete(ctx context.Context, code string) error
}

//
// СПИСОК
//

type CustomerList struct {
	machine
	api CustomerAPI

	Filter models.CustomerFilter
	Rows   []models.Customer
	Notice *Notice
}

func NewCustomerList(api CustomerAPI, filter models.CustomerFilter) *CustomerList {
	return &CustomerList{api: api, Filter: filter}
}

// Load ищет по текущему фильтру. При ошибке строки остаются прежними.
func (v *CustomerList) Load(ctx context.Context) error {
	v.begin()
	defer v.finish()

	rows, err := v.api.Search(ctx, v.Filter)
	if err != nil {
		v.Notice = alert(MsgLoadFailed)
		return fmt.Errorf("search customers: %w", err)
	}
	v.Rows = rows
	return nil
}

func (v *CustomerList) Reset(ctx context.Context) error {
	v.Filter = models.CustomerFilter{}
	return v.Load(ctx)
}

// URL: адрес списка с текущим фильтром.
func (v *CustomerList) URL() string {
	return withQuery(PathCustomers, client.CustomerQuery(v.Filter))
}

// Remove удаляет запись и возвращает переход к списку с тем же фильтром.
// Список перечитывает уже следующий экран, после ответа сервера.
func (v *CustomerList) Remove(ctx context.Context, code string) (Effect, error) {
	v.begin()
	err := v.api.Delete(ctx, code)
	v.finish()

	eff := Effect{Redirect: v.URL()}
	if err != nil {
		v.Notice = alert(client.UserMessage(err, MsgDeleteFailed))
		eff.Notice = v.Notice
		return eff, fmt.Errorf("delete customer %s: %w", code, err)
	}
	return eff, nil
}

// Delete удаляет запись и только после ответа сервера перечитывает список.
func (v *CustomerList) Delete(ctx context.Context, code string) error {
	if _, err := v.Remove(ctx, code); err != nil {
		return err
	}
	return v.Load(ctx)
}

//
// ФОРМА
//

// Kind: тип контрагента. На проводе это пара флагов isOrganization/isPerson.
type Kind int

const (
	KindUnspecified Kind = iota
	KindOrganization
	KindPerson
)

type CustomerValues struct {
	CustomerCode          string `form:"customerCode" validate:"required,notblank"`
	CustomerName          string `form:"customerName" validate:"required,notblank"`
	CustomerInn           string `form:"customerInn"`
	CustomerKpp           string `form:"customerKpp"`
	CustomerLegalAddress  string `form:"customerLegalAddress"`
	CustomerPostalAddress string `form:"customerPostalAddress"`
	CustomerEmail         string `form:"customerEmail" validate:"omitempty,simple_email"`
	CustomerCodeMain      string `form:"customerCodeMain"`
	Kind                  Kind   `form:"-"`
}

// SetOrganization включает/выключает флаг юрлица; включение сбрасывает флаг физлица.
func (cv *CustomerValues) SetOrganization(on bool) {
	switch {
	case on:
		cv.Kind = KindOrganization
	case cv.Kind == KindOrganization:
		cv.Kind = KindUnspecified
	}
}

// SetPerson работает симметрично SetOrganization.
func (cv *CustomerValues) SetPerson(on bool) {
	switch {
	case on:
		cv.Kind = KindPerson
	case cv.Kind == KindPerson:
		cv.Kind = KindUnspecified
	}
}

func (cv CustomerValues) IsOrganization() bool { return cv.Kind == KindOrganization }
func (cv CustomerValues) IsPerson() bool { return cv.Kind == KindPerson }

func (cv CustomerValues) Customer() models.Customer {
	return models.Customer{
		CustomerCode:          cv.CustomerCode,
		CustomerName:          cv.CustomerName,
		CustomerInn:           cv.CustomerInn,
		CustomerKpp:           cv.CustomerKpp,
		CustomerLegalAddress:  cv.CustomerLegalAddress,
		CustomerPostalAddress: cv.CustomerPostalAddress,
		CustomerEmail:         cv.CustomerEmail,
		CustomerCodeMain:      cv.CustomerCodeMain,
		IsOrganization:        cv.IsOrganization(),
		IsPerson:              cv.IsPerson(),
	}
}

// CustomerValuesFrom заполняет форму из записи. Если в записи стоят оба флага,
// побеждает юрлицо.
func CustomerValuesFrom(c models.Customer) CustomerValues {
	cv := CustomerValues{
		CustomerCode:          c.CustomerCode,
		CustomerName:          c.CustomerName,
		CustomerInn:           c.CustomerInn,
		CustomerKpp:           c.CustomerKpp,
		CustomerLegalAddress:  c.CustomerLegalAddress,
		CustomerPostalAddress: c.CustomerPostalAddress,
		CustomerEmail:         c.CustomerEmail,
		CustomerCodeMain:      c.CustomerCodeMain,
	}
	switch {
	case c.IsOrganization:
		cv.Kind = KindOrganization
	case c.IsPerson:
		cv.Kind = KindPerson
	}
	return cv
}

type CustomerForm struct {
	machine
	api  CustomerAPI
	code string

	Values CustomerValues
	Errors validation.Errors
	Notice *Notice
}

// NewCustomerForm: пустой code означает режим создания, иначе редактирование записи code.
func NewCustomerForm(api CustomerAPI, code string) *CustomerForm {
	return &CustomerForm{api: api, code: code}
}

func (f *CustomerForm) IsEdit() bool { return f.code != "" }
func (f *CustomerForm) Code() string { return f.code }

// Editable: в режиме редактирования код контрагента менять нельзя.
func (f *CustomerForm) Editable(field string) bool {
	return !(f.IsEdit() && field == "customerCode")
}

// Open готовит форму: при создании ставит значения по умолчанию,
// при редактировании загружает запись, а при ошибке уводит к списку.
func (f *CustomerForm) Open(ctx context.Context) Effect {
	if !f.IsEdit() {
		f.Values = CustomerValues{Kind: KindUnspecified}
		return Effect{}
	}

	f.begin()
	defer f.finish()

	c, err := f.api.Get(ctx, f.code)
	if err != nil {
		return Effect{Notice: alert(MsgLoadFailed), Redirect: PathCustomers}
	}
	f.Values = CustomerValuesFrom(*c)
	return Effect{}
}

// Validate возвращает true, если форму можно отправлять.
func (f *CustomerForm) Validate() bool {
	if f.IsEdit() {
		f.Values.CustomerCode = f.code
	}
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

// Submit проверяет форму и отправляет её. Пока есть ошибки, запрос не уходит.
func (f *CustomerForm) Submit(ctx context.Context) Effect {
	if !f.Validate() {
		return Effect{}
	}

	f.begin()
	defer f.finish()

	var (
		err error
		msg string
	)
	customer := f.Values.Customer()
	if f.IsEdit() {
		_, err = f.api.Update(ctx, f.code, models.FullCustomerPatch(customer))
		msg = MsgCustomerUpdated
	} else {
		_, err = f.api.Create(ctx, customer)
		msg = MsgCustomerCreated
	}
	if err != nil {
		f.Notice = alert(client.UserMessage(err, MsgSaveFailed))
		return Effect{Notice: f.Notice}
	}
	return Effect{Notice: info(msg), Redirect: PathCustomers}
}
