package models

import (
	"fmt"
	"strconv"
	"strings"
)

type Customer struct {
	CustomerCode          string `gorm:"primaryKey;size:50" json:"customerCode" validate:"required,notblank,max=50"`
	CustomerName          string `gorm:"size:255;not null" json:"customerName" validate:"required,notblank,max=255"`
	CustomerInn           string `gorm:"size:12" json:"customerInn,omitempty" validate:"omitempty,inn"`
	CustomerKpp           string `gorm:"size:9" json:"customerKpp,omitempty" validate:"omitempty,kpp"`
	CustomerLegalAddress  string `gorm:"type:text" json:"customerLegalAddress,omitempty"`
	CustomerPostalAddress string `gorm:"type:text" json:"customerPostalAddress,omitempty"`
	CustomerEmail         string `gorm:"size:255" json:"customerEmail,omitempty" validate:"omitempty,simple_email"`
	CustomerCodeMain      string `gorm:"size:50" json:"customerCodeMain,omitempty"` // код головной организации
	IsOrganization        bool   `gorm:"not null" json:"isOrganization"`
	IsPerson              bool   `gorm:"not null" json:"isPerson"`
}

func (Customer) TableName() string { return "customer" }

// CustomerPatch: тело PUT /customers/{code}. Отсутствующее поле не меняет
// сохранённое значение, пустая строка очищает его. Код в теле игнорируется.
type CustomerPatch struct {
	CustomerName          *string `json:"customerName,omitempty"`
	CustomerInn           *string `json:"customerInn,omitempty"`
	CustomerKpp           *string `json:"customerKpp,omitempty"`
	CustomerLegalAddress  *string `json:"customerLegalAddress,omitempty"`
	CustomerPostalAddress *string `json:"customerPostalAddress,omitempty"`
	CustomerEmail         *string `json:"customerEmail,omitempty"`
	CustomerCodeMain      *string `json:"customerCodeMain,omitempty"`
	IsOrganization        *bool   `json:"isOrganization,omitempty"`
	IsPerson              *bool   `json:"isPerson,omitempty"`
}

// FullCustomerPatch переносит в патч все поля записи, кроме кода.
func FullCustomerPatch(c Customer) CustomerPatch {
	return CustomerPatch{
		CustomerName:          &c.CustomerName,
		CustomerInn:           &c.CustomerInn,
		CustomerKpp:           &c.CustomerKpp,
		CustomerLegalAddress:  &c.CustomerLegalAddress,
		CustomerPostalAddress: &c.CustomerPostalAddress,
		CustomerEmail:         &c.CustomerEmail,
		CustomerCodeMain:      &c.CustomerCodeMain,
		IsOrganization:        &c.IsOrganization,
		IsPerson:              &c.IsPerson,
	}
}

func (p CustomerPatch) Apply(c *Customer) {
	setString(&c.CustomerName, p.CustomerName)
	setString(&c.CustomerInn, p.CustomerInn)
	setString(&c.CustomerKpp, p.CustomerKpp)
	setString(&c.CustomerLegalAddress, p.CustomerLegalAddress)
	setString(&c.CustomerPostalAddress, p.CustomerPostalAddress)
	setString(&c.CustomerEmail, p.CustomerEmail)
	setString(&c.CustomerCodeMain, p.CustomerCodeMain)
	if p.IsOrganization != nil {
		c.IsOrganization = *p.IsOrganization
	}
	if p.IsPerson != nil {
		c.IsPerson = *p.IsPerson
	}
}

// CustomerFilter: параметры GET /customers/search.
type CustomerFilter struct {
	Name           string `form:"name"`
	Inn            string `form:"inn"`
	IsOrganization *bool  `form:"isOrganization"`
}

func (f CustomerFilter) IsEmpty() bool {
	return f.Name == "" && f.Inn == "" && f.IsOrganization == nil
}

// ParseCustomerFilter собирает фильтр из строковых параметров.
// Пустой isOrganization означает «любой тип».
func ParseCustomerFilter(name, inn, isOrganization string) (CustomerFilter, error) {
	f := CustomerFilter{
		Name: strings.TrimSpace(name),
		Inn:  strings.TrimSpace(inn),
	}
	if isOrganization = strings.TrimSpace(isOrganization); isOrganization != "" {
		v, err := strconv.ParseBool(isOrganization)
		if err != nil {
			return f, fmt.Errorf("isOrganization: %w", err)
		}
		f.IsOrganization = &v
	}
	return f, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
