package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"purchase-manager/internal/models"
)

type CustomerService struct {
	c *Client
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := s.c.do(ctx, http.MethodGet, "/customers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search передаёт в запрос только заданные параметры фильтра.
func (s *CustomerService) Search(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error) {
	var out []models.Customer
	if err := s.c.do(ctx, http.MethodGet, "/customers/search", CustomerQuery(f), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CustomerService) Get(ctx context.Context, code string) (*models.Customer, error) {
	var out models.Customer
	if err := s.c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(code), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Create(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	var out models.Customer
	if err := s.c.do(ctx, http.MethodPost, "/customers", nil, customer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Update(ctx context.Context, code string, patch models.CustomerPatch) (*models.Customer, error) {
	var out models.Customer
	if err := s.c.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(code), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Delete(ctx context.Context, code string) error {
	return s.c.do(ctx, http.MethodDelete, "/customers/"+url.PathEscape(code), nil, nil, nil)
}

func CustomerQuery(f models.CustomerFilter) url.Values {
	q := url.Values{}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Inn != "" {
		q.Set("inn", f.Inn)
	}
	if f.IsOrganization != nil {
		q.Set("isOrganization", strconv.FormatBool(*f.IsOrganization))
	}
	return q
}
