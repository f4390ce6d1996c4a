package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"purchase-manager/internal/models"
)

type LotService struct {
	c *Client
}

func (s *LotService) List(ctx context.Context) ([]models.Lot, error) {
	var out []models.Lot
	if err := s.c.do(ctx, http.MethodGet, "/lots", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LotService) Search(ctx context.Context, f models.LotFilter) ([]models.Lot, error) {
	var out []models.Lot
	if err := s.c.do(ctx, http.MethodGet, "/lots/search", LotQuery(f), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LotService) Get(ctx context.Context, id int64) (*models.Lot, error) {
	var out models.Lot
	if err := s.c.do(ctx, http.MethodGet, lotPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create отправляет лот без id: идентификатор назначает сервер.
func (s *LotService) Create(ctx context.Context, lot models.Lot) (*models.Lot, error) {
	lot.ID = 0
	var out models.Lot
	if err := s.c.do(ctx, http.MethodPost, "/lots", nil, newLotBody(lot), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LotService) Update(ctx context.Context, id int64, patch models.LotPatch) (*models.Lot, error) {
	var out models.Lot
	if err := s.c.do(ctx, http.MethodPut, lotPath(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LotService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, lotPath(id), nil, nil, nil)
}

func LotQuery(f models.LotFilter) url.Values {
	q := url.Values{}
	if f.LotName != "" {
		q.Set("lotName", f.LotName)
	}
	if f.CustomerCode != "" {
		q.Set("customerCode", f.CustomerCode)
	}
	if f.CurrencyCode != "" {
		q.Set("currencyCode", f.CurrencyCode)
	}
	return q
}

func lotPath(id int64) string {
	return "/lots/" + strconv.FormatInt(id, 10)
}

// lotBody: лот без поля id для POST /lots.
type lotBody struct {
	models.Lot
	ID *int64 `json:"id,omitempty"`
}

func newLotBody(l models.Lot) lotBody {
	return lotBody{Lot: l}
}
