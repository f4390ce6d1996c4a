package database

import (
	"context"
	"errors"
	"fmt"

	"purchase-manager/internal/models"
	"purchase-manager/internal/validation"

	"gorm.io/gorm"
)

type LotStore struct {
	db *gorm.DB
}

func NewLotStore(db *gorm.DB) *LotStore {
	return &LotStore{db: db}
}

func (s *LotStore) List(ctx context.Context) ([]models.Lot, error) {
	return s.Search(ctx, models.LotFilter{})
}

// Search ищет наименование как подстроку без учёта регистра, контрагента и валюту точно.
func (s *LotStore) Search(ctx context.Context, f models.LotFilter) ([]models.Lot, error) {
	q := s.db.WithContext(ctx).Model(&models.Lot{})

	if f.LotName != "" {
		q = q.Where("LOWER(lot_name) LIKE ?", containsPattern(f.LotName))
	}
	if f.CustomerCode != "" {
		q = q.Where("customer_code = ?", f.CustomerCode)
	}
	if f.CurrencyCode != "" {
		q = q.Where("currency_code = ?", f.CurrencyCode)
	}

	lots := []models.Lot{}
	if err := q.Order("lot_name asc").Order("id asc").Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("search lots: %w", err)
	}
	return lots, nil
}

func (s *LotStore) Get(ctx context.Context, id int64) (*models.Lot, error) {
	return s.get(s.db.WithContext(ctx), id)
}

// Create сохраняет лот; id назначает база.
func (s *LotStore) Create(ctx context.Context, l *models.Lot) error {
	l.ID = 0
	db := s.db.WithContext(ctx)

	if err := s.check(db, l); err != nil {
		return err
	}
	if err := db.Create(l).Error; err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return unknownCustomer(l.CustomerCode)
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

func (s *LotStore) Update(ctx context.Context, id int64, patch models.LotPatch) (*models.Lot, error) {
	var updated *models.Lot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l, err := s.get(tx, id)
		if err != nil {
			return err
		}

		patch.Apply(l)
		if err := s.check(tx, l); err != nil {
			return err
		}

		if err := tx.Save(l).Error; err != nil {
			if pgCode(err) == pgForeignKeyViolation {
				return unknownCustomer(l.CustomerCode)
			}
			return fmt.Errorf("update lot: %w", err)
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *LotStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Lot{})
	if res.Error != nil {
		return fmt.Errorf("delete lot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return lotNotFound(id)
	}
	return nil
}

// check проверяет поля и существование контрагента, на которого ссылается лот.
func (s *LotStore) check(db *gorm.DB, l *models.Lot) error {
	if err := validation.Struct(l); err != nil {
		return err
	}

	exists, err := customerExists(db, l.CustomerCode)
	if err != nil {
		return err
	}
	if !exists {
		return unknownCustomer(l.CustomerCode)
	}
	return nil
}

func (s *LotStore) get(db *gorm.DB, id int64) (*models.Lot, error) {
	var l models.Lot
	if err := db.Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lotNotFound(id)
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

func unknownCustomer(code string) error {
	return models.Errorf(models.ErrInvalid, "Контрагент не найден: %s", code)
}

func lotNotFound(id int64) error {
	return models.Errorf(models.ErrNotFound, "Лот не найден: %d", id)
}
