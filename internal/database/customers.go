package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"purchase-manager/internal/models"
	"purchase-manager/internal/validation"

	"gorm.io/gorm"
)

type CustomerStore struct {
	db *gorm.DB
}

func NewCustomerStore(db *gorm.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	return s.Search(ctx, models.CustomerFilter{})
}

// Search ищет имя как подстроку без учёта регистра, ИНН и тип по точному совпадению.
func (s *CustomerStore) Search(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error) {
	q := s.db.WithContext(ctx).Model(&models.Customer{})

	if f.Name != "" {
		q = q.Where("LOWER(customer_name) LIKE ?", containsPattern(f.Name))
	}
	if f.Inn != "" {
		q = q.Where("customer_inn = ?", f.Inn)
	}
	if f.IsOrganization != nil {
		q = q.Where("is_organization = ?", *f.IsOrganization)
	}

	customers := []models.Customer{}
	if err := q.Order("customer_name asc").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerStore) Get(ctx context.Context, code string) (*models.Customer, error) {
	return s.get(s.db.WithContext(ctx), code)
}

func (s *CustomerStore) Create(ctx context.Context, c *models.Customer) error {
	c.CustomerCode = strings.TrimSpace(c.CustomerCode)
	if err := validation.Struct(c); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	// --- ПРОВЕРКА УНИКАЛЬНОСТИ КОДА ---
	exists, err := customerExists(db, c.CustomerCode)
	if err != nil {
		return err
	}
	if exists {
		return customerExistsError(c.CustomerCode)
	}

	// параллельная вставка с тем же кодом упрётся в первичный ключ
	if err := db.Create(c).Error; err != nil {
		if pgCode(err) == pgUniqueViolation {
			return customerExistsError(c.CustomerCode)
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// Update применяет патч к сохранённой записи и проверяет результат целиком.
func (s *CustomerStore) Update(ctx context.Context, code string, patch models.CustomerPatch) (*models.Customer, error) {
	var updated *models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.get(tx, code)
		if err != nil {
			return err
		}

		patch.Apply(c)
		if err := validation.Struct(c); err != nil {
			return err
		}

		if err := tx.Save(c).Error; err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete не удаляет контрагента, на которого ссылаются лоты.
func (s *CustomerStore) Delete(ctx context.Context, code string) error {
	db := s.db.WithContext(ctx)

	var lots int64
	if err := db.Model(&models.Lot{}).
		Where("customer_code = ?", code).
		Count(&lots).Error; err != nil {
		return fmt.Errorf("count customer lots: %w", err)
	}
	if lots > 0 {
		return models.Errorf(models.ErrInUse, "Контрагент %s используется в лотах (%d)", code, lots)
	}

	res := db.Where("customer_code = ?", code).Delete(&models.Customer{})
	if res.Error != nil {
		if pgCode(res.Error) == pgForeignKeyViolation {
			return models.Errorf(models.ErrInUse, "Контрагент %s используется в лотах", code)
		}
		return fmt.Errorf("delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return customerNotFound(code)
	}
	return nil
}

func (s *CustomerStore) get(db *gorm.DB, code string) (*models.Customer, error) {
	var c models.Customer
	if err := db.Where("customer_code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerNotFound(code)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func customerExists(db *gorm.DB, code string) (bool, error) {
	var count int64
	if err := db.Model(&models.Customer{}).
		Where("customer_code = ?", code).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check customer: %w", err)
	}
	return count > 0, nil
}

func customerExistsError(code string) error {
	return models.Errorf(models.ErrAlreadyExists, "Контрагент с кодом %s уже существует", code)
}

func customerNotFound(code string) error {
	return models.Errorf(models.ErrNotFound, "Контрагент не найден: %s", code)
}

// containsPattern: шаблон LIKE для поиска подстроки без учёта регистра.
func containsPattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
