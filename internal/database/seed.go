package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"purchase-manager/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed заполняет пустую базу демо-контрагентами и лотами. Если контрагенты
// уже есть, ничего не делает.
func Seed(ctx context.Context, db *gorm.DB, customers int, log *slog.Logger) error {
	db = db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check customers: %w", err)
	}
	if count > 0 {
		// данные уже есть
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := 1; i <= customers; i++ {
			c := demoCustomer(i)
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed customer %s: %w", c.CustomerCode, err)
			}

			lots := gofakeit.Number(1, 3)
			for j := 0; j < lots; j++ {
				l := demoLot(c.CustomerCode)
				if err := tx.Create(&l).Error; err != nil {
					return fmt.Errorf("seed lot for %s: %w", c.CustomerCode, err)
				}
			}
			log.Info("seeded demo customer", "code", c.CustomerCode)
		}
		return nil
	})
}

func demoCustomer(i int) models.Customer {
	c := models.Customer{
		CustomerCode:          fmt.Sprintf("C-%03d", i),
		CustomerName:          gofakeit.Company(),
		CustomerLegalAddress:  gofakeit.Address().Address,
		CustomerPostalAddress: gofakeit.Address().Address,
		CustomerEmail:         gofakeit.Email(),
	}
	if gofakeit.Bool() {
		c.IsOrganization = true
		c.CustomerInn = gofakeit.Numerify("##########")
		c.CustomerKpp = gofakeit.Numerify("#########")
	} else {
		c.IsPerson = true
		c.CustomerInn = gofakeit.Numerify("############")
	}
	return c
}

func demoLot(customerCode string) models.Lot {
	delivery := time.Now().Add(time.Duration(gofakeit.Number(24, 24*90)) * time.Hour).Truncate(time.Hour)
	return models.Lot{
		LotName:       gofakeit.ProductName(),
		CustomerCode:  customerCode,
		Price:         decimal.NewFromFloat(gofakeit.Price(100, 1_000_000)).Round(2),
		CurrencyCode:  models.Currency(gofakeit.RandomString([]string{"RUB", "USD", "EUR"})),
		NdsRate:       models.NdsRate(gofakeit.RandomString([]string{"Без НДС", "18%", "20%"})),
		PlaceDelivery: gofakeit.City(),
		DateDelivery:  &delivery,
	}
}
