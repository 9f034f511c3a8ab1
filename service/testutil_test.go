package service

import (
	"Marche/config"
	"Marche/dao"
	"Marche/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Stock{},
		&models.StockMovement{},
		&models.DiscountRule{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.PayRecord{},
		&models.ReturnLog{},
		&models.Region{},
		&models.Prefecture{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		App: &config.App{Env: "test", Debug: true, OrderSalt: "test-salt"},
		Jwt: &config.Jwt{Secret: "test-secret"},
		Commerce: &config.Commerce{
			PosTaxRate:   "0.10",
			WebTaxRate:   "0.08",
			CodSurcharge: "330",
			Currency:     "JPY",
		},
	}
}

func seedStock(t *testing.T, db *gorm.DB, id uint64, qty int, webPrice, webDiscount string) *models.Stock {
	t.Helper()
	st := &models.Stock{
		ID:          id,
		ProductName: "テスト商品",
		Quantity:    qty,
		WebPrice:    decimal.RequireFromString(webPrice),
		PosPrice:    decimal.RequireFromString(webPrice),
		WebDiscount: decimal.RequireFromString(webDiscount),
		PosDiscount: decimal.Zero,
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

func seedRule(t *testing.T, db *gorm.DB, stockID uint64, minQty int, discount string) {
	t.Helper()
	require.NoError(t, db.Create(&models.DiscountRule{
		StockID:     stockID,
		MinQuantity: minQty,
		Discount:    decimal.RequireFromString(discount),
	}).Error)
}

func newPricing(db *gorm.DB) *PricingService {
	return &PricingService{
		Config:        testConfig(),
		StockDAO:      dao.NewStock(db),
		DiscountDAO:   dao.NewDiscountRule(db),
		PrefectureDAO: dao.NewPrefecture(db),
	}
}

func newEvents() *OrderEventProducer {
	// Producer 为 nil，事件全部走 no-op
	return NewOrderEventProducer(nil)
}
