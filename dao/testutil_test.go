package dao

import (
	"Marche/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, "file::memory:")
}

// openTestDB 传 shared-cache DSN 可以在并发测试里共享同一个库
func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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

func seedStock(t *testing.T, db *gorm.DB, id uint64, qty, reserved int) *models.Stock {
	t.Helper()
	st := &models.Stock{
		ID:               id,
		ProductName:      "テスト商品",
		Quantity:         qty,
		ReservedQuantity: reserved,
		WebPrice:         decimal.RequireFromString("100"),
		PosPrice:         decimal.RequireFromString("110"),
		WebDiscount:      decimal.RequireFromString("10"),
		PosDiscount:      decimal.RequireFromString("5"),
		AlertQuantity:    2,
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

func loadStock(t *testing.T, db *gorm.DB, id uint64) *models.Stock {
	t.Helper()
	var st models.Stock
	require.NoError(t, db.First(&st, id).Error)
	return &st
}
