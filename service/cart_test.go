package service

import (
	"Marche/dao"
	"Marche/models"
	"Marche/types"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCart(db *gorm.DB) *CartService {
	return &CartService{
		CartDAO:  dao.NewCart(db),
		Pricing:  newPricing(db),
		StockDAO: dao.NewStock(db),
	}
}

func TestAddLineUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := newCart(db)
	seedStock(t, db, 1, 10, "100", "0")
	ctx := context.Background()
	userID := int64(7)

	require.NoError(t, svc.AddLine(ctx, &userID, "", &types.AddCartLineRequest{StockID: 1, Quantity: 2}))
	// 同一 user+stock 再次加购数量累加
	require.NoError(t, svc.AddLine(ctx, &userID, "", &types.AddCartLineRequest{StockID: 1, Quantity: 3}))

	var line models.CartLine
	require.NoError(t, db.Where("user_id = ?", userID).First(&line).Error)
	require.Equal(t, 5, line.Quantity)
}

func TestUpdateAndRemoveLine(t *testing.T) {
	db := newTestDB(t)
	svc := newCart(db)
	seedStock(t, db, 1, 10, "100", "0")
	ctx := context.Background()
	userID := int64(7)

	require.NoError(t, svc.AddLine(ctx, &userID, "", &types.AddCartLineRequest{StockID: 1, Quantity: 2}))
	var line models.CartLine
	require.NoError(t, db.First(&line).Error)

	require.NoError(t, svc.UpdateLine(ctx, userID, line.ID, 4))
	require.NoError(t, db.First(&line, line.ID).Error)
	require.Equal(t, 4, line.Quantity)

	require.NoError(t, svc.RemoveLine(ctx, userID, line.ID))
	var count int64
	require.NoError(t, db.Model(&models.CartLine{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestResolveLinesExplicitWinsOverCart(t *testing.T) {
	db := newTestDB(t)
	svc := newCart(db)
	ctx := context.Background()
	userID := int64(7)

	require.NoError(t, db.Create(&models.CartLine{UserID: userID, StockID: 1, Quantity: 2}).Error)

	// 显式传行时忽略持久化购物车
	lines, err := svc.ResolveLines(ctx, &userID, "", []types.AddCartLineRequest{{StockID: 9, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, uint64(9), lines[0].StockID)

	// 不传行时取购物车
	lines, err = svc.ResolveLines(ctx, &userID, "", nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, uint64(1), lines[0].StockID)
	require.Equal(t, 2, lines[0].Quantity)
	require.True(t, lines[0].Persisted())
}

func TestCartView(t *testing.T) {
	db := newTestDB(t)
	svc := newCart(db)
	ctx := context.Background()
	userID := int64(7)

	st := seedStock(t, db, 1, 10, "100", "10")
	st.ReservedQuantity = 4
	require.NoError(t, db.Save(st).Error)
	require.NoError(t, db.Create(&models.CartLine{UserID: userID, StockID: 1, Quantity: 2}).Error)

	view, err := svc.View(ctx, &userID, "", models.ChannelWeb)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	require.Equal(t, 6, view.Lines[0].Available) // 10 - 4
	require.True(t, view.Lines[0].LineTotal.Equal(dec("180")))
	require.True(t, view.Pricing.Subtotal.Equal(dec("180")))
}

func TestCartViewEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newCart(db)
	userID := int64(7)

	view, err := svc.View(context.Background(), &userID, "", models.ChannelWeb)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}
