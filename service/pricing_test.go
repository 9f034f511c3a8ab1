package service

import (
	"Marche/models"
	"Marche/types"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceCartWeb(t *testing.T) {
	db := newTestDB(t)
	p := newPricing(db)
	seedStock(t, db, 1, 100, "100", "10")

	lines := []types.CartLine{{StockID: 1, Quantity: 3}}
	bd, err := p.PriceCart(context.Background(), lines, models.ChannelWeb, true, nil, types.ShippingInput{})
	require.NoError(t, err)

	// 100円 x 3件、単品折扣 10円
	require.True(t, bd.UndiscountedSubtotal.Equal(dec("300")), "undiscounted=%s", bd.UndiscountedSubtotal)
	require.True(t, bd.Subtotal.Equal(dec("270")), "subtotal=%s", bd.Subtotal)
	require.True(t, bd.TotalDiscount.Equal(dec("30")), "discount=%s", bd.TotalDiscount)
	// 税 8%: 270 * 0.08 = 21.60
	require.True(t, bd.Tax.Equal(dec("21.60")), "tax=%s", bd.Tax)
	require.True(t, bd.GrandTotal.Equal(dec("291.60")), "total=%s", bd.GrandTotal)
}

func TestPriceCartDiscountToggle(t *testing.T) {
	db := newTestDB(t)
	p := newPricing(db)
	seedStock(t, db, 1, 100, "100", "10")
	seedRule(t, db, 1, 3, "5")

	lines := []types.CartLine{{StockID: 1, Quantity: 3}}

	// 开折扣：渠道 10 + 阶梯 5 = 15/件
	bd, err := p.PriceCart(context.Background(), lines, models.ChannelWeb, true, nil, types.ShippingInput{})
	require.NoError(t, err)
	require.True(t, bd.Subtotal.Equal(dec("255")), "subtotal=%s", bd.Subtotal)

	// 关折扣：按原价结
	bd, err = p.PriceCart(context.Background(), lines, models.ChannelWeb, false, nil, types.ShippingInput{})
	require.NoError(t, err)
	require.True(t, bd.Subtotal.Equal(dec("300")))
	require.True(t, bd.TotalDiscount.IsZero())
	require.True(t, bd.Tax.Equal(dec("24")), "tax=%s", bd.Tax)
}

func TestPriceCartCustomDiscount(t *testing.T) {
	db := newTestDB(t)
	p := newPricing(db)
	seedStock(t, db, 1, 100, "100", "0")

	// 自定义折扣按行传总额 30，摊到 3 件即 10/件
	lines := []types.CartLine{{StockID: 1, Quantity: 3}}
	custom := map[uint64]decimal.Decimal{1: dec("30")}
	bd, err := p.PriceCart(context.Background(), lines, models.ChannelWeb, true, custom, types.ShippingInput{})
	require.NoError(t, err)
	require.True(t, bd.Subtotal.Equal(dec("270")), "subtotal=%s", bd.Subtotal)
	require.True(t, bd.Lines[0].UnitDiscount.Equal(dec("10")))
}

func TestPriceCartPosChannel(t *testing.T) {
	db := newTestDB(t)
	p := newPricing(db)
	st := seedStock(t, db, 1, 100, "100", "10")
	st.PosPrice = dec("110")
	st.PosDiscount = dec("5")
	require.NoError(t, db.Save(st).Error)

	lines := []types.CartLine{{StockID: 1, Quantity: 2}}
	bd, err := p.PriceCart(context.Background(), lines, models.ChannelPos, true, nil, types.ShippingInput{})
	require.NoError(t, err)

	// POS 走 pos_price/pos_discount 和 10% 税率
	require.True(t, bd.Subtotal.Equal(dec("210")), "subtotal=%s", bd.Subtotal)
	require.True(t, bd.Tax.Equal(dec("21")), "tax=%s", bd.Tax)
}

func TestPriceCartUnknownStock(t *testing.T) {
	db := newTestDB(t)
	p := newPricing(db)

	_, err := p.PriceCart(context.Background(),
		[]types.CartLine{{StockID: 42, Quantity: 1}}, models.ChannelWeb, true, nil, types.ShippingInput{})
	require.Error(t, err)
}

func TestResolveShipping(t *testing.T) {
	db := newTestDB(t)
	p := newPricing(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Region{ID: 1, Name: "関東"}).Error)
	require.NoError(t, db.Create(&models.Prefecture{
		ID: 13, RegionID: 1, Name: "東京都", ShippingFee: dec("800"),
	}).Error)
	prefID := uint64(13)

	// 按都道府县查表
	fee, err := p.ResolveShipping(ctx, models.ChannelWeb, types.ShippingInput{PrefectureID: &prefID})
	require.NoError(t, err)
	require.True(t, fee.Equal(dec("800")), "fee=%s", fee)

	// 显式覆盖优先
	override := dec("500")
	fee, err = p.ResolveShipping(ctx, models.ChannelWeb, types.ShippingInput{PrefectureID: &prefID, Override: &override})
	require.NoError(t, err)
	require.True(t, fee.Equal(dec("500")))

	// 自宅配送免运费
	fee, err = p.ResolveShipping(ctx, models.ChannelWeb, types.ShippingInput{PrefectureID: &prefID, HomeDelivery: true})
	require.NoError(t, err)
	require.True(t, fee.IsZero())

	// 代引附加费叠加
	fee, err = p.ResolveShipping(ctx, models.ChannelWeb, types.ShippingInput{
		PrefectureID: &prefID, CashOnDelivery: true,
	})
	require.NoError(t, err)
	require.True(t, fee.Equal(dec("1130")), "fee=%s", fee)

	// 查不到的都道府县
	bogus := uint64(99)
	_, err = p.ResolveShipping(ctx, models.ChannelWeb, types.ShippingInput{PrefectureID: &bogus})
	require.ErrorIs(t, err, ErrAddressValidationFailed)
}
