package service

import (
	"Marche/dao"
	"Marche/models"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// 阶梯 {5件:减2, 10件:减5}
func TestResolveTiers(t *testing.T) {
	db := newTestDB(t)
	seedStock(t, db, 1, 100, "100", "0")
	seedRule(t, db, 1, 5, "2")
	seedRule(t, db, 1, 10, "5")

	svc := &DiscountService{DiscountDAO: dao.NewDiscountRule(db)}
	ctx := context.Background()

	cases := []struct {
		qty  int
		want string
	}{
		{3, "0"},  // 没到最低门槛
		{5, "2"},  // 正好踩线
		{7, "2"},  // 介于两档之间取低档
		{10, "5"}, // 踩到高档
		{12, "5"},
	}
	for _, c := range cases {
		got, err := svc.Resolve(ctx, 1, c.qty)
		require.NoError(t, err)
		require.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"qty=%d want %s got %s", c.qty, c.want, got)
	}
}

func TestResolveNoRules(t *testing.T) {
	db := newTestDB(t)
	seedStock(t, db, 1, 100, "100", "0")

	svc := &DiscountService{DiscountDAO: dao.NewDiscountRule(db)}
	got, err := svc.Resolve(context.Background(), 1, 50)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestBestTier(t *testing.T) {
	// BestTier 要求降序输入
	rules := []*models.DiscountRule{
		{MinQuantity: 10, Discount: decimal.RequireFromString("5")},
		{MinQuantity: 5, Discount: decimal.RequireFromString("2")},
	}

	require.True(t, BestTier(rules, 4).IsZero())
	require.True(t, BestTier(rules, 7).Equal(decimal.RequireFromString("2")))
	require.True(t, BestTier(rules, 10).Equal(decimal.RequireFromString("5")))
	require.True(t, BestTier(nil, 10).IsZero())
}
