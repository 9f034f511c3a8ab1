package dao

import (
	"Marche/models"
	"Marche/types"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReserveReleaseRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	ctx := context.Background()
	seedStock(t, db, 1, 10, 0)

	require.NoError(t, s.Reserve(ctx, db, 1, 3, "sn-1"))
	st := loadStock(t, db, 1)
	require.Equal(t, 10, st.Quantity)
	require.Equal(t, 3, st.ReservedQuantity)
	require.Equal(t, 7, st.Available())

	// 释放后恢复原状
	require.NoError(t, s.Release(ctx, db, 1, 3, "sn-1"))
	st = loadStock(t, db, 1)
	require.Equal(t, 10, st.Quantity)
	require.Equal(t, 0, st.ReservedQuantity)
}

func TestReserveInsufficient(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	ctx := context.Background()
	seedStock(t, db, 1, 5, 3) // 可售只剩 2

	err := s.Reserve(ctx, db, 1, 3, "sn-1")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// 失败不能留下任何变动
	st := loadStock(t, db, 1)
	require.Equal(t, 3, st.ReservedQuantity)
	var count int64
	require.NoError(t, db.Model(&models.StockMovement{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestReserveStockNotFound(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)

	err := s.Reserve(context.Background(), db, 999, 1, "sn-1")
	require.ErrorIs(t, err, ErrStockNotFound)
}

func TestReserveNegativeQuantity(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	seedStock(t, db, 1, 10, 0)

	err := s.Reserve(context.Background(), db, 1, -1, "sn-1")
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestReleaseMoreThanReserved(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	seedStock(t, db, 1, 10, 2)

	err := s.Release(context.Background(), db, 1, 3, "sn-1")
	require.ErrorIs(t, err, ErrInsufficientReservedStock)
}

func TestConsume(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	ctx := context.Background()
	seedStock(t, db, 1, 10, 4)

	// 消耗同时扣两列，可售数量不变
	require.NoError(t, s.Consume(ctx, db, 1, 4, "sn-1"))
	st := loadStock(t, db, 1)
	require.Equal(t, 6, st.Quantity)
	require.Equal(t, 0, st.ReservedQuantity)
	require.Equal(t, 6, st.Available())

	err := s.Consume(ctx, db, 1, 1, "sn-1")
	require.ErrorIs(t, err, ErrInsufficientReservedStock)
}

func TestRestock(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	ctx := context.Background()
	seedStock(t, db, 1, 3, 0)

	require.NoError(t, s.Restock(ctx, db, 1, 2, "return-1"))
	require.Equal(t, 5, loadStock(t, db, 1).Quantity)
}

func TestAdjustQuantity(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	ctx := context.Background()
	seedStock(t, db, 1, 10, 4)

	require.NoError(t, s.AdjustQuantity(ctx, db, 1, 5, types.AdjustModeAdd, "adjust:1"))
	require.Equal(t, 15, loadStock(t, db, 1).Quantity)

	require.NoError(t, s.AdjustQuantity(ctx, db, 1, 11, types.AdjustModeSubtract, "adjust:1"))
	require.Equal(t, 4, loadStock(t, db, 1).Quantity)

	// 减到低于已占用数量被拒绝
	err := s.AdjustQuantity(ctx, db, 1, 1, types.AdjustModeSubtract, "adjust:1")
	require.ErrorIs(t, err, ErrReservationExceedsStock)

	require.NoError(t, s.AdjustQuantity(ctx, db, 1, 20, types.AdjustModeReplace, "adjust:1"))
	require.Equal(t, 20, loadStock(t, db, 1).Quantity)

	// 盘点值低于已占用数量同样被拒绝
	err = s.AdjustQuantity(ctx, db, 1, 3, types.AdjustModeReplace, "adjust:1")
	require.ErrorIs(t, err, ErrReservationExceedsStock)

	err = s.AdjustQuantity(ctx, db, 1, 3, "bogus", "adjust:1")
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestMovementsRecorded(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)
	ctx := context.Background()
	seedStock(t, db, 1, 10, 0)

	require.NoError(t, s.Reserve(ctx, db, 1, 3, "sn-1"))
	require.NoError(t, s.Consume(ctx, db, 1, 3, "sn-1"))
	require.NoError(t, s.Restock(ctx, db, 1, 1, "return-1"))

	var movements []models.StockMovement
	require.NoError(t, db.Order("id asc").Find(&movements).Error)
	require.Len(t, movements, 3)
	require.Equal(t, models.MovementReserve, movements[0].Reason)
	require.Equal(t, -3, movements[0].Quantity)
	require.Equal(t, models.MovementConsume, movements[1].Reason)
	require.Equal(t, models.MovementRestock, movements[2].Reason)
	require.Equal(t, "return-1", movements[2].RefID)
}

// 并发抢最后一件：恰好一个成功，其余全部报可售不足
func TestConcurrentReserveLastUnit(t *testing.T) {
	db := openTestDB(t, "file:reserve_race?mode=memory&cache=shared&_busy_timeout=5000")
	s := NewStock(db)
	ctx := context.Background()
	seedStock(t, db, 1, 5, 4) // 可售 1

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Reserve(ctx, db, 1, 1, "sn-race")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, errors.Is(err, ErrInsufficientStock), "unexpected error: %v", err)
	}
	require.Equal(t, 1, succeeded)

	st := loadStock(t, db, 1)
	require.Equal(t, 5, st.ReservedQuantity)
	require.Equal(t, 0, st.Available())
}

func TestListLowStock(t *testing.T) {
	db := newTestDB(t)
	s := NewStock(db)

	seedStock(t, db, 1, 10, 0) // 可售 10，警戒线 2
	seedStock(t, db, 2, 3, 2)  // 可售 1，低库存

	low, err := s.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, uint64(2), low[0].ID)
}
