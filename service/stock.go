package service

import (
	"Marche/dao"
	"Marche/models"
	"Marche/pkg/log"
	"Marche/types"
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StockService 管理端库存操作与低库存巡检
type StockService struct {
	DB       *gorm.DB
	StockDAO *dao.Stock
}

var _ IStockService = (*StockService)(nil)

type IStockService interface {
	Get(ctx context.Context, stockID uint64) (*models.Stock, error)
	AdjustQuantity(ctx context.Context, stockID uint64, actorID int64, req *types.AdjustQuantityRequest) (*models.Stock, error)
	ListLowStock(ctx context.Context) ([]*models.Stock, error)
}

func (s *StockService) Get(ctx context.Context, stockID uint64) (*models.Stock, error) {
	stocks, err := s.StockDAO.FindByIDs(ctx, []uint64{stockID})
	if err != nil {
		return nil, err
	}
	st, ok := stocks[stockID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", dao.ErrStockNotFound, stockID)
	}
	return st, nil
}

// AdjustQuantity 盘点调整。replace 模式直接写绝对值，
// add/subtract 走增量，三种模式都留 StockMovement 流水
func (s *StockService) AdjustQuantity(ctx context.Context, stockID uint64, actorID int64, req *types.AdjustQuantityRequest) (*models.Stock, error) {
	refID := fmt.Sprintf("adjust:%d", actorID)
	if req.Reason != "" {
		refID = fmt.Sprintf("%s:%s", refID, req.Reason)
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.StockDAO.AdjustQuantity(ctx, tx, stockID, req.Quantity, req.Mode, refID)
	})
	if err != nil {
		return nil, err
	}

	st, err := s.Get(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if st.IsLowStock() {
		log.L.Warn("stock below alert threshold",
			zap.Uint64("stock_id", stockID),
			zap.String("product", st.ProductName),
			zap.Int("available", st.Available()),
			zap.Int("alert_quantity", st.AlertQuantity))
	}
	return st, nil
}

func (s *StockService) ListLowStock(ctx context.Context) ([]*models.Stock, error) {
	return s.StockDAO.ListLowStock(ctx)
}
