package handler

import (
	"Marche/config"
	"Marche/middleware"
	"Marche/pkg/context"
	"Marche/pkg/response"
	"Marche/service"
	"Marche/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Stock struct {
	Config       *config.Config
	StockService service.IStockService
}

func (h *Stock) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	stocks := r.Group("/v1/stocks")
	{
		stocks.GET("/:id", context.Wrap(h.Get))
		stocks.GET("/low", authorize, context.Wrap(h.ListLow))
		stocks.PUT("/:id/quantity", authorize, context.Wrap(h.AdjustQuantity))
	}
}

func (h *Stock) Get(c *gin.Context) error {
	stockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "库存ID错误")
	}

	st, err := h.StockService.Get(c.Request.Context(), stockID)
	if err != nil {
		return err
	}
	response.Success(c, st)
	return nil
}

// AdjustQuantity 管理端盘点调整
func (h *Stock) AdjustQuantity(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, err.Error())
	}
	stockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "库存ID错误")
	}

	var req types.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	st, err := h.StockService.AdjustQuantity(c.Request.Context(), stockID, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, st)
	return nil
}

func (h *Stock) ListLow(c *gin.Context) error {
	stocks, err := h.StockService.ListLowStock(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, stocks)
	return nil
}
