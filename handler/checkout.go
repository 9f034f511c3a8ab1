package handler

import (
	"Marche/config"
	"Marche/middleware"
	"Marche/pkg/context"
	"Marche/pkg/response"
	"Marche/service"
	"Marche/types"

	"github.com/gin-gonic/gin"
)

type Checkout struct {
	Config          *config.Config
	CheckoutService service.ICheckoutService
}

func (h *Checkout) RegisterRouter(r gin.IRouter) {
	optional := middleware.OptionalAuth([]byte(h.Config.Jwt.Secret))
	r.POST("/v1/checkout", optional, context.Wrap(h.PlaceOrder))
}

// PlaceOrder 下单。游客下单需要 guest_token 或显式传 lines
func (h *Checkout) PlaceOrder(c *gin.Context) error {
	var req types.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	userID := optionalUserID(c)
	if userID == nil && req.GuestToken == "" && len(req.Lines) == 0 {
		return response.NewError(400, "游客下单需要 guest_token 或 lines")
	}

	resp, err := h.CheckoutService.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
