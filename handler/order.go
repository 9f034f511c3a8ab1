package handler

import (
	"Marche/config"
	"Marche/middleware"
	"Marche/pkg/context"
	"Marche/pkg/response"
	"Marche/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (h *Order) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	orders := r.Group("/v1/orders", authorize)
	{
		orders.GET("", context.Wrap(h.List))
		orders.GET("/:id", context.Wrap(h.Detail))
	}
}

// List 游标分页：cursor 传上一页返回的 next_cursor，首页传 0
func (h *Order) List(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, err.Error())
	}

	cursor, _ := strconv.ParseInt(c.DefaultQuery("cursor", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.OrderService.List(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Order) Detail(c *gin.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "订单ID错误")
	}

	detail, err := h.OrderService.Detail(c.Request.Context(), orderID)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}
