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

type Return struct {
	Config        *config.Config
	ReturnService service.IReturnService
}

func (h *Return) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	r.POST("/v1/orders/:id/returns", authorize, context.Wrap(h.Process))
}

// Process 退货，支持部分退
func (h *Return) Process(c *gin.Context) error {
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, err.Error())
	}
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "订单ID错误")
	}

	var req types.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	result, err := h.ReturnService.Process(c.Request.Context(), orderID, actorID, &req)
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}
