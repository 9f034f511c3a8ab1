package handler

import (
	"Marche/config"
	"Marche/middleware"
	"Marche/models"
	"Marche/pkg/context"
	"Marche/pkg/response"
	"Marche/service"
	"Marche/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Cart struct {
	Config      *config.Config
	CartService service.ICartService
}

func (h *Cart) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	authorize := middleware.Auth(secret)
	optional := middleware.OptionalAuth(secret)

	cart := r.Group("/v1/cart")
	{
		cart.GET("", optional, context.Wrap(h.View))
		cart.POST("/lines", optional, context.Wrap(h.AddLine))
		cart.PUT("/lines/:id", authorize, context.Wrap(h.UpdateLine))
		cart.DELETE("/lines/:id", authorize, context.Wrap(h.RemoveLine))
		cart.POST("/merge", authorize, context.Wrap(h.Merge))
	}
}

// AddLine 加购。登录用户写库，游客写 Redis（guest_token 必传）
func (h *Cart) AddLine(c *gin.Context) error {
	var req types.AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	userID := optionalUserID(c)
	guestToken := c.Query(context.CtxGuestCart)
	if userID == nil && guestToken == "" {
		return response.NewError(400, "游客加购需要 guest_token")
	}

	if err := h.CartService.AddLine(c.Request.Context(), userID, guestToken, &req); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Cart) UpdateLine(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, err.Error())
	}
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "行ID错误")
	}

	var req types.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	if err := h.CartService.UpdateLine(c.Request.Context(), userID, lineID, req.Quantity); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Cart) RemoveLine(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, err.Error())
	}
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "行ID错误")
	}

	if err := h.CartService.RemoveLine(c.Request.Context(), userID, lineID); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

// View 购物车试算，默认 web 渠道
func (h *Cart) View(c *gin.Context) error {
	channel, ok := models.ParseChannel(c.DefaultQuery("channel", string(models.ChannelWeb)))
	if !ok {
		return response.NewError(400, "未知渠道")
	}

	userID := optionalUserID(c)
	guestToken := c.Query(context.CtxGuestCart)

	view, err := h.CartService.View(c.Request.Context(), userID, guestToken, channel)
	if err != nil {
		return err
	}
	response.Success(c, view)
	return nil
}

// Merge 登录后把游客购物车并入账号
func (h *Cart) Merge(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, err.Error())
	}

	var req struct {
		GuestToken string `json:"guest_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	if err := h.CartService.MergeGuestCart(c.Request.Context(), userID, req.GuestToken); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

// optionalUserID 未登录返回 nil
func optionalUserID(c *gin.Context) *int64 {
	uid, err := context.GetUserID(c)
	if err != nil {
		return nil
	}
	return &uid
}
