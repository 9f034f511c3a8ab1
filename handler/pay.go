package handler

import (
	"Marche/config"
	"Marche/pkg/context"
	"Marche/pkg/log"
	"Marche/pkg/response"
	"Marche/service"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/wechatpay-apiv3/wechatpay-go/core/auth/verifiers"
	"github.com/wechatpay-apiv3/wechatpay-go/core/downloader"
	"github.com/wechatpay-apiv3/wechatpay-go/core/notify"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"go.uber.org/zap"
)

type Pay struct {
	Config         *config.Config
	PaymentService service.IPaymentService
}

func (h *Pay) RegisterRouter(r gin.IRouter) {
	pay := r.Group("/v1/pay")
	{
		pay.POST("/notify", context.Wrap(h.PayNotify))   // 支付回调
		pay.GET("/query/:sn", context.Wrap(h.QueryBySn)) // 前端轮询支付结果
	}
}

func (h *Pay) QueryBySn(c *gin.Context) error {
	status, err := h.PaymentService.StatusBySn(c.Request.Context(), c.Param("sn"))
	if err != nil {
		return err
	}
	response.Success(c, status)
	return nil
}

// PayNotify 微信支付回调：验签解密后走支付完成流程。
// Complete 幂等，微信重试回调不会二次扣库存
func (h *Pay) PayNotify(c *gin.Context) error {
	ctx := c.Request.Context()
	wp := h.Config.WechatPayConfig
	if wp == nil {
		return response.NewError(500, "微信支付未配置")
	}

	certificateVisitor := downloader.MgrInstance().GetCertificateVisitor(wp.MchID)
	handler, err := notify.NewRSANotifyHandler(wp.MchAPIv3Key, verifiers.NewSHA256WithRSAVerifier(certificateVisitor))
	if err != nil {
		log.L.Error("创建微信支付回调处理器失败", zap.Error(err))
		return response.NewError(500, err.Error())
	}

	transaction := new(payments.Transaction)
	notifyReq, err := handler.ParseNotifyRequest(ctx, c.Request, transaction)
	if err != nil {
		log.L.Error("微信支付回调验签或解密失败", zap.Error(err))
		return response.NewError(500, err.Error())
	}
	log.L.Info("pay notify", zap.String("event_type", notifyReq.EventType),
		zap.Stringp("out_trade_no", transaction.OutTradeNo))

	if transaction.OutTradeNo == nil {
		return response.NewError(400, "回调缺少 out_trade_no")
	}
	gatewayRef := ""
	if transaction.TransactionId != nil {
		gatewayRef = *transaction.TransactionId
	}
	raw, _ := json.Marshal(transaction)

	if err := h.PaymentService.CompleteBySn(ctx, *transaction.OutTradeNo, gatewayRef, raw); err != nil {
		log.L.Error("处理支付回调失败", zap.Error(err))
		return response.NewError(500, "process failed")
	}

	response.Success(c, nil)
	return nil
}
