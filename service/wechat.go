package service

import (
	"Marche/config"
	"Marche/models"
	"Marche/pkg/log"
	"Marche/types"
	"context"
	"crypto/rsa"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/core/option"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/jsapi"
	"github.com/wechatpay-apiv3/wechatpay-go/utils"
	"go.uber.org/zap"
)

// WechatGateway 微信 jsapi 支付网关。
// 订单金额以最小货币单位（分）传给微信
type WechatGateway struct {
	cfg           *config.WechatPayConfig
	client        *core.Client
	mchPrivateKey *rsa.PrivateKey
}

var _ PaymentGateway = (*WechatGateway)(nil)

// NewPaymentGateway 装配支付网关；微信未配置时退化成 NoopGateway
func NewPaymentGateway(cfg *config.Config) PaymentGateway {
	if cfg.WechatPayConfig == nil || cfg.WechatPayConfig.MchID == "" {
		log.L.Info("wechat pay not configured, using noop gateway")
		return NoopGateway{}
	}
	gw, err := NewWechatGateway(cfg.WechatPayConfig)
	if err != nil {
		log.L.Error("init wechat gateway failed, using noop gateway", zap.Error(err))
		return NoopGateway{}
	}
	return gw
}

func NewWechatGateway(cfg *config.WechatPayConfig) (*WechatGateway, error) {
	mchPrivateKey, err := utils.LoadPrivateKeyWithPath(cfg.MchPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("加载商户私钥失败: %w", err)
	}

	opts := []core.ClientOption{
		option.WithWechatPayAutoAuthCipher(
			cfg.MchID,
			cfg.MchCertificateSerialNumber,
			mchPrivateKey,
			cfg.MchAPIv3Key,
		),
	}
	client, err := core.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("创建微信支付客户端失败: %w", err)
	}

	return &WechatGateway{
		cfg:           cfg,
		client:        client,
		mchPrivateKey: mchPrivateKey,
	}, nil
}

func (g *WechatGateway) ProcessPayment(ctx context.Context, order *models.Order, openID string) (*types.GatewayResult, error) {
	if openID == "" {
		return &types.GatewayResult{Success: false, Message: "缺少 openid"}, nil
	}

	svc := jsapi.JsapiApiService{Client: g.client}
	prepayReq := jsapi.PrepayRequest{
		Appid:       core.String(g.cfg.AppID),
		Mchid:       core.String(g.cfg.MchID),
		Description: core.String(fmt.Sprintf("order %s", order.OrderRef)),
		OutTradeNo:  core.String(order.OrderSn),
		NotifyUrl:   core.String(g.cfg.NotifyURL),
		Amount: &jsapi.Amount{
			Total:    core.Int64(minorUnits(order.Total, order.Currency)),
			Currency: core.String(order.Currency),
		},
		Payer: &jsapi.Payer{
			Openid: core.String(openID),
		},
	}

	resp, _, err := svc.PrepayWithRequestPayment(ctx, prepayReq)
	if err != nil {
		return nil, fmt.Errorf("微信下单失败: %w", err)
	}

	log.L.Info("wechat prepay success",
		zap.String("order_sn", order.OrderSn), zap.Stringp("prepay_id", resp.PrepayId))

	result := &types.GatewayResult{
		Success:   true,
		PayParams: resp,
	}
	if resp.PrepayId != nil {
		result.GatewayReference = *resp.PrepayId
	}
	return result, nil
}

// minorUnits 金额换算到最小货币单位。JPY 无小数位，其余按两位小数处理
func minorUnits(amount decimal.Decimal, currency string) int64 {
	if currency == "JPY" {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
