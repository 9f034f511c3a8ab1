package service

import (
	"Marche/dao"
	"Marche/models"
	"Marche/types"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failGateway 总是拒绝，验证“网关失败订单留在 pending、库存不释放”
type failGateway struct{}

func (failGateway) ProcessPayment(_ context.Context, _ *models.Order, _ string) (*types.GatewayResult, error) {
	return &types.GatewayResult{Success: false, Message: "カード決済が拒否されました"}, nil
}

func newCheckout(db *gorm.DB, gw PaymentGateway) *CheckoutService {
	cfg := testConfig()
	stockDAO := dao.NewStock(db)
	orderDAO := dao.NewOrder(db)
	cartDAO := dao.NewCart(db)
	pricing := newPricing(db)
	pricing.Config = cfg
	cart := &CartService{
		CartDAO:  cartDAO,
		Pricing:  pricing,
		StockDAO: stockDAO,
	}
	payment := &PaymentService{
		DB:       db,
		OrderDAO: orderDAO,
		StockDAO: stockDAO,
		Events:   newEvents(),
	}
	return &CheckoutService{
		Config:   cfg,
		DB:       db,
		StockDAO: stockDAO,
		OrderDAO: orderDAO,
		CartDAO:  cartDAO,
		Cart:     cart,
		Pricing:  pricing,
		Address:  &PrefectureAddressResolver{PrefectureDAO: dao.NewPrefecture(db)},
		Gateway:  gw,
		Payment:  payment,
	}
}

func seedPrefecture(t *testing.T, db *gorm.DB) uint64 {
	t.Helper()
	require.NoError(t, db.Create(&models.Region{ID: 1, Name: "関東"}).Error)
	require.NoError(t, db.Create(&models.Prefecture{
		ID: 13, RegionID: 1, Name: "東京都", ShippingFee: dec("800"),
	}).Error)
	return 13
}

func webRequest(prefID uint64) *types.PlaceOrderRequest {
	return &types.PlaceOrderRequest{
		Channel:       "web",
		Lines:         []types.AddCartLineRequest{{StockID: 1, Quantity: 3}},
		ApplyDiscount: true,
		PaymentMethod: models.PaymentMethodWechat,
		Address: types.AddressInput{
			Name:         "山田太郎",
			PrefectureID: &prefID,
			City:         "新宿区",
			Street:       "西新宿 1-1-1",
		},
		OpenID: "test-openid",
	}
}

func TestPlaceOrderWeb(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	seedStock(t, db, 1, 10, "100", "10")
	prefID := seedPrefecture(t, db)
	userID := int64(7)

	resp, err := svc.PlaceOrder(context.Background(), &userID, webRequest(prefID))
	require.NoError(t, err)
	require.NotZero(t, resp.OrderID)
	require.NotEmpty(t, resp.OrderSn)
	require.NotEmpty(t, resp.OrderRef)
	require.Equal(t, string(models.OrderStatusPending), resp.Status)

	// 金额：270 小计 + 21.60 税 + 800 运费
	require.True(t, resp.Pricing.Subtotal.Equal(dec("270")), "subtotal=%s", resp.Pricing.Subtotal)
	require.True(t, resp.Pricing.ShippingCost.Equal(dec("800")))
	require.True(t, resp.Pricing.GrandTotal.Equal(dec("1091.60")), "total=%s", resp.Pricing.GrandTotal)

	// 库存被占用但未消耗
	var st models.Stock
	require.NoError(t, db.First(&st, 1).Error)
	require.Equal(t, 10, st.Quantity)
	require.Equal(t, 3, st.ReservedQuantity)

	// 订单与明细快照
	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order, resp.OrderID).Error)
	require.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	require.Equal(t, "山田太郎", order.CustomerName)
	require.Len(t, order.Items, 1)
	require.True(t, order.Items[0].UnitPrice.Equal(dec("100")))
	require.True(t, order.Items[0].UnitDiscount.Equal(dec("10")))
	require.True(t, order.Items[0].LineTotal.Equal(dec("270")))
	require.True(t, order.DuePaymentAmount.Equal(order.Total))
}

func TestPlaceOrderInsufficientStockReleasesAll(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	seedStock(t, db, 1, 10, "100", "0")
	seedStock(t, db, 2, 1, "50", "0") // 第二行不够
	prefID := seedPrefecture(t, db)
	userID := int64(7)

	req := webRequest(prefID)
	req.Lines = []types.AddCartLineRequest{
		{StockID: 1, Quantity: 3},
		{StockID: 2, Quantity: 5},
	}

	_, err := svc.PlaceOrder(context.Background(), &userID, req)
	require.ErrorIs(t, err, dao.ErrInsufficientStock)

	// 第一行的占用必须被补偿释放
	var st models.Stock
	require.NoError(t, db.First(&st, 1).Error)
	require.Equal(t, 0, st.ReservedQuantity)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestPlaceOrderAddressValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	seedStock(t, db, 1, 10, "100", "0")
	prefID := seedPrefecture(t, db)
	userID := int64(7)

	req := webRequest(prefID)
	req.Address.Name = "" // 缺收货人

	_, err := svc.PlaceOrder(context.Background(), &userID, req)
	require.ErrorIs(t, err, ErrAddressValidationFailed)

	// 校验失败必须发生在任何库存变动之前
	var st models.Stock
	require.NoError(t, db.First(&st, 1).Error)
	require.Equal(t, 0, st.ReservedQuantity)
}

func TestPlaceOrderPastDueDate(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	seedStock(t, db, 1, 10, "100", "0")
	prefID := seedPrefecture(t, db)
	userID := int64(7)

	req := webRequest(prefID)
	past := time.Now().Add(-24 * time.Hour)
	req.DueDate = &past

	_, err := svc.PlaceOrder(context.Background(), &userID, req)
	require.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	userID := int64(7)

	req := &types.PlaceOrderRequest{
		Channel:       "web",
		PaymentMethod: models.PaymentMethodWechat,
	}
	_, err := svc.PlaceOrder(context.Background(), &userID, req)
	require.ErrorIs(t, err, ErrEmptyCart)
}

// POS 现金：下单即完成支付，库存直接消耗
func TestPlaceOrderPosCash(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	seedStock(t, db, 1, 10, "100", "0")
	userID := int64(7)

	req := &types.PlaceOrderRequest{
		Channel:       "pos",
		Lines:         []types.AddCartLineRequest{{StockID: 1, Quantity: 2}},
		ApplyDiscount: true,
		PaymentMethod: models.PaymentMethodCash,
	}
	resp, err := svc.PlaceOrder(context.Background(), &userID, req)
	require.NoError(t, err)
	require.Equal(t, string(models.OrderStatusPaid), resp.Status)

	var st models.Stock
	require.NoError(t, db.First(&st, 1).Error)
	require.Equal(t, 8, st.Quantity)
	require.Equal(t, 0, st.ReservedQuantity)

	var order models.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	require.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	require.True(t, order.DuePaymentAmount.IsZero())
}

// 网关拒绝：订单停在 pending，占用不释放
func TestPlaceOrderGatewayRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, failGateway{})
	seedStock(t, db, 1, 10, "100", "0")
	prefID := seedPrefecture(t, db)
	userID := int64(7)

	resp, err := svc.PlaceOrder(context.Background(), &userID, webRequest(prefID))
	require.NoError(t, err)
	require.NotEmpty(t, resp.PayMessage)

	var order models.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	require.Equal(t, models.PaymentStatusFailed, order.PaymentStatus)
	require.Equal(t, models.OrderStatusPending, order.OrderStatus)

	var st models.Stock
	require.NoError(t, db.First(&st, 1).Error)
	require.Equal(t, 3, st.ReservedQuantity)
}

// 游客下单：user_id 为 NULL
func TestPlaceOrderGuest(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	seedStock(t, db, 1, 10, "100", "0")
	prefID := seedPrefecture(t, db)

	resp, err := svc.PlaceOrder(context.Background(), nil, webRequest(prefID))
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	require.Nil(t, order.UserID)
}

// 从持久化购物车下单后购物车被清空
func TestPlaceOrderClearsCart(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckout(db, NoopGateway{})
	seedStock(t, db, 1, 10, "100", "0")
	prefID := seedPrefecture(t, db)
	userID := int64(7)

	require.NoError(t, db.Create(&models.CartLine{UserID: userID, StockID: 1, Quantity: 2}).Error)

	req := webRequest(prefID)
	req.Lines = nil // 不显式传行，走购物车

	_, err := svc.PlaceOrder(context.Background(), &userID, req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.CartLine{}).Where("user_id = ?", userID).Count(&count).Error)
	require.Zero(t, count)
}
