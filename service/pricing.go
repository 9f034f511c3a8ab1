package service

import (
	"Marche/config"
	"Marche/dao"
	"Marche/models"
	"Marche/pkg/log"
	"Marche/types"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PricingService 购物车定价引擎：小计/折扣/税/运费/总额。
// 纯计算收在 Compute 里，没有任何实例状态，天然可并发
type PricingService struct {
	Config        *config.Config
	StockDAO      *dao.Stock
	DiscountDAO   *dao.DiscountRule
	PrefectureDAO *dao.Prefecture
}

var _ IPricingService = (*PricingService)(nil)

type IPricingService interface {
	PriceCart(ctx context.Context, lines []types.CartLine, channel models.Channel, applyDiscount bool,
		customDiscounts map[uint64]decimal.Decimal, shipping types.ShippingInput) (*types.PricingBreakdown, error)
	ResolveShipping(ctx context.Context, channel models.Channel, in types.ShippingInput) (decimal.Decimal, error)
	TaxFor(channel models.Channel, subtotal decimal.Decimal) decimal.Decimal
}

// PriceCart 加载库存与阶梯规则后做一次完整试算
func (p *PricingService) PriceCart(ctx context.Context, lines []types.CartLine, channel models.Channel,
	applyDiscount bool, customDiscounts map[uint64]decimal.Decimal, shipping types.ShippingInput) (*types.PricingBreakdown, error) {

	stocks, rules, err := p.loadPricingData(ctx, lines)
	if err != nil {
		return nil, err
	}

	shippingCost, err := p.ResolveShipping(ctx, channel, shipping)
	if err != nil {
		return nil, err
	}

	bd := Compute(lines, stocks, rules, channel, applyDiscount, customDiscounts,
		channel.TaxRate(p.Config.Commerce), shippingCost)

	log.L.Info("cart priced",
		zap.String("channel", string(channel)),
		zap.Int("lines", len(lines)),
		zap.String("subtotal", bd.Subtotal.String()),
		zap.String("discount", bd.TotalDiscount.String()),
		zap.String("tax", bd.Tax.String()),
		zap.String("shipping", bd.ShippingCost.String()),
		zap.String("total", bd.GrandTotal.String()),
	)
	return &bd, nil
}

func (p *PricingService) loadPricingData(ctx context.Context, lines []types.CartLine) (map[uint64]*models.Stock, map[uint64][]*models.DiscountRule, error) {
	ids := make([]uint64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.StockID)
	}
	stocks, err := p.StockDAO.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for _, l := range lines {
		if _, ok := stocks[l.StockID]; !ok {
			return nil, nil, fmt.Errorf("%w: stock %d", dao.ErrStockNotFound, l.StockID)
		}
	}
	rules, err := p.DiscountDAO.ListByStockIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return stocks, rules, nil
}

// ResolveShipping 运费：显式覆盖 > 自宅配送免运费 > web 渠道按都道府县查表，
// 代引在结果上叠加固定附加费
func (p *PricingService) ResolveShipping(ctx context.Context, channel models.Channel, in types.ShippingInput) (decimal.Decimal, error) {
	base := decimal.Zero
	switch {
	case in.Override != nil:
		base = *in.Override
	case in.HomeDelivery:
		base = decimal.Zero
	case channel == models.ChannelWeb && in.PrefectureID != nil:
		pref, err := p.PrefectureDAO.FindById(ctx, *in.PrefectureID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.Zero, fmt.Errorf("%w: prefecture %d", ErrAddressValidationFailed, *in.PrefectureID)
			}
			return decimal.Zero, err
		}
		base = pref.ShippingFee
	}
	if in.CashOnDelivery {
		base = base.Add(p.Config.Commerce.CodFee())
	}
	return base, nil
}

// TaxFor 按渠道税率对折后小计计税，四舍五入保留两位
func (p *PricingService) TaxFor(channel models.Channel, subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(channel.TaxRate(p.Config.Commerce)).Round(2)
}

// Compute 纯定价函数。内部全程 decimal 精确计算，只在对外字段上保留两位。
// totalDiscount 用折前-折后求差，不逐项累加折扣，避免两条路径舍入不一致
func Compute(lines []types.CartLine, stocks map[uint64]*models.Stock, rules map[uint64][]*models.DiscountRule,
	channel models.Channel, applyDiscount bool, customDiscounts map[uint64]decimal.Decimal,
	taxRate decimal.Decimal, shippingCost decimal.Decimal) types.PricingBreakdown {

	var (
		discounted   = decimal.Zero
		undiscounted = decimal.Zero
		out          = make([]types.LinePricing, 0, len(lines))
	)

	for _, l := range lines {
		stock := stocks[l.StockID]
		qty := decimal.NewFromInt(int64(l.Quantity))
		unitPrice := channel.Price(stock)

		effDiscount := decimal.Zero
		if applyDiscount {
			effDiscount = channel.BaseDiscount(stock).Add(BestTier(rules[l.StockID], l.Quantity))
			if custom, ok := customDiscounts[l.StockID]; ok && l.Quantity > 0 {
				// 自定义折扣按行传总额，摊到单件
				effDiscount = effDiscount.Add(custom.Div(qty))
			}
		}

		lineTotal := unitPrice.Sub(effDiscount).Mul(qty)
		discounted = discounted.Add(lineTotal)
		undiscounted = undiscounted.Add(unitPrice.Mul(qty))

		out = append(out, types.LinePricing{
			StockID:      l.StockID,
			ProductName:  stock.ProductName,
			CategoryName: stock.CategoryName,
			BrandName:    stock.BrandName,
			Quantity:     l.Quantity,
			UnitPrice:    unitPrice,
			UnitDiscount: effDiscount,
			LineTotal:    lineTotal.Round(2),
		})
	}

	tax := discounted.Mul(taxRate).Round(2)
	totalDiscount := undiscounted.Sub(discounted)
	grand := discounted.Add(tax).Add(shippingCost)

	return types.PricingBreakdown{
		Subtotal:             discounted.Round(2),
		UndiscountedSubtotal: undiscounted.Round(2),
		TotalDiscount:        totalDiscount.Round(2),
		SavedAmount:          totalDiscount.Round(2),
		Tax:                  tax,
		TaxRate:              taxRate,
		ShippingCost:         shippingCost.Round(2),
		GrandTotal:           grand.Round(2),
		Lines:                out,
	}
}
