package config

import "github.com/shopspring/decimal"

// Commerce 交易相关配置：税率、代引手续费等
type Commerce struct {
	PosTaxRate   string `json:"pos_tax_rate" yaml:"pos_tax_rate"`   // POS 渠道税率，例 "0.10"
	WebTaxRate   string `json:"web_tax_rate" yaml:"web_tax_rate"`   // Web 渠道税率（增值税），例 "0.08"
	CodSurcharge string `json:"cod_surcharge" yaml:"cod_surcharge"` // 货到付款附加费
	Currency     string `json:"currency" yaml:"currency"`
}

var (
	defaultPosTaxRate = decimal.RequireFromString("0.10")
	defaultWebTaxRate = decimal.RequireFromString("0.08")
)

func (c *Commerce) PosRate() decimal.Decimal {
	if c == nil || c.PosTaxRate == "" {
		return defaultPosTaxRate
	}
	return decimal.RequireFromString(c.PosTaxRate)
}

func (c *Commerce) WebRate() decimal.Decimal {
	if c == nil || c.WebTaxRate == "" {
		return defaultWebTaxRate
	}
	return decimal.RequireFromString(c.WebTaxRate)
}

func (c *Commerce) CodFee() decimal.Decimal {
	if c == nil || c.CodSurcharge == "" {
		return decimal.Zero
	}
	return decimal.RequireFromString(c.CodSurcharge)
}

func (c *Commerce) CurrencyCode() string {
	if c == nil || c.Currency == "" {
		return "JPY"
	}
	return c.Currency
}
