package types

// AdjustQuantityRequest 管理端库存调整
type AdjustQuantityRequest struct {
	Quantity int    `json:"quantity" binding:"required,gte=0"`
	Mode     string `json:"mode" binding:"required,oneof=add subtract replace"`
	Reason   string `json:"reason"`
}

// 调整模式
const (
	AdjustModeAdd      = "add"
	AdjustModeSubtract = "subtract"
	AdjustModeReplace  = "replace"
)
