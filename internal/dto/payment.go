package dto

type CreateOrderRequestDTO struct {
	MbtiResult string `json:"mbtiResult" example:"RECHARGE_10"`
	Phone      string `json:"phone" example:"13800138000"`
	Type       string `json:"type,omitempty" example:"alipay"`
	Method     string `json:"method,omitempty" example:"web"`
}

type CreateOrderResponseDTO struct {
	OutTradeNo string `json:"outTradeNo" example:"MBTI_13800138000_1714564800000_42"`
	TradeNo    string `json:"tradeNo" example:"2024050112000012345"`
	PayType    string `json:"payType" example:"qrcode"`
	PayInfo    string `json:"payInfo" example:"https://qr.alipay.com/abc"`
	Money      string `json:"money" example:"3.00"`
}

type QueryOrderResponseDTO struct {
	OutTradeNo string `json:"outTradeNo" example:"MBTI_13800138000_1714564800000_42"`
	Paid       bool   `json:"paid" example:"true"`
	Status     int    `json:"status" example:"1"`
	TradeNo    string `json:"tradeNo,omitempty" example:"2024050112000012345"`
	Money      string `json:"money,omitempty" example:"3.00"`
	Credited   bool   `json:"credited" example:"true"`
	Error      string `json:"error,omitempty"`
}
