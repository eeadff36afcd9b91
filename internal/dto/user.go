package dto

type SaveRequestDTO struct {
	Phone       string `json:"phone" example:"13800138000"`
	PIN         string `json:"pin" example:"1234"`
	Result      string `json:"result" example:"INTJ"`
	QuestionSet string `json:"questionSet,omitempty" example:"standard"`
}

type SaveResponseDTO struct {
	Success     bool  `json:"success" example:"true"`
	RecordCount int   `json:"recordCount" example:"3"`
	Credits     int   `json:"credits" example:"2"`
	Timestamp   int64 `json:"timestamp" example:"1714564800000"`
	IsNewUser   bool  `json:"isNewUser" example:"false"`
}

type RecordDTO struct {
	Result      string `json:"result" example:"INTJ"`
	QuestionSet string `json:"questionSet,omitempty" example:"standard"`
	Timestamp   int64  `json:"timestamp" example:"1714564800000"`
	Viewed      bool   `json:"viewed" example:"false"`
}

type QueryResponseDTO struct {
	Found   bool        `json:"found" example:"true"`
	Credits int         `json:"credits" example:"2"`
	Records []RecordDTO `json:"records"`
}

type UseCreditRequestDTO struct {
	Phone     string `json:"phone" example:"13800138000"`
	Timestamp int64  `json:"timestamp" example:"1714564800000"`
}

type UseCreditResponseDTO struct {
	Success       bool `json:"success" example:"true"`
	Credits       int  `json:"credits" example:"1"`
	AlreadyViewed bool `json:"alreadyViewed" example:"false"`
}

type NeedPaymentResponseDTO struct {
	Error       string `json:"error" example:"insufficient credit"`
	NeedPayment bool   `json:"needPayment" example:"true"`
	Credits     int    `json:"credits" example:"0"`
}
