package dto

type RedeemRequestDTO struct {
	Code string `json:"code" validate:"required,max=64" example:"K7QX2M9PZT4H"`
}

type RedeemResponseDTO struct {
	CodeID          int64 `json:"code_id" example:"7"`
	Value           int64 `json:"value" example:"10"`
	Balance         int64 `json:"balance" example:"35"`
	AlreadyRedeemed bool  `json:"already_redeemed" example:"false"`
}
