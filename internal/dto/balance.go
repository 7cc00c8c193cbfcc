package dto

type BalanceResponseDTO struct {
	UserID  string `json:"user_id" example:"alice"`
	Balance int64  `json:"balance" example:"21"`
}

type AuditResponseDTO struct {
	UserID     string `json:"user_id" example:"alice"`
	Balance    int64  `json:"balance" example:"21"`
	EntriesSum int64  `json:"entries_sum" example:"21"`
	Consistent bool   `json:"consistent" example:"true"`
}
