package dto

type CreditRequestDTO struct {
	Amount    int64  `json:"amount" validate:"gt=0" example:"50"`
	Reason    string `json:"reason" validate:"required,max=64" example:"admin:goodwill"`
	RelatedID string `json:"related_id" validate:"required,max=128" example:"ticket-1234"`
}

type CreateCodeRequestDTO struct {
	Value int64 `json:"value" validate:"gt=0" example:"10"`
}

type CreateCodeResponseDTO struct {
	ID    int64  `json:"id" example:"7"`
	Code  string `json:"code" example:"K7QX2M9PZT4H"`
	Value int64  `json:"value" example:"10"`
}

type ReconcileResponseDTO struct {
	Users []string `json:"users"`
}
