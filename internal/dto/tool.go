package dto

import "encoding/json"

type ToolResponseDTO struct {
	JobID    string          `json:"job_id" example:"job-42"`
	Tool     string          `json:"tool" example:"ocr"`
	Cost     int64           `json:"cost" example:"4"`
	Balance  int64           `json:"balance" example:"21"`
	Refunded bool            `json:"refunded" example:"false"`
	Output   json.RawMessage `json:"output,omitempty" swaggertype:"object"`
}
