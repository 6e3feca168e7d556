package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type GenerateQRRequest struct {
	EventID string `json:"event_id"`
}

func (req *GenerateQRRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
	)
}

type VerifyQRRequest struct {
	Token string `json:"token"`
}

func (req *VerifyQRRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Token, validation.Required),
	)
}
