package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventDate       time.Time `json:"event_date"`
	Location        string    `json:"location"`
	EventType       string    `json:"event_type"`
	FundingRequired float64   `json:"funding_required"`
	AirdropAmount   float64   `json:"airdrop_amount"`
	BannerImage     string    `json:"banner_image"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.EventDate, validation.Required),
		validation.Field(&req.Location, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.EventType, validation.Required),
		validation.Field(&req.FundingRequired, validation.Required, validation.Min(0.000001)),
		validation.Field(&req.AirdropAmount, validation.Required, validation.Min(0.000001)),
	)
}

type UpdateEventRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	EventDate       *time.Time `json:"event_date"`
	Location        *string    `json:"location"`
	EventType       *string    `json:"event_type"`
	FundingRequired *float64   `json:"funding_required"`
	AirdropAmount   *float64   `json:"airdrop_amount"`
	BannerImage     *string    `json:"banner_image"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Location, validation.Length(2, 200)),
		validation.Field(&req.FundingRequired, validation.Min(0.000001)),
		validation.Field(&req.AirdropAmount, validation.Min(0.000001)),
	)
}

type FundEventRequest struct {
	Amount float64 `json:"amount"`
}

func (req *FundEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required, validation.Min(0.000001)),
	)
}
