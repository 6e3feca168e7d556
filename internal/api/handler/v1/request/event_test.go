package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateEventRequest_Validate(t *testing.T) {
	valid := CreateEventRequest{
		Title:           "Community Meetup",
		Description:     "An evening of talks.",
		EventDate:       time.Now().Add(48 * time.Hour),
		Location:        "Paris",
		EventType:       "meetup",
		FundingRequired: 500,
		AirdropAmount:   50,
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("missing title fails", func(t *testing.T) {
		req := valid
		req.Title = ""
		assert.Error(t, req.Validate())
	})

	t.Run("short title fails", func(t *testing.T) {
		req := valid
		req.Title = "x"
		assert.Error(t, req.Validate())
	})

	t.Run("missing location fails", func(t *testing.T) {
		req := valid
		req.Location = ""
		assert.Error(t, req.Validate())
	})

	t.Run("zero funding fails", func(t *testing.T) {
		req := valid
		req.FundingRequired = 0
		assert.Error(t, req.Validate())
	})

	t.Run("zero airdrop fails", func(t *testing.T) {
		req := valid
		req.AirdropAmount = 0
		assert.Error(t, req.Validate())
	})
}

func TestUpdateEventRequest_Validate(t *testing.T) {
	t.Run("empty patch passes validation", func(t *testing.T) {
		// Emptiness is a service-level concern, not a shape concern.
		req := UpdateEventRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid partial patch passes", func(t *testing.T) {
		title := "New Title"
		req := UpdateEventRequest{Title: &title}
		assert.NoError(t, req.Validate())
	})

	t.Run("short title fails", func(t *testing.T) {
		title := "x"
		req := UpdateEventRequest{Title: &title}
		assert.Error(t, req.Validate())
	})
}

func TestFundEventRequest_Validate(t *testing.T) {
	assert.NoError(t, (&FundEventRequest{Amount: 500}).Validate())
	assert.Error(t, (&FundEventRequest{}).Validate())
	assert.Error(t, (&FundEventRequest{Amount: -10}).Validate())
}
