package domain

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventFunded    EventStatus = "funded"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

type Event struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	EventDate           time.Time   `json:"event_date"`
	Location            string      `json:"location"`
	EventType           string      `json:"event_type"`
	Status              EventStatus `json:"status"`
	OrganizerID         string      `json:"organizer_id"`
	FundingRequired     float64     `json:"funding_required"`
	AirdropAmount       float64     `json:"airdrop_amount"`
	MaxParticipants     int64       `json:"max_participants"`
	CurrentParticipants int64       `json:"current_participants"`
	CurrentFunding      float64     `json:"current_funding"`
	SponsorID           string      `json:"sponsor_id,omitempty"`
	SponsorAmount       float64     `json:"sponsor_amount,omitempty"`
	SponsorFundedAt     *time.Time  `json:"sponsor_funded_at,omitempty"`
	BannerImage         string      `json:"banner_image,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
	FundedAt            *time.Time  `json:"funded_at,omitempty"`
	CompletedAt         *time.Time  `json:"completed_at,omitempty"`
}

// EventPatch holds the mutable fields of a draft event. Nil means "leave as is".
type EventPatch struct {
	Title           *string
	Description     *string
	EventDate       *time.Time
	Location        *string
	EventType       *string
	FundingRequired *float64
	AirdropAmount   *float64
	BannerImage     *string
}

func (p EventPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.EventDate == nil &&
		p.Location == nil &&
		p.EventType == nil &&
		p.FundingRequired == nil &&
		p.AirdropAmount == nil &&
		p.BannerImage == nil
}

func (p EventPatch) TouchesFunding() bool {
	return p.FundingRequired != nil || p.AirdropAmount != nil
}

// Participant is the projection of a User joined with its active
// PARTICIPANT_OF relationship properties.
type Participant struct {
	UserID        string     `json:"user_id"`
	WalletAddress string     `json:"wallet_address"`
	Name          string     `json:"name,omitempty"`
	ProfileImage  string     `json:"profile_image,omitempty"`
	JoinedAt      time.Time  `json:"joined_at"`
	LeftAt        *time.Time `json:"left_at,omitempty"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
}

// Sponsor is the projection of a User joined with its SPONSOR_OF
// relationship properties.
type Sponsor struct {
	UserID        string    `json:"user_id"`
	WalletAddress string    `json:"wallet_address"`
	Name          string    `json:"name,omitempty"`
	Amount        float64   `json:"amount"`
	FundedAt      time.Time `json:"funded_at"`
}
