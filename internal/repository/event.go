package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/repository/dao"
)

var (
	ErrEventNotFound        = dao.ErrEventNotFound
	ErrNotOrganizer         = dao.ErrNotOrganizer
	ErrEventNotDraft        = dao.ErrEventNotDraft
	ErrEventNotFunded       = dao.ErrEventNotFunded
	ErrEventFull            = dao.ErrEventFull
	ErrAlreadyParticipating = dao.ErrAlreadyParticipating
	ErrNotParticipating     = dao.ErrNotParticipating
	ErrAlreadySponsored     = dao.ErrAlreadySponsored
	ErrWrongFundingAmount   = dao.ErrWrongFundingAmount
	ErrInvalidFundingRatio  = dao.ErrInvalidFundingRatio
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id string) (dao.Event, error)
	FindAll(ctx context.Context, status string) ([]dao.Event, error)
	FindOrganizedBy(ctx context.Context, userID string) ([]dao.Event, error)
	FindSponsoredBy(ctx context.Context, userID string) ([]dao.Event, error)
	FindParticipatingBy(ctx context.Context, userID string) ([]dao.Event, error)
	Update(ctx context.Context, eventID, userID string, patch map[string]any, now time.Time) (dao.Event, error)
	Delete(ctx context.Context, eventID, userID string) error
	Fund(ctx context.Context, eventID, sponsorID string, amount float64, now time.Time) (dao.Event, error)
	Participate(ctx context.Context, eventID, userID string, now time.Time) (dao.Event, error)
	Leave(ctx context.Context, eventID, userID string, now time.Time) (dao.Event, error)
	Complete(ctx context.Context, eventID, userID string, now time.Time) (dao.Event, error)
	Cancel(ctx context.Context, eventID, userID string, now time.Time) (dao.Event, error)
	MarkParticipantVerified(ctx context.Context, eventID, wallet string, now time.Time) error
	Participants(ctx context.Context, eventID string) ([]dao.ParticipantRow, error)
	SponsorOf(ctx context.Context, eventID string) (dao.SponsorRow, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	now := time.Now().UTC()

	created, err := r.dao.Insert(ctx, dao.Event{
		ID:              uuid.NewString(),
		Title:           event.Title,
		Description:     event.Description,
		EventDate:       event.EventDate,
		Location:        event.Location,
		EventType:       event.EventType,
		OrganizerID:     event.OrganizerID,
		FundingRequired: event.FundingRequired,
		AirdropAmount:   event.AirdropAmount,
		MaxParticipants: event.MaxParticipants,
		BannerImage:     event.BannerImage,
		CreatedAt:       now,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindOrganizedBy(ctx context.Context, userID string) ([]domain.Event, error) {
	found, err := r.dao.FindOrganizedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOrganizedBy -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindSponsoredBy(ctx context.Context, userID string) ([]domain.Event, error) {
	found, err := r.dao.FindSponsoredBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSponsoredBy -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *EventRepository) FindParticipatingBy(ctx context.Context, userID string) ([]domain.Event, error) {
	found, err := r.dao.FindParticipatingBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipatingBy -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

// Update applies the patch atomically; the DAO re-verifies the organizer
// and draft-status guards inside the same transaction.
func (r *EventRepository) Update(ctx context.Context, eventID, userID string, patch domain.EventPatch) (domain.Event, error) {
	props := map[string]any{}
	setIf(props, "title", patch.Title)
	setIf(props, "description", patch.Description)
	setIf(props, "location", patch.Location)
	setIf(props, "eventType", patch.EventType)
	setIf(props, "bannerImage", patch.BannerImage)
	setIf(props, "fundingRequired", patch.FundingRequired)
	setIf(props, "airdropAmount", patch.AirdropAmount)
	if patch.EventDate != nil {
		props["eventDate"] = *patch.EventDate
	}

	updated, err := r.dao.Update(ctx, eventID, userID, props, time.Now().UTC())
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID, userID string) error {
	if err := r.dao.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) Fund(ctx context.Context, eventID, sponsorID string, amount float64) (domain.Event, error) {
	funded, err := r.dao.Fund(ctx, eventID, sponsorID, amount, time.Now().UTC())
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Fund -> %w", err)
	}

	return r.daoToDomain(funded), nil
}

func (r *EventRepository) Participate(ctx context.Context, eventID, userID string) (domain.Event, error) {
	joined, err := r.dao.Participate(ctx, eventID, userID, time.Now().UTC())
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Participate -> %w", err)
	}

	return r.daoToDomain(joined), nil
}

func (r *EventRepository) Leave(ctx context.Context, eventID, userID string) (domain.Event, error) {
	left, err := r.dao.Leave(ctx, eventID, userID, time.Now().UTC())
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Leave -> %w", err)
	}

	return r.daoToDomain(left), nil
}

func (r *EventRepository) Complete(ctx context.Context, eventID, userID string) (domain.Event, error) {
	completed, err := r.dao.Complete(ctx, eventID, userID, time.Now().UTC())
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Complete -> %w", err)
	}

	return r.daoToDomain(completed), nil
}

func (r *EventRepository) Cancel(ctx context.Context, eventID, userID string) (domain.Event, error) {
	cancelled, err := r.dao.Cancel(ctx, eventID, userID, time.Now().UTC())
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return r.daoToDomain(cancelled), nil
}

func (r *EventRepository) MarkParticipantVerified(ctx context.Context, eventID, wallet string) error {
	if err := r.dao.MarkParticipantVerified(ctx, eventID, wallet, time.Now().UTC()); err != nil {
		return fmt.Errorf("r.dao.MarkParticipantVerified -> %w", err)
	}

	return nil
}

func (r *EventRepository) Participants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	rows, err := r.dao.Participants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Participants -> %w", err)
	}

	participants := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, domain.Participant{
			UserID:        row.UserID,
			WalletAddress: row.WalletAddress,
			Name:          row.Name,
			ProfileImage:  row.ProfileImage,
			JoinedAt:      row.JoinedAt,
			LeftAt:        row.LeftAt,
			VerifiedAt:    row.VerifiedAt,
		})
	}

	return participants, nil
}

func (r *EventRepository) SponsorOf(ctx context.Context, eventID string) (domain.Sponsor, error) {
	row, err := r.dao.SponsorOf(ctx, eventID)
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("r.dao.SponsorOf -> %w", err)
	}

	return domain.Sponsor{
		UserID:        row.UserID,
		WalletAddress: row.WalletAddress,
		Name:          row.Name,
		Amount:        row.Amount,
		FundedAt:      row.FundedAt,
	}, nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		EventDate:           e.EventDate,
		Location:            e.Location,
		EventType:           e.EventType,
		Status:              domain.EventStatus(e.Status),
		OrganizerID:         e.OrganizerID,
		FundingRequired:     e.FundingRequired,
		AirdropAmount:       e.AirdropAmount,
		MaxParticipants:     e.MaxParticipants,
		CurrentParticipants: e.CurrentParticipants,
		CurrentFunding:      e.CurrentFunding,
		SponsorID:           e.SponsorID,
		SponsorAmount:       e.SponsorAmount,
		SponsorFundedAt:     e.SponsorFundedAt,
		BannerImage:         e.BannerImage,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
		FundedAt:            e.FundedAt,
		CompletedAt:         e.CompletedAt,
	}
}

func (r *EventRepository) daoToDomainSlice(events []dao.Event) []domain.Event {
	result := make([]domain.Event, 0, len(events))
	for _, e := range events {
		result = append(result, r.daoToDomain(e))
	}

	return result
}

func setIf[T any](props map[string]any, key string, value *T) {
	if value != nil {
		props[key] = *value
	}
}
