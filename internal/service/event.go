package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/huddleup-labs/huddleup-api/internal/domain"
	"github.com/huddleup-labs/huddleup-api/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrNotOrganizer         = repository.ErrNotOrganizer
	ErrEventNotDraft        = repository.ErrEventNotDraft
	ErrEventNotFunded       = repository.ErrEventNotFunded
	ErrEventFull            = repository.ErrEventFull
	ErrAlreadyParticipating = repository.ErrAlreadyParticipating
	ErrNotParticipating     = repository.ErrNotParticipating
	ErrAlreadySponsored     = repository.ErrAlreadySponsored
	ErrWrongFundingAmount   = repository.ErrWrongFundingAmount
	ErrInvalidFundingRatio  = repository.ErrInvalidFundingRatio
	ErrEmptyPatch           = errors.New("no fields to update")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id string) (domain.Event, error)
	FindAll(ctx context.Context, status domain.EventStatus) ([]domain.Event, error)
	FindOrganizedBy(ctx context.Context, userID string) ([]domain.Event, error)
	FindSponsoredBy(ctx context.Context, userID string) ([]domain.Event, error)
	FindParticipatingBy(ctx context.Context, userID string) ([]domain.Event, error)
	Update(ctx context.Context, eventID, userID string, patch domain.EventPatch) (domain.Event, error)
	Delete(ctx context.Context, eventID, userID string) error
	Fund(ctx context.Context, eventID, sponsorID string, amount float64) (domain.Event, error)
	Participate(ctx context.Context, eventID, userID string) (domain.Event, error)
	Leave(ctx context.Context, eventID, userID string) (domain.Event, error)
	Complete(ctx context.Context, eventID, userID string) (domain.Event, error)
	Cancel(ctx context.Context, eventID, userID string) (domain.Event, error)
	MarkParticipantVerified(ctx context.Context, eventID, wallet string) error
	Participants(ctx context.Context, eventID string) ([]domain.Participant, error)
	SponsorOf(ctx context.Context, eventID string) (domain.Sponsor, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// MaxParticipants derives the participant cap from the funding terms.
// A cap below one means the airdrop could never be paid out.
func MaxParticipants(fundingRequired, airdropAmount float64) (int64, error) {
	if fundingRequired <= 0 || airdropAmount <= 0 {
		return 0, ErrInvalidFundingRatio
	}

	cap := int64(math.Floor(fundingRequired / airdropAmount))
	if cap < 1 {
		return 0, ErrInvalidFundingRatio
	}

	return cap, nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	cap, err := MaxParticipants(event.FundingRequired, event.AirdropAmount)
	if err != nil {
		return domain.Event{}, err
	}
	event.MaxParticipants = cap
	event.Status = domain.EventDraft

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListOrganizedEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	events, err := s.repo.FindOrganizedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOrganizedBy -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListSponsoredEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	events, err := s.repo.FindSponsoredBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSponsoredBy -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListParticipatingEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	events, err := s.repo.FindParticipatingBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipatingBy -> %w", err)
	}

	return events, nil
}

// UpdateEvent patches a draft event. When the funding terms change, the
// participant cap is recomputed; the new terms must still allow at least
// one participant.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, userID string, patch domain.EventPatch) (domain.Event, error) {
	if patch.IsEmpty() {
		return domain.Event{}, ErrEmptyPatch
	}

	if patch.TouchesFunding() {
		current, err := s.repo.FindByID(ctx, eventID)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}

		fundingRequired := current.FundingRequired
		airdropAmount := current.AirdropAmount
		if patch.FundingRequired != nil {
			fundingRequired = *patch.FundingRequired
		}
		if patch.AirdropAmount != nil {
			airdropAmount = *patch.AirdropAmount
		}

		if _, err = MaxParticipants(fundingRequired, airdropAmount); err != nil {
			return domain.Event{}, err
		}
	}

	updated, err := s.repo.Update(ctx, eventID, userID, patch)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID string) error {
	if err := s.repo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// FundEvent records the sponsor's full funding of a draft event and flips
// it to funded. The amount must match fundingRequired exactly.
func (s *EventService) FundEvent(ctx context.Context, eventID, sponsorID string, amount float64) (domain.Event, error) {
	funded, err := s.repo.Fund(ctx, eventID, sponsorID, amount)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Fund -> %w", err)
	}

	return funded, nil
}

func (s *EventService) Participate(ctx context.Context, eventID, userID string) (domain.Event, error) {
	joined, err := s.repo.Participate(ctx, eventID, userID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Participate -> %w", err)
	}

	return joined, nil
}

func (s *EventService) Leave(ctx context.Context, eventID, userID string) (domain.Event, error) {
	left, err := s.repo.Leave(ctx, eventID, userID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Leave -> %w", err)
	}

	return left, nil
}

func (s *EventService) CompleteEvent(ctx context.Context, eventID, userID string) (domain.Event, error) {
	completed, err := s.repo.Complete(ctx, eventID, userID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Complete -> %w", err)
	}

	return completed, nil
}

func (s *EventService) CancelEvent(ctx context.Context, eventID, userID string) (domain.Event, error) {
	cancelled, err := s.repo.Cancel(ctx, eventID, userID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return cancelled, nil
}

func (s *EventService) ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	participants, err := s.repo.Participants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Participants -> %w", err)
	}

	return participants, nil
}

func (s *EventService) GetSponsor(ctx context.Context, eventID string) (domain.Sponsor, error) {
	sponsor, err := s.repo.SponsorOf(ctx, eventID)
	if err != nil {
		return domain.Sponsor{}, fmt.Errorf("s.repo.SponsorOf -> %w", err)
	}

	return sponsor, nil
}
