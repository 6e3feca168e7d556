package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/huddleup-labs/huddleup-api/internal/chain"
	"github.com/huddleup-labs/huddleup-api/internal/domain"
)

type ChainLedger interface {
	MarkSeen(ctx context.Context, txHash string, logIndex uint, name string, blockNumber uint64) (bool, error)
	MarkProcessed(ctx context.Context, txHash string, logIndex uint) error
	RecordError(ctx context.Context, txHash string, logIndex uint, message string) error
}

type MirrorEventRepository interface {
	FindByID(ctx context.Context, id string) (domain.Event, error)
	Fund(ctx context.Context, eventID, sponsorID string, amount float64) (domain.Event, error)
	Participate(ctx context.Context, eventID, userID string) (domain.Event, error)
	Leave(ctx context.Context, eventID, userID string) (domain.Event, error)
	Complete(ctx context.Context, eventID, userID string) (domain.Event, error)
	MarkParticipantVerified(ctx context.Context, eventID, wallet string) error
}

type MirrorUserRepository interface {
	UpsertByWallet(ctx context.Context, wallet string, method domain.ConnectionMethod, profile domain.UserProfile) (domain.User, error)
}

// MirrorService is the single ingestion pipeline for on-chain events.
// Every delivery transport feeds the same Ingest method; the ledger keyed
// by (txHash, logIndex) makes redelivery a no-op.
type MirrorService struct {
	ledger ChainLedger
	events MirrorEventRepository
	users  MirrorUserRepository
}

func NewMirrorService(ledger ChainLedger, events MirrorEventRepository, users MirrorUserRepository) *MirrorService {
	return &MirrorService{
		ledger: ledger,
		events: events,
		users:  users,
	}
}

func (s *MirrorService) Ingest(ctx context.Context, event chain.Event) error {
	isNew, err := s.ledger.MarkSeen(ctx, event.TxHash, event.LogIndex, event.Name, event.BlockNumber)
	if err != nil {
		return fmt.Errorf("s.ledger.MarkSeen -> %w", err)
	}
	if !isNew {
		zap.L().Debug("skipping already ingested log",
			zap.String("tx_hash", event.TxHash),
			zap.Uint("log_index", event.LogIndex))

		return nil
	}

	if err = s.apply(ctx, event); err != nil {
		if recordErr := s.ledger.RecordError(ctx, event.TxHash, event.LogIndex, err.Error()); recordErr != nil {
			zap.L().Error("failed to record ingestion error", zap.Error(recordErr))
		}

		return fmt.Errorf("s.apply(%s) -> %w", event.Name, err)
	}

	if err = s.ledger.MarkProcessed(ctx, event.TxHash, event.LogIndex); err != nil {
		return fmt.Errorf("s.ledger.MarkProcessed -> %w", err)
	}

	return nil
}

func (s *MirrorService) apply(ctx context.Context, event chain.Event) error {
	switch event.Name {
	case chain.EventCreated:
		return s.applyCreated(ctx, event)
	case chain.EventFunded:
		return s.applyFunded(ctx, event)
	case chain.ParticipantJoined:
		return s.applyJoined(ctx, event)
	case chain.ParticipantLeft:
		return s.applyLeft(ctx, event)
	case chain.ParticipantVerified:
		return s.applyVerified(ctx, event)
	case chain.FundsWithdrawn:
		return s.applyWithdrawn(ctx, event)
	default:
		return fmt.Errorf("%w: %s", chain.ErrUnknownEvent, event.Name)
	}
}

// applyCreated only reconciles: events are created through the API before
// the on-chain transaction is sent, so the node should already exist.
func (s *MirrorService) applyCreated(ctx context.Context, event chain.Event) error {
	_, err := s.events.FindByID(ctx, event.EventID)
	if errors.Is(err, ErrEventNotFound) {
		zap.L().Warn("on-chain event has no graph counterpart",
			zap.String("event_id", event.EventID),
			zap.String("organizer_wallet", event.Wallet))

		return nil
	}
	if err != nil {
		return fmt.Errorf("s.events.FindByID -> %w", err)
	}

	return nil
}

func (s *MirrorService) applyFunded(ctx context.Context, event chain.Event) error {
	sponsor, err := s.users.UpsertByWallet(ctx, event.Wallet, domain.ConnectionOther, domain.UserProfile{})
	if err != nil {
		return fmt.Errorf("s.users.UpsertByWallet -> %w", err)
	}

	if _, err = s.events.Fund(ctx, event.EventID, sponsor.ID, event.Amount); err != nil {
		// A sponsor already recorded through the API is not a conflict.
		if errors.Is(err, ErrAlreadySponsored) {
			return nil
		}

		return fmt.Errorf("s.events.Fund -> %w", err)
	}

	return nil
}

func (s *MirrorService) applyJoined(ctx context.Context, event chain.Event) error {
	participant, err := s.users.UpsertByWallet(ctx, event.Wallet, domain.ConnectionOther, domain.UserProfile{})
	if err != nil {
		return fmt.Errorf("s.users.UpsertByWallet -> %w", err)
	}

	if _, err = s.events.Participate(ctx, event.EventID, participant.ID); err != nil {
		if errors.Is(err, ErrAlreadyParticipating) {
			return nil
		}

		return fmt.Errorf("s.events.Participate -> %w", err)
	}

	return nil
}

func (s *MirrorService) applyLeft(ctx context.Context, event chain.Event) error {
	participant, err := s.users.UpsertByWallet(ctx, event.Wallet, domain.ConnectionOther, domain.UserProfile{})
	if err != nil {
		return fmt.Errorf("s.users.UpsertByWallet -> %w", err)
	}

	if _, err = s.events.Leave(ctx, event.EventID, participant.ID); err != nil {
		if errors.Is(err, ErrNotParticipating) {
			return nil
		}

		return fmt.Errorf("s.events.Leave -> %w", err)
	}

	return nil
}

func (s *MirrorService) applyVerified(ctx context.Context, event chain.Event) error {
	if err := s.events.MarkParticipantVerified(ctx, event.EventID, event.Wallet); err != nil {
		return fmt.Errorf("s.events.MarkParticipantVerified -> %w", err)
	}

	return nil
}

// applyWithdrawn marks the event completed: the organizer withdrawing the
// remaining funds is the contract's terminal action.
func (s *MirrorService) applyWithdrawn(ctx context.Context, event chain.Event) error {
	found, err := s.events.FindByID(ctx, event.EventID)
	if err != nil {
		return fmt.Errorf("s.events.FindByID -> %w", err)
	}

	if _, err = s.events.Complete(ctx, event.EventID, found.OrganizerID); err != nil {
		if errors.Is(err, ErrEventNotFunded) {
			// Already completed through the API.
			return nil
		}

		return fmt.Errorf("s.events.Complete -> %w", err)
	}

	return nil
}
