package repository

import (
	"context"
	"fmt"
	"time"
)

type ChainDAO interface {
	MarkSeen(ctx context.Context, txHash string, logIndex uint, name string, blockNumber uint64, now time.Time) (bool, error)
	MarkProcessed(ctx context.Context, txHash string, logIndex uint, now time.Time) error
	RecordError(ctx context.Context, txHash string, logIndex uint, message string) error
	SaveCursor(ctx context.Context, blockNumber uint64) error
	LoadCursor(ctx context.Context) (uint64, error)
}

// ChainRepository keeps the on-chain ingestion ledger and block cursor.
type ChainRepository struct {
	dao ChainDAO
}

func NewChainRepository(dao ChainDAO) *ChainRepository {
	return &ChainRepository{
		dao: dao,
	}
}

// MarkSeen returns false when the (txHash, logIndex) pair was already
// ingested, regardless of which transport delivered it.
func (r *ChainRepository) MarkSeen(ctx context.Context, txHash string, logIndex uint, name string, blockNumber uint64) (bool, error) {
	isNew, err := r.dao.MarkSeen(ctx, txHash, logIndex, name, blockNumber, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("r.dao.MarkSeen -> %w", err)
	}

	return isNew, nil
}

func (r *ChainRepository) MarkProcessed(ctx context.Context, txHash string, logIndex uint) error {
	if err := r.dao.MarkProcessed(ctx, txHash, logIndex, time.Now().UTC()); err != nil {
		return fmt.Errorf("r.dao.MarkProcessed -> %w", err)
	}

	return nil
}

func (r *ChainRepository) RecordError(ctx context.Context, txHash string, logIndex uint, message string) error {
	if err := r.dao.RecordError(ctx, txHash, logIndex, message); err != nil {
		return fmt.Errorf("r.dao.RecordError -> %w", err)
	}

	return nil
}

func (r *ChainRepository) SaveCursor(ctx context.Context, blockNumber uint64) error {
	if err := r.dao.SaveCursor(ctx, blockNumber); err != nil {
		return fmt.Errorf("r.dao.SaveCursor -> %w", err)
	}

	return nil
}

func (r *ChainRepository) LoadCursor(ctx context.Context) (uint64, error) {
	blockNumber, err := r.dao.LoadCursor(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.LoadCursor -> %w", err)
	}

	return blockNumber, nil
}
