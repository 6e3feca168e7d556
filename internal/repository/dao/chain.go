package dao

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// cursorID keys the singleton ChainCursor node.
const cursorID = "huddleup"

type ChainDAO struct {
	driver neo4j.DriverWithContext
}

func NewChainDAO(driver neo4j.DriverWithContext) *ChainDAO {
	return &ChainDAO{
		driver: driver,
	}
}

const markSeenQuery = `
MERGE (c:ChainEvent {txHash: $txHash, logIndex: $logIndex})
ON CREATE SET
    c.name = $name,
    c.blockNumber = $blockNumber,
    c.firstSeenAt = $now,
    c.isNew = true
WITH c, coalesce(c.isNew, false) AS isNew
REMOVE c.isNew
RETURN isNew`

// MarkSeen records the (txHash, logIndex) ledger entry. It returns false
// when the log was delivered before, making redelivery a no-op for callers.
func (d *ChainDAO) MarkSeen(ctx context.Context, txHash string, logIndex uint, name string, blockNumber uint64, now time.Time) (bool, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, markSeenQuery, map[string]any{
			"txHash":      txHash,
			"logIndex":    int64(logIndex),
			"name":        name,
			"blockNumber": int64(blockNumber),
			"now":         now,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}

		isNew, _ := record.Get("isNew")

		return isNew, nil
	})
	if err != nil {
		return false, err
	}

	isNew, _ := result.(bool)

	return isNew, nil
}

func (d *ChainDAO) MarkProcessed(ctx context.Context, txHash string, logIndex uint, now time.Time) error {
	return d.set(ctx, txHash, logIndex, `SET c.processedAt = $value`, now)
}

// RecordError keeps the failure reason on the ledger node for inspection.
func (d *ChainDAO) RecordError(ctx context.Context, txHash string, logIndex uint, message string) error {
	return d.set(ctx, txHash, logIndex, `SET c.error = $value`, message)
}

func (d *ChainDAO) set(ctx context.Context, txHash string, logIndex uint, clause string, value any) error {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	query := `MATCH (c:ChainEvent {txHash: $txHash, logIndex: $logIndex}) ` + clause

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, query, map[string]any{
			"txHash":   txHash,
			"logIndex": int64(logIndex),
			"value":    value,
		})
	})

	return err
}

const saveCursorQuery = `
MERGE (c:ChainCursor {id: $id})
SET c.blockNumber = CASE
    WHEN c.blockNumber IS NULL OR c.blockNumber < $blockNumber THEN $blockNumber
    ELSE c.blockNumber
END
RETURN c.blockNumber AS blockNumber`

// SaveCursor advances the last-processed block number, never backwards.
func (d *ChainDAO) SaveCursor(ctx context.Context, blockNumber uint64) error {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, saveCursorQuery, map[string]any{
			"id":          cursorID,
			"blockNumber": int64(blockNumber),
		})
	})

	return err
}

// LoadCursor returns the last-processed block number, or 0 when the
// listener has never run.
func (d *ChainDAO) LoadCursor(ctx context.Context) (uint64, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (c:ChainCursor {id: $id}) RETURN c.blockNumber AS blockNumber`, map[string]any{"id": cursorID})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return int64(0), nil
		}

		blockNumber, _ := record.Get("blockNumber")

		return blockNumber, nil
	})
	if err != nil {
		return 0, err
	}

	blockNumber, _ := result.(int64)

	return uint64(blockNumber), nil
}
