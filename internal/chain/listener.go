package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/huddleup-labs/huddleup-api/internal/config"
)

const (
	initialBackoff = time.Second
	maxBackoff     = time.Minute
)

// Ingestor applies a decoded contract event to the graph. Both the
// listener and the webhook receiver feed the same implementation.
type Ingestor interface {
	Ingest(ctx context.Context, event Event) error
}

// CursorStore persists the last fully processed block number.
type CursorStore interface {
	SaveCursor(ctx context.Context, blockNumber uint64) error
	LoadCursor(ctx context.Context) (uint64, error)
}

// Listener subscribes to the contract's logs over WebSocket, backfilling
// from the persisted cursor on every (re)connect so a dropped connection
// loses nothing.
type Listener struct {
	conf     *config.ChainConfig
	ingestor Ingestor
	cursor   CursorStore
}

func NewListener(conf *config.ChainConfig, ingestor Ingestor, cursor CursorStore) *Listener {
	return &Listener{
		conf:     conf,
		ingestor: ingestor,
		cursor:   cursor,
	}
}

// Run blocks until ctx is cancelled, reconnecting with exponential
// backoff whenever the subscription drops.
func (l *Listener) Run(ctx context.Context) {
	backoff := initialBackoff

	for {
		err := l.stream(ctx, func() { backoff = initialBackoff })
		if ctx.Err() != nil {
			return
		}

		zap.L().Error("chain listener disconnected",
			zap.Error(err),
			zap.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (l *Listener) stream(ctx context.Context, onConnected func()) error {
	client, err := ethclient.DialContext(ctx, l.conf.WSSEndpoint)
	if err != nil {
		return fmt.Errorf("ethclient.DialContext -> %w", err)
	}
	defer client.Close()

	contract := common.HexToAddress(l.conf.ContractAddress)

	if err = l.backfill(ctx, client, contract); err != nil {
		return fmt.Errorf("l.backfill -> %w", err)
	}

	logs := make(chan types.Log, 64)
	sub, err := client.SubscribeFilterLogs(ctx, ethereum.FilterQuery{
		Addresses: []common.Address{contract},
	}, logs)
	if err != nil {
		return fmt.Errorf("client.SubscribeFilterLogs -> %w", err)
	}
	defer sub.Unsubscribe()

	onConnected()
	zap.L().Info("chain listener subscribed", zap.String("contract", contract.Hex()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err = <-sub.Err():
			return fmt.Errorf("subscription error -> %w", err)
		case lg := <-logs:
			l.handle(ctx, lg)
		}
	}
}

// backfill replays every contract log between the persisted cursor and
// the current head before the live subscription starts.
func (l *Listener) backfill(ctx context.Context, client *ethclient.Client, contract common.Address) error {
	cursor, err := l.cursor.LoadCursor(ctx)
	if err != nil {
		return fmt.Errorf("l.cursor.LoadCursor -> %w", err)
	}
	if cursor < l.conf.StartBlock {
		cursor = l.conf.StartBlock
	}

	head, err := client.BlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("client.BlockNumber -> %w", err)
	}
	if head <= cursor {
		return nil
	}

	logs, err := client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(cursor + 1),
		ToBlock:   new(big.Int).SetUint64(head),
		Addresses: []common.Address{contract},
	})
	if err != nil {
		return fmt.Errorf("client.FilterLogs -> %w", err)
	}

	zap.L().Info("backfilling contract logs",
		zap.Uint64("from_block", cursor+1),
		zap.Uint64("to_block", head),
		zap.Int("count", len(logs)))

	for _, lg := range logs {
		l.handle(ctx, lg)
	}

	return l.cursor.SaveCursor(ctx, head)
}

func (l *Listener) handle(ctx context.Context, lg types.Log) {
	if lg.Removed {
		// Reorged out; the canonical log will be redelivered.
		return
	}

	event, err := DecodeLog(lg)
	if errors.Is(err, ErrUnknownEvent) {
		return
	}
	if err != nil {
		zap.L().Warn("failed to decode contract log",
			zap.String("tx_hash", lg.TxHash.Hex()),
			zap.Uint("log_index", lg.Index),
			zap.Error(err))
		return
	}

	if err = l.ingestor.Ingest(ctx, event); err != nil {
		zap.L().Error("failed to ingest contract event",
			zap.String("event", event.Name),
			zap.String("tx_hash", event.TxHash),
			zap.Uint("log_index", event.LogIndex),
			zap.Error(err))
	}

	if err = l.cursor.SaveCursor(ctx, lg.BlockNumber); err != nil {
		zap.L().Error("failed to persist block cursor",
			zap.Uint64("block", lg.BlockNumber),
			zap.Error(err))
	}
}
