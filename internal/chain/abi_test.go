package chain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLog(t *testing.T, name string, wallet common.Address, nonIndexed ...interface{}) types.Log {
	t.Helper()

	abiEvent, ok := contractABI.Events[name]
	require.True(t, ok, "unknown event %s", name)

	data, err := abiEvent.Inputs.NonIndexed().Pack(nonIndexed...)
	require.NoError(t, err)

	return types.Log{
		Address: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Topics: []common.Hash{
			abiEvent.ID,
			common.BytesToHash(common.LeftPadBytes(wallet.Bytes(), 32)),
		},
		Data:        data,
		BlockNumber: 123,
		TxHash:      common.HexToHash("0xdeadbeef"),
		Index:       7,
	}
}

func usdc(amount int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(amount), big.NewInt(1_000_000))
}

func TestDecodeLog_EventCreated(t *testing.T) {
	wallet := common.HexToAddress("0xAbCdEf0123456789aBcDeF0123456789abCDef01")
	lg := buildLog(t, EventCreated, wallet, "event-1", usdc(500), usdc(50))

	event, err := DecodeLog(lg)
	require.NoError(t, err)

	assert.Equal(t, EventCreated, event.Name)
	assert.Equal(t, "event-1", event.EventID)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", event.Wallet)
	assert.Equal(t, 500.0, event.FundingRequired)
	assert.Equal(t, 50.0, event.AirdropAmount)
	assert.Equal(t, uint64(123), event.BlockNumber)
	assert.Equal(t, uint(7), event.LogIndex)
}

func TestDecodeLog_EventFunded(t *testing.T) {
	wallet := common.HexToAddress("0x2222222222222222222222222222222222222222")
	lg := buildLog(t, EventFunded, wallet, "event-1", usdc(500))

	event, err := DecodeLog(lg)
	require.NoError(t, err)

	assert.Equal(t, EventFunded, event.Name)
	assert.Equal(t, 500.0, event.Amount)
}

func TestDecodeLog_FractionalAmount(t *testing.T) {
	wallet := common.HexToAddress("0x2222222222222222222222222222222222222222")
	lg := buildLog(t, EventFunded, wallet, "event-1", big.NewInt(1_500_000))

	event, err := DecodeLog(lg)
	require.NoError(t, err)
	assert.Equal(t, 1.5, event.Amount)
}

func TestDecodeLog_AddressOnlyEvents(t *testing.T) {
	wallet := common.HexToAddress("0x3333333333333333333333333333333333333333")

	for _, name := range []string{ParticipantJoined, ParticipantLeft, ParticipantVerified} {
		lg := buildLog(t, name, wallet, "event-1")

		event, err := DecodeLog(lg)
		require.NoError(t, err, name)
		assert.Equal(t, name, event.Name)
		assert.Equal(t, "event-1", event.EventID)
		assert.Zero(t, event.Amount)
	}
}

func TestDecodeLog_UnknownTopic(t *testing.T) {
	lg := types.Log{
		Topics: []common.Hash{
			common.HexToHash("0x0101010101010101010101010101010101010101010101010101010101010101"),
			common.HexToHash("0x0202020202020202020202020202020202020202020202020202020202020202"),
		},
	}

	_, err := DecodeLog(lg)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDecodeLog_TooFewTopics(t *testing.T) {
	_, err := DecodeLog(types.Log{})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}
