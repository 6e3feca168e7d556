package chain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Contract event names mirrored into the graph.
const (
	EventCreated        = "EventCreated"
	EventFunded         = "EventFunded"
	ParticipantJoined   = "ParticipantJoined"
	ParticipantLeft     = "ParticipantLeft"
	ParticipantVerified = "ParticipantVerified"
	FundsWithdrawn      = "FundsWithdrawn"
)

// amountScale is the contract's fixed-point denominator: the stablecoin
// uses 6 decimals on chain.
const amountScale = 1e6

var ErrUnknownEvent = errors.New("unknown contract event")

const contractABIJSON = `[
  {"type":"event","name":"EventCreated","anonymous":false,"inputs":[
    {"name":"organizer","type":"address","indexed":true},
    {"name":"eventId","type":"string","indexed":false},
    {"name":"fundingRequired","type":"uint256","indexed":false},
    {"name":"airdropAmount","type":"uint256","indexed":false}]},
  {"type":"event","name":"EventFunded","anonymous":false,"inputs":[
    {"name":"sponsor","type":"address","indexed":true},
    {"name":"eventId","type":"string","indexed":false},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"ParticipantJoined","anonymous":false,"inputs":[
    {"name":"participant","type":"address","indexed":true},
    {"name":"eventId","type":"string","indexed":false}]},
  {"type":"event","name":"ParticipantLeft","anonymous":false,"inputs":[
    {"name":"participant","type":"address","indexed":true},
    {"name":"eventId","type":"string","indexed":false}]},
  {"type":"event","name":"ParticipantVerified","anonymous":false,"inputs":[
    {"name":"participant","type":"address","indexed":true},
    {"name":"eventId","type":"string","indexed":false}]},
  {"type":"event","name":"FundsWithdrawn","anonymous":false,"inputs":[
    {"name":"organizer","type":"address","indexed":true},
    {"name":"eventId","type":"string","indexed":false},
    {"name":"amount","type":"uint256","indexed":false}]}
]`

var contractABI = mustParseABI()

func mustParseABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(contractABIJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid contract ABI: %v", err))
	}

	return parsed
}

// Event is a decoded contract log, amounts already denormalized from the
// 6-decimal fixed-point representation.
type Event struct {
	Name            string
	EventID         string
	Wallet          string
	Amount          float64
	FundingRequired float64
	AirdropAmount   float64
	TxHash          string
	LogIndex        uint
	BlockNumber     uint64
}

// DecodeLog maps a raw log onto one of the six contract events.
// Logs from other contracts or unknown topics yield ErrUnknownEvent.
func DecodeLog(lg types.Log) (Event, error) {
	if len(lg.Topics) < 2 {
		return Event{}, ErrUnknownEvent
	}

	abiEvent, err := contractABI.EventByID(lg.Topics[0])
	if err != nil {
		return Event{}, ErrUnknownEvent
	}

	values, err := contractABI.Unpack(abiEvent.Name, lg.Data)
	if err != nil {
		return Event{}, fmt.Errorf("contractABI.Unpack(%s) -> %w", abiEvent.Name, err)
	}

	event := Event{
		Name:        abiEvent.Name,
		Wallet:      strings.ToLower(common.BytesToAddress(lg.Topics[1].Bytes()).Hex()),
		TxHash:      lg.TxHash.Hex(),
		LogIndex:    lg.Index,
		BlockNumber: lg.BlockNumber,
	}

	eventID, ok := values[0].(string)
	if !ok {
		return Event{}, fmt.Errorf("event %s: eventId is not a string", abiEvent.Name)
	}
	event.EventID = eventID

	switch abiEvent.Name {
	case EventCreated:
		event.FundingRequired = scaleAmount(values[1])
		event.AirdropAmount = scaleAmount(values[2])
	case EventFunded, FundsWithdrawn:
		event.Amount = scaleAmount(values[1])
	case ParticipantJoined, ParticipantLeft, ParticipantVerified:
		// address-only events carry no amounts
	default:
		return Event{}, ErrUnknownEvent
	}

	return event, nil
}

func scaleAmount(value any) float64 {
	raw, ok := value.(*big.Int)
	if !ok {
		return 0
	}

	scaled, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), big.NewFloat(amountScale)).Float64()

	return scaled
}
