package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddleup-labs/huddleup-api/internal/chain"
	"github.com/huddleup-labs/huddleup-api/internal/domain"
)

type ledgerEntry struct {
	name      string
	processed bool
	errMsg    string
}

type fakeLedger struct {
	entries map[string]*ledgerEntry
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: map[string]*ledgerEntry{}}
}

func ledgerKey(txHash string, logIndex uint) string {
	return fmt.Sprintf("%s#%d", txHash, logIndex)
}

func (f *fakeLedger) MarkSeen(_ context.Context, txHash string, logIndex uint, name string, _ uint64) (bool, error) {
	key := ledgerKey(txHash, logIndex)
	if _, ok := f.entries[key]; ok {
		return false, nil
	}

	f.entries[key] = &ledgerEntry{name: name}

	return true, nil
}

func (f *fakeLedger) MarkProcessed(_ context.Context, txHash string, logIndex uint) error {
	f.entries[ledgerKey(txHash, logIndex)].processed = true

	return nil
}

func (f *fakeLedger) RecordError(_ context.Context, txHash string, logIndex uint, message string) error {
	f.entries[ledgerKey(txHash, logIndex)].errMsg = message

	return nil
}

type fakeMirrorUsers struct {
	byWallet map[string]domain.User
}

func newFakeMirrorUsers() *fakeMirrorUsers {
	return &fakeMirrorUsers{byWallet: map[string]domain.User{}}
}

func (f *fakeMirrorUsers) UpsertByWallet(_ context.Context, wallet string, method domain.ConnectionMethod, _ domain.UserProfile) (domain.User, error) {
	if user, ok := f.byWallet[wallet]; ok {
		return user, nil
	}

	user := domain.User{
		ID:               uuid.NewString(),
		WalletAddress:    wallet,
		ConnectionMethod: method,
		IsActive:         true,
	}
	f.byWallet[wallet] = user

	return user, nil
}

func newMirrorFixture(t *testing.T) (*MirrorService, *fakeLedger, *fakeEventRepo, domain.Event) {
	t.Helper()

	events := newFakeEventRepo()
	created, err := events.Create(context.Background(), domain.Event{
		Title:           "On-chain Meetup",
		Status:          domain.EventDraft,
		OrganizerID:     "organizer-1",
		FundingRequired: 500,
		AirdropAmount:   50,
		MaxParticipants: 10,
	})
	require.NoError(t, err)

	ledger := newFakeLedger()
	svc := NewMirrorService(ledger, events, newFakeMirrorUsers())

	return svc, ledger, events, created
}

func TestMirrorIngest_FundedThenJoined(t *testing.T) {
	svc, ledger, events, created := newMirrorFixture(t)
	ctx := context.Background()

	err := svc.Ingest(ctx, chain.Event{
		Name:        chain.EventFunded,
		EventID:     created.ID,
		Wallet:      "0xsponsor",
		Amount:      500,
		TxHash:      "0xaaa",
		LogIndex:    0,
		BlockNumber: 100,
	})
	require.NoError(t, err)

	funded, err := events.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventFunded, funded.Status)
	assert.Equal(t, 500.0, funded.CurrentFunding)

	err = svc.Ingest(ctx, chain.Event{
		Name:        chain.ParticipantJoined,
		EventID:     created.ID,
		Wallet:      "0xparticipant",
		TxHash:      "0xbbb",
		LogIndex:    0,
		BlockNumber: 101,
	})
	require.NoError(t, err)

	joined, err := events.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), joined.CurrentParticipants)

	for _, entry := range ledger.entries {
		assert.True(t, entry.processed)
		assert.Empty(t, entry.errMsg)
	}
}

func TestMirrorIngest_Idempotent(t *testing.T) {
	svc, _, events, created := newMirrorFixture(t)
	ctx := context.Background()

	event := chain.Event{
		Name:        chain.EventFunded,
		EventID:     created.ID,
		Wallet:      "0xsponsor",
		Amount:      500,
		TxHash:      "0xaaa",
		LogIndex:    0,
		BlockNumber: 100,
	}

	require.NoError(t, svc.Ingest(ctx, event))

	// Redelivery through any transport is a no-op, not a conflict.
	require.NoError(t, svc.Ingest(ctx, event))

	funded, err := events.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventFunded, funded.Status)
	assert.NotEmpty(t, funded.SponsorID)
	assert.Equal(t, 500.0, funded.CurrentFunding)
}

func TestMirrorIngest_LeaveAndWithdraw(t *testing.T) {
	svc, _, events, created := newMirrorFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, chain.Event{
		Name: chain.EventFunded, EventID: created.ID, Wallet: "0xsponsor", Amount: 500,
		TxHash: "0xaaa", LogIndex: 0, BlockNumber: 100,
	}))
	require.NoError(t, svc.Ingest(ctx, chain.Event{
		Name: chain.ParticipantJoined, EventID: created.ID, Wallet: "0xp1",
		TxHash: "0xbbb", LogIndex: 0, BlockNumber: 101,
	}))
	require.NoError(t, svc.Ingest(ctx, chain.Event{
		Name: chain.ParticipantLeft, EventID: created.ID, Wallet: "0xp1",
		TxHash: "0xccc", LogIndex: 0, BlockNumber: 102,
	}))

	left, err := events.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), left.CurrentParticipants)

	require.NoError(t, svc.Ingest(ctx, chain.Event{
		Name: chain.FundsWithdrawn, EventID: created.ID, Wallet: "0xorganizer", Amount: 450,
		TxHash: "0xddd", LogIndex: 0, BlockNumber: 103,
	}))

	done, err := events.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventCompleted, done.Status)
}

func TestMirrorIngest_FailureIsRecorded(t *testing.T) {
	svc, ledger, _, created := newMirrorFixture(t)
	ctx := context.Background()

	// Joining a draft event fails and the ledger records it.
	err := svc.Ingest(ctx, chain.Event{
		Name:        chain.ParticipantJoined,
		EventID:     created.ID,
		Wallet:      "0xp1",
		TxHash:      "0xeee",
		LogIndex:    3,
		BlockNumber: 104,
	})
	require.Error(t, err)

	entry := ledger.entries[ledgerKey("0xeee", 3)]
	require.NotNil(t, entry)
	assert.False(t, entry.processed)
	assert.NotEmpty(t, entry.errMsg)
}

func TestMirrorIngest_UnknownGraphEventIsTolerated(t *testing.T) {
	svc, ledger, _, _ := newMirrorFixture(t)

	// EventCreated for an unknown graph node only logs a warning.
	err := svc.Ingest(context.Background(), chain.Event{
		Name:        chain.EventCreated,
		EventID:     "no-such-event",
		Wallet:      "0xorganizer",
		TxHash:      "0xfff",
		LogIndex:    0,
		BlockNumber: 105,
	})
	require.NoError(t, err)

	entry := ledger.entries[ledgerKey("0xfff", 0)]
	require.NotNil(t, entry)
	assert.True(t, entry.processed)
}
