package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huddleup-labs/huddleup-api/internal/domain"
)

// fakeEventRepo models the graph semantics in memory: status guards,
// capacity and single-sponsor checks behave like the guarded writes.
type fakeEventRepo struct {
	events       map[string]*domain.Event
	participants map[string]map[string]bool // eventID -> userID -> isActive
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:       map[string]*domain.Event{},
		participants: map[string]map[string]bool{},
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()
	f.events[event.ID] = &event
	f.participants[event.ID] = map[string]bool{}

	return event, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id string) (domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}

	return *e, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context, status domain.EventStatus) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.events {
		if status == "" || e.Status == status {
			out = append(out, *e)
		}
	}

	return out, nil
}

func (f *fakeEventRepo) FindOrganizedBy(_ context.Context, userID string) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.events {
		if e.OrganizerID == userID {
			out = append(out, *e)
		}
	}

	return out, nil
}

func (f *fakeEventRepo) FindSponsoredBy(_ context.Context, userID string) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range f.events {
		if e.SponsorID == userID {
			out = append(out, *e)
		}
	}

	return out, nil
}

func (f *fakeEventRepo) FindParticipatingBy(_ context.Context, userID string) ([]domain.Event, error) {
	var out []domain.Event
	for id, e := range f.events {
		if f.participants[id][userID] {
			out = append(out, *e)
		}
	}

	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, eventID, userID string, patch domain.EventPatch) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	if e.OrganizerID != userID {
		return domain.Event{}, ErrNotOrganizer
	}
	if e.Status != domain.EventDraft {
		return domain.Event{}, ErrEventNotDraft
	}

	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.FundingRequired != nil {
		e.FundingRequired = *patch.FundingRequired
	}
	if patch.AirdropAmount != nil {
		e.AirdropAmount = *patch.AirdropAmount
	}
	cap, err := MaxParticipants(e.FundingRequired, e.AirdropAmount)
	if err != nil {
		return domain.Event{}, err
	}
	e.MaxParticipants = cap
	e.UpdatedAt = time.Now()

	return *e, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, eventID, userID string) error {
	e, ok := f.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if e.OrganizerID != userID {
		return ErrNotOrganizer
	}
	if e.Status != domain.EventDraft {
		return ErrEventNotDraft
	}
	delete(f.events, eventID)

	return nil
}

func (f *fakeEventRepo) Fund(_ context.Context, eventID, sponsorID string, amount float64) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	if e.SponsorID != "" {
		return domain.Event{}, ErrAlreadySponsored
	}
	if e.Status != domain.EventDraft {
		return domain.Event{}, ErrEventNotDraft
	}
	if amount != e.FundingRequired {
		return domain.Event{}, ErrWrongFundingAmount
	}

	now := time.Now()
	e.Status = domain.EventFunded
	e.SponsorID = sponsorID
	e.SponsorAmount = amount
	e.CurrentFunding = amount
	e.FundedAt = &now

	return *e, nil
}

func (f *fakeEventRepo) Participate(_ context.Context, eventID, userID string) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	if e.Status != domain.EventFunded {
		return domain.Event{}, ErrEventNotFunded
	}
	if f.participants[eventID][userID] {
		return domain.Event{}, ErrAlreadyParticipating
	}
	if e.CurrentParticipants >= e.MaxParticipants {
		return domain.Event{}, ErrEventFull
	}

	f.participants[eventID][userID] = true
	e.CurrentParticipants++

	return *e, nil
}

func (f *fakeEventRepo) Leave(_ context.Context, eventID, userID string) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	if !f.participants[eventID][userID] {
		return domain.Event{}, ErrNotParticipating
	}

	f.participants[eventID][userID] = false
	e.CurrentParticipants--

	return *e, nil
}

func (f *fakeEventRepo) Complete(_ context.Context, eventID, userID string) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	if e.OrganizerID != userID {
		return domain.Event{}, ErrNotOrganizer
	}
	if e.Status != domain.EventFunded {
		return domain.Event{}, ErrEventNotFunded
	}

	now := time.Now()
	e.Status = domain.EventCompleted
	e.CompletedAt = &now

	return *e, nil
}

func (f *fakeEventRepo) Cancel(_ context.Context, eventID, userID string) (domain.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return domain.Event{}, ErrEventNotFound
	}
	if e.OrganizerID != userID {
		return domain.Event{}, ErrNotOrganizer
	}
	if e.Status != domain.EventDraft && e.Status != domain.EventFunded {
		return domain.Event{}, ErrEventNotDraft
	}

	e.Status = domain.EventCancelled

	return *e, nil
}

func (f *fakeEventRepo) MarkParticipantVerified(_ context.Context, eventID, _ string) error {
	if _, ok := f.events[eventID]; !ok {
		return ErrEventNotFound
	}

	return nil
}

func (f *fakeEventRepo) Participants(_ context.Context, eventID string) ([]domain.Participant, error) {
	var out []domain.Participant
	for userID, active := range f.participants[eventID] {
		if active {
			out = append(out, domain.Participant{UserID: userID})
		}
	}

	return out, nil
}

func (f *fakeEventRepo) SponsorOf(_ context.Context, eventID string) (domain.Sponsor, error) {
	e, ok := f.events[eventID]
	if !ok || e.SponsorID == "" {
		return domain.Sponsor{}, ErrUserNotFound
	}

	return domain.Sponsor{UserID: e.SponsorID, Amount: e.SponsorAmount}, nil
}

func TestMaxParticipants(t *testing.T) {
	tests := []struct {
		name            string
		fundingRequired float64
		airdropAmount   float64
		want            int64
		wantErr         error
	}{
		{name: "exact division", fundingRequired: 500, airdropAmount: 50, want: 10},
		{name: "rounds down", fundingRequired: 100, airdropAmount: 30, want: 3},
		{name: "one participant", fundingRequired: 10, airdropAmount: 10, want: 1},
		{name: "airdrop exceeds funding", fundingRequired: 10, airdropAmount: 20, wantErr: ErrInvalidFundingRatio},
		{name: "zero funding", fundingRequired: 0, airdropAmount: 10, wantErr: ErrInvalidFundingRatio},
		{name: "zero airdrop", fundingRequired: 100, airdropAmount: 0, wantErr: ErrInvalidFundingRatio},
		{name: "negative airdrop", fundingRequired: 100, airdropAmount: -5, wantErr: ErrInvalidFundingRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxParticipants(tt.fundingRequired, tt.airdropAmount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	created, err := svc.CreateEvent(context.Background(), domain.Event{
		Title:           "Community Meetup",
		OrganizerID:     "organizer-1",
		FundingRequired: 500,
		AirdropAmount:   50,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventDraft, created.Status)
	assert.Equal(t, int64(10), created.MaxParticipants)
	assert.NotEmpty(t, created.ID)
}

func TestCreateEvent_InvalidRatio(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	_, err := svc.CreateEvent(context.Background(), domain.Event{
		Title:           "Underfunded",
		OrganizerID:     "organizer-1",
		FundingRequired: 10,
		AirdropAmount:   100,
	})
	assert.ErrorIs(t, err, ErrInvalidFundingRatio)
}

func TestUpdateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, domain.Event{
		Title:           "Community Meetup",
		OrganizerID:     "organizer-1",
		FundingRequired: 500,
		AirdropAmount:   50,
	})
	require.NoError(t, err)

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := svc.UpdateEvent(ctx, created.ID, "organizer-1", domain.EventPatch{})
		assert.ErrorIs(t, err, ErrEmptyPatch)
	})

	t.Run("funding change recomputes the cap", func(t *testing.T) {
		airdrop := 100.0
		updated, err := svc.UpdateEvent(ctx, created.ID, "organizer-1", domain.EventPatch{AirdropAmount: &airdrop})
		require.NoError(t, err)
		assert.Equal(t, int64(5), updated.MaxParticipants)
	})

	t.Run("funding change below one participant is rejected", func(t *testing.T) {
		airdrop := 1000.0
		_, err := svc.UpdateEvent(ctx, created.ID, "organizer-1", domain.EventPatch{AirdropAmount: &airdrop})
		assert.ErrorIs(t, err, ErrInvalidFundingRatio)
	})

	t.Run("non-organizer is forbidden", func(t *testing.T) {
		title := "Hijacked"
		_, err := svc.UpdateEvent(ctx, created.ID, "someone-else", domain.EventPatch{Title: &title})
		assert.ErrorIs(t, err, ErrNotOrganizer)
	})
}

func TestEventLifecycle(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, domain.Event{
		Title:           "Hackathon",
		OrganizerID:     "organizer-1",
		FundingRequired: 500,
		AirdropAmount:   50,
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), created.MaxParticipants)

	// Joining before funding fails.
	_, err = svc.Participate(ctx, created.ID, "early-bird")
	assert.ErrorIs(t, err, ErrEventNotFunded)

	// Partial funding is rejected.
	_, err = svc.FundEvent(ctx, created.ID, "sponsor-1", 250)
	assert.ErrorIs(t, err, ErrWrongFundingAmount)

	funded, err := svc.FundEvent(ctx, created.ID, "sponsor-1", 500)
	require.NoError(t, err)
	assert.Equal(t, domain.EventFunded, funded.Status)
	assert.Equal(t, "sponsor-1", funded.SponsorID)
	assert.Equal(t, 500.0, funded.CurrentFunding)

	// A second sponsor is rejected.
	_, err = svc.FundEvent(ctx, created.ID, "sponsor-2", 500)
	assert.ErrorIs(t, err, ErrAlreadySponsored)

	// Ten distinct users fill the event.
	for i := 0; i < 10; i++ {
		_, err = svc.Participate(ctx, created.ID, uuid.NewString())
		require.NoError(t, err)
	}

	current, err := svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), current.CurrentParticipants)

	// The eleventh join fails.
	_, err = svc.Participate(ctx, created.ID, "too-late")
	assert.ErrorIs(t, err, ErrEventFull)

	// Duplicate join fails even with free capacity after a leave.
	_, err = svc.Participate(ctx, created.ID, "too-late")
	assert.ErrorIs(t, err, ErrEventFull)

	// One participant leaves and the counter drops.
	participants, err := svc.ListParticipants(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, participants, 10)

	left, err := svc.Leave(ctx, created.ID, participants[0].UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), left.CurrentParticipants)

	// Leaving twice fails.
	_, err = svc.Leave(ctx, created.ID, participants[0].UserID)
	assert.ErrorIs(t, err, ErrNotParticipating)

	// Only the organizer may complete.
	_, err = svc.CompleteEvent(ctx, created.ID, "sponsor-1")
	assert.ErrorIs(t, err, ErrNotOrganizer)

	completed, err := svc.CompleteEvent(ctx, created.ID, "organizer-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
}

func TestCancelEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, domain.Event{
		Title:           "Doomed",
		OrganizerID:     "organizer-1",
		FundingRequired: 100,
		AirdropAmount:   10,
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelEvent(ctx, created.ID, "organizer-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventCancelled, cancelled.Status)

	// A cancelled event cannot be funded.
	_, err = svc.FundEvent(ctx, created.ID, "sponsor-1", 100)
	assert.Error(t, err)
}
