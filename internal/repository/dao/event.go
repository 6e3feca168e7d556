package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrNotOrganizer         = errors.New("user is not the organizer of this event")
	ErrEventNotDraft        = errors.New("event is not in draft status")
	ErrEventNotFunded       = errors.New("event is not funded")
	ErrEventFull            = errors.New("event is full")
	ErrAlreadyParticipating = errors.New("user is already participating in this event")
	ErrNotParticipating     = errors.New("user is not participating in this event")
	ErrAlreadySponsored     = errors.New("event already has a sponsor")
	ErrWrongFundingAmount   = errors.New("funding amount must equal the required amount")
	ErrInvalidFundingRatio  = errors.New("funding required must cover at least one airdrop")
)

type Event struct {
	ID                  string
	Title               string
	Description         string
	EventDate           time.Time
	Location            string
	EventType           string
	Status              string
	OrganizerID         string
	FundingRequired     float64
	AirdropAmount       float64
	MaxParticipants     int64
	CurrentParticipants int64
	CurrentFunding      float64
	SponsorID           string
	SponsorAmount       float64
	SponsorFundedAt     *time.Time
	BannerImage         string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	FundedAt            *time.Time
	CompletedAt         *time.Time
}

// ParticipantRow joins User fields with PARTICIPANT_OF properties.
type ParticipantRow struct {
	UserID        string
	WalletAddress string
	Name          string
	ProfileImage  string
	JoinedAt      time.Time
	LeftAt        *time.Time
	VerifiedAt    *time.Time
}

// SponsorRow joins User fields with SPONSOR_OF properties.
type SponsorRow struct {
	UserID        string
	WalletAddress string
	Name          string
	Amount        float64
	FundedAt      time.Time
}

type EventDAO struct {
	driver neo4j.DriverWithContext
}

func NewEventDAO(driver neo4j.DriverWithContext) *EventDAO {
	return &EventDAO{
		driver: driver,
	}
}

const createEventQuery = `
MATCH (o:User {id: $organizerID})
CREATE (e:Event {
    id: $id,
    title: $title,
    description: $description,
    eventDate: $eventDate,
    location: $location,
    eventType: $eventType,
    status: 'draft',
    organizerId: $organizerID,
    fundingRequired: $fundingRequired,
    airdropAmount: $airdropAmount,
    maxParticipants: $maxParticipants,
    currentParticipants: 0,
    currentFunding: 0.0,
    bannerImage: $bannerImage,
    createdAt: $now,
    updatedAt: $now
})
CREATE (o)-[:ORGANIZER_OF {createdAt: $now}]->(e)
RETURN e`

// Insert creates the Event node and its ORGANIZER_OF edge in a single write.
func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, createEventQuery, map[string]any{
			"organizerID":     event.OrganizerID,
			"id":              event.ID,
			"title":           event.Title,
			"description":     event.Description,
			"eventDate":       event.EventDate,
			"location":        event.Location,
			"eventType":       event.EventType,
			"fundingRequired": event.FundingRequired,
			"airdropAmount":   event.AirdropAmount,
			"maxParticipants": event.MaxParticipants,
			"bannerImage":     event.BannerImage,
			"now":             event.CreatedAt,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, ErrUserNotFound
		}

		return record, nil
	})
	if err != nil {
		return Event{}, err
	}

	return eventFromRecord(result.(*neo4j.Record))
}

func (d *EventDAO) FindByID(ctx context.Context, id string) (Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (e:Event {id: $id}) RETURN e`, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, ErrEventNotFound
		}

		return record, nil
	})
	if err != nil {
		return Event{}, err
	}

	return eventFromRecord(result.(*neo4j.Record))
}

const findAllQuery = `
MATCH (e:Event)
WHERE $status IS NULL OR e.status = $status
RETURN e
ORDER BY e.createdAt DESC`

// FindAll lists events newest first, optionally filtered by status.
func (d *EventDAO) FindAll(ctx context.Context, status string) ([]Event, error) {
	return d.collect(ctx, findAllQuery, map[string]any{"status": nullable(status)})
}

func (d *EventDAO) FindOrganizedBy(ctx context.Context, userID string) ([]Event, error) {
	query := `
MATCH (:User {id: $userID})-[:ORGANIZER_OF]->(e:Event)
RETURN e
ORDER BY e.createdAt DESC`

	return d.collect(ctx, query, map[string]any{"userID": userID})
}

func (d *EventDAO) FindSponsoredBy(ctx context.Context, userID string) ([]Event, error) {
	query := `
MATCH (:User {id: $userID})-[:SPONSOR_OF]->(e:Event)
RETURN e
ORDER BY e.createdAt DESC`

	return d.collect(ctx, query, map[string]any{"userID": userID})
}

func (d *EventDAO) FindParticipatingBy(ctx context.Context, userID string) ([]Event, error) {
	query := `
MATCH (:User {id: $userID})-[p:PARTICIPANT_OF]->(e:Event)
WHERE p.isActive
RETURN e
ORDER BY e.createdAt DESC`

	return d.collect(ctx, query, map[string]any{"userID": userID})
}

const updateEventQuery = `
MATCH (o:User {id: $userID})-[:ORGANIZER_OF]->(e:Event {id: $eventID})
WHERE e.status = 'draft'
SET e += $patch, e.updatedAt = $now
SET e.maxParticipants = toInteger(floor(e.fundingRequired / e.airdropAmount))
WITH e
WHERE e.maxParticipants >= 1
RETURN e`

// Update applies the patch to a draft event owned by userID and recomputes
// maxParticipants from the resulting funding fields, all in one transaction.
func (d *EventDAO) Update(ctx context.Context, eventID, userID string, patch map[string]any, now time.Time) (Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, updateEventQuery, map[string]any{
			"eventID": eventID,
			"userID":  userID,
			"patch":   patch,
			"now":     now,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			// The guard matched nothing. Diagnose inside the same
			// transaction so the answer reflects the state the write saw.
			if guardErr := d.diagnoseOrganizerGuard(ctx, tx, eventID, userID, "draft", ErrEventNotDraft); guardErr != nil {
				return nil, guardErr
			}

			return nil, ErrInvalidFundingRatio
		}

		return record, nil
	})
	if err != nil {
		return Event{}, err
	}

	return eventFromRecord(result.(*neo4j.Record))
}

const deleteEventQuery = `
MATCH (:User {id: $userID})-[:ORGANIZER_OF]->(e:Event {id: $eventID})
WHERE e.status = 'draft'
DETACH DELETE e
RETURN 1 AS ok`

// Delete detach-deletes a draft event and every incident relationship.
func (d *EventDAO) Delete(ctx context.Context, eventID, userID string) error {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, deleteEventQuery, map[string]any{
			"eventID": eventID,
			"userID":  userID,
		})
		if err != nil {
			return nil, err
		}

		if _, err = res.Single(ctx); err != nil {
			if guardErr := d.diagnoseOrganizerGuard(ctx, tx, eventID, userID, "draft", ErrEventNotDraft); guardErr != nil {
				return nil, guardErr
			}

			return nil, ErrEventNotDraft
		}

		return nil, nil
	})

	return err
}

const fundEventQuery = `
MATCH (e:Event {id: $eventID}), (s:User {id: $sponsorID})
WHERE e.status = 'draft'
  AND e.sponsorId IS NULL
  AND abs(e.fundingRequired - $amount) < 0.000001
CREATE (s)-[:SPONSOR_OF {amount: $amount, fundedAt: $now}]->(e)
SET e.status = 'funded',
    e.sponsorId = $sponsorID,
    e.sponsorAmount = $amount,
    e.sponsorFundedAt = $now,
    e.fundedAt = $now,
    e.currentFunding = $amount,
    e.updatedAt = $now
RETURN e`

// Fund transitions draft -> funded exactly once: the sponsor edge, the
// status flip and the funding stamps are a single guarded write.
func (d *EventDAO) Fund(ctx context.Context, eventID, sponsorID string, amount float64, now time.Time) (Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, fundEventQuery, map[string]any{
			"eventID":   eventID,
			"sponsorID": sponsorID,
			"amount":    amount,
			"now":       now,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, d.diagnoseFund(ctx, tx, eventID, sponsorID, amount)
		}

		return record, nil
	})
	if err != nil {
		return Event{}, err
	}

	return eventFromRecord(result.(*neo4j.Record))
}

const participateQuery = `
MATCH (e:Event {id: $eventID}), (u:User {id: $userID})
WHERE e.status = 'funded'
  AND e.currentParticipants < e.maxParticipants
  AND NOT EXISTS {
      MATCH (u)-[p:PARTICIPANT_OF]->(e) WHERE p.isActive
  }
CREATE (u)-[:PARTICIPANT_OF {isActive: true, joinedAt: $now}]->(e)
SET e.currentParticipants = e.currentParticipants + 1,
    e.updatedAt = $now
RETURN e`

// Participate creates the active PARTICIPANT_OF edge and increments the
// counter in one write; the capacity and duplicate checks are part of the
// query so concurrent joins at the boundary cannot both succeed.
func (d *EventDAO) Participate(ctx context.Context, eventID, userID string, now time.Time) (Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, participateQuery, map[string]any{
			"eventID": eventID,
			"userID":  userID,
			"now":     now,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, d.diagnoseParticipate(ctx, tx, eventID, userID)
		}

		return record, nil
	})
	if err != nil {
		return Event{}, err
	}

	return eventFromRecord(result.(*neo4j.Record))
}

const leaveEventQuery = `
MATCH (u:User {id: $userID})-[p:PARTICIPANT_OF]->(e:Event {id: $eventID})
WHERE p.isActive
SET p.isActive = false,
    p.leftAt = $now,
    e.currentParticipants = e.currentParticipants - 1,
    e.updatedAt = $now
RETURN e`

func (d *EventDAO) Leave(ctx context.Context, eventID, userID string, now time.Time) (Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, leaveEventQuery, map[string]any{
			"eventID": eventID,
			"userID":  userID,
			"now":     now,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			if exists, existsErr := d.eventExists(ctx, tx, eventID); existsErr != nil {
				return nil, existsErr
			} else if !exists {
				return nil, ErrEventNotFound
			}

			return nil, ErrNotParticipating
		}

		return record, nil
	})
	if err != nil {
		return Event{}, err
	}

	return eventFromRecord(result.(*neo4j.Record))
}

const completeEventQuery = `
MATCH (:User {id: $userID})-[:ORGANIZER_OF]->(e:Event {id: $eventID})
WHERE e.status = 'funded'
SET e.status = 'completed',
    e.completedAt = $now,
    e.updatedAt = $now
RETURN e`

func (d *EventDAO) Complete(ctx context.Context, eventID, userID string, now time.Time) (Event, error) {
	return d.transition(ctx, completeEventQuery, eventID, userID, now, "funded", ErrEventNotFunded)
}

const cancelEventQuery = `
MATCH (:User {id: $userID})-[:ORGANIZER_OF]->(e:Event {id: $eventID})
WHERE e.status IN ['draft', 'funded']
SET e.status = 'cancelled',
    e.updatedAt = $now
RETURN e`

func (d *EventDAO) Cancel(ctx context.Context, eventID, userID string, now time.Time) (Event, error) {
	return d.transition(ctx, cancelEventQuery, eventID, userID, now, "draft", ErrEventNotDraft)
}

func (d *EventDAO) transition(ctx context.Context, query, eventID, userID string, now time.Time, wantStatus string, statusErr error) (Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"eventID": eventID,
			"userID":  userID,
			"now":     now,
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			if guardErr := d.diagnoseOrganizerGuard(ctx, tx, eventID, userID, wantStatus, statusErr); guardErr != nil {
				return nil, guardErr
			}

			return nil, statusErr
		}

		return record, nil
	})
	if err != nil {
		return Event{}, err
	}

	return eventFromRecord(result.(*neo4j.Record))
}

const markVerifiedQuery = `
MATCH (u:User {walletAddress: $wallet})-[p:PARTICIPANT_OF]->(e:Event {id: $eventID})
WHERE p.isActive
SET p.verifiedAt = $now
RETURN e`

// MarkParticipantVerified stamps the active participation edge when a QR
// proof or an on-chain ParticipantVerified log is confirmed.
func (d *EventDAO) MarkParticipantVerified(ctx context.Context, eventID, wallet string, now time.Time) error {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, markVerifiedQuery, map[string]any{
			"wallet":  wallet,
			"eventID": eventID,
			"now":     now,
		})
		if err != nil {
			return nil, err
		}

		if _, err = res.Single(ctx); err != nil {
			return nil, ErrNotParticipating
		}

		return nil, nil
	})

	return err
}

const participantsQuery = `
MATCH (u:User)-[p:PARTICIPANT_OF]->(:Event {id: $eventID})
WHERE p.isActive
RETURN u, p
ORDER BY p.joinedAt`

func (d *EventDAO) Participants(ctx context.Context, eventID string) ([]ParticipantRow, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, participantsQuery, map[string]any{"eventID": eventID})
		if err != nil {
			return nil, err
		}

		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*neo4j.Record)
	rows := make([]ParticipantRow, 0, len(records))
	for _, record := range records {
		userNode, ok := nodeFromRecord(record, "u")
		if !ok {
			continue
		}

		relValue, _ := record.Get("p")
		rel, ok := relValue.(neo4j.Relationship)
		if !ok {
			continue
		}

		rows = append(rows, ParticipantRow{
			UserID:        propString(userNode.Props, "id"),
			WalletAddress: propString(userNode.Props, "walletAddress"),
			Name:          propString(userNode.Props, "name"),
			ProfileImage:  propString(userNode.Props, "profileImage"),
			JoinedAt:      propTime(rel.Props, "joinedAt"),
			LeftAt:        propTimePtr(rel.Props, "leftAt"),
			VerifiedAt:    propTimePtr(rel.Props, "verifiedAt"),
		})
	}

	return rows, nil
}

const sponsorQuery = `
MATCH (u:User)-[s:SPONSOR_OF]->(:Event {id: $eventID})
RETURN u, s`

func (d *EventDAO) SponsorOf(ctx context.Context, eventID string) (SponsorRow, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, sponsorQuery, map[string]any{"eventID": eventID})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, ErrUserNotFound
		}

		return record, nil
	})
	if err != nil {
		return SponsorRow{}, err
	}

	record := result.(*neo4j.Record)
	userNode, ok := nodeFromRecord(record, "u")
	if !ok {
		return SponsorRow{}, ErrUserNotFound
	}

	relValue, _ := record.Get("s")
	rel, ok := relValue.(neo4j.Relationship)
	if !ok {
		return SponsorRow{}, ErrUserNotFound
	}

	return SponsorRow{
		UserID:        propString(userNode.Props, "id"),
		WalletAddress: propString(userNode.Props, "walletAddress"),
		Name:          propString(userNode.Props, "name"),
		Amount:        propFloat(rel.Props, "amount"),
		FundedAt:      propTime(rel.Props, "fundedAt"),
	}, nil
}

func (d *EventDAO) collect(ctx context.Context, query string, params map[string]any) ([]Event, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*neo4j.Record)
	events := make([]Event, 0, len(records))
	for _, record := range records {
		event, err := eventFromRecord(record)
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, nil
}

// diagnoseOrganizerGuard explains why an organizer-guarded write matched
// nothing: missing event, wrong user, or wrong status. A nil return means
// the guard itself was satisfied and the caller must classify further.
func (d *EventDAO) diagnoseOrganizerGuard(ctx context.Context, tx neo4j.ManagedTransaction, eventID, userID, wantStatus string, statusErr error) error {
	query := `
MATCH (e:Event {id: $eventID})
OPTIONAL MATCH (:User {id: $userID})-[r:ORGANIZER_OF]->(e)
RETURN e.status AS status, r IS NOT NULL AS isOrganizer`

	res, err := tx.Run(ctx, query, map[string]any{"eventID": eventID, "userID": userID})
	if err != nil {
		return err
	}

	record, err := res.Single(ctx)
	if err != nil {
		return ErrEventNotFound
	}

	isOrganizer, _ := record.Get("isOrganizer")
	if b, ok := isOrganizer.(bool); !ok || !b {
		return ErrNotOrganizer
	}

	status, _ := record.Get("status")
	if s, ok := status.(string); ok && s != wantStatus {
		return statusErr
	}

	return nil
}

func (d *EventDAO) diagnoseFund(ctx context.Context, tx neo4j.ManagedTransaction, eventID, sponsorID string, amount float64) error {
	query := `
MATCH (e:Event {id: $eventID})
RETURN e.status AS status, e.sponsorId AS sponsorId, e.fundingRequired AS required`

	res, err := tx.Run(ctx, query, map[string]any{"eventID": eventID})
	if err != nil {
		return err
	}

	record, err := res.Single(ctx)
	if err != nil {
		return ErrEventNotFound
	}

	if sponsorID != "" {
		if exists, err := d.userExists(ctx, tx, sponsorID); err != nil {
			return err
		} else if !exists {
			return ErrUserNotFound
		}
	}

	if sponsor, _ := record.Get("sponsorId"); sponsor != nil {
		return ErrAlreadySponsored
	}

	if status, _ := record.Get("status"); status != string("draft") {
		return ErrEventNotDraft
	}

	if required, ok := record.Get("required"); ok {
		if f, ok := required.(float64); ok && f != amount {
			return ErrWrongFundingAmount
		}
	}

	return ErrWrongFundingAmount
}

func (d *EventDAO) diagnoseParticipate(ctx context.Context, tx neo4j.ManagedTransaction, eventID, userID string) error {
	query := `
MATCH (e:Event {id: $eventID})
OPTIONAL MATCH (u:User {id: $userID})
OPTIONAL MATCH (u)-[p:PARTICIPANT_OF]->(e) WHERE p.isActive
RETURN e.status AS status,
       e.currentParticipants AS current,
       e.maxParticipants AS max,
       u IS NOT NULL AS userExists,
       p IS NOT NULL AS alreadyActive`

	res, err := tx.Run(ctx, query, map[string]any{"eventID": eventID, "userID": userID})
	if err != nil {
		return err
	}

	record, err := res.Single(ctx)
	if err != nil {
		return ErrEventNotFound
	}

	if userExists, _ := record.Get("userExists"); userExists != true {
		return ErrUserNotFound
	}

	if status, _ := record.Get("status"); status != "funded" {
		return ErrEventNotFunded
	}

	if alreadyActive, _ := record.Get("alreadyActive"); alreadyActive == true {
		return ErrAlreadyParticipating
	}

	current, _ := record.Get("current")
	max, _ := record.Get("max")
	if c, ok := current.(int64); ok {
		if m, ok := max.(int64); ok && c >= m {
			return ErrEventFull
		}
	}

	return fmt.Errorf("participate precondition failed for event %v", eventID)
}

func (d *EventDAO) eventExists(ctx context.Context, tx neo4j.ManagedTransaction, eventID string) (bool, error) {
	res, err := tx.Run(ctx, `MATCH (e:Event {id: $id}) RETURN count(e) AS n`, map[string]any{"id": eventID})
	if err != nil {
		return false, err
	}

	record, err := res.Single(ctx)
	if err != nil {
		return false, err
	}

	n, _ := record.Get("n")

	return n == int64(1), nil
}

func (d *EventDAO) userExists(ctx context.Context, tx neo4j.ManagedTransaction, userID string) (bool, error) {
	res, err := tx.Run(ctx, `MATCH (u:User {id: $id}) RETURN count(u) AS n`, map[string]any{"id": userID})
	if err != nil {
		return false, err
	}

	record, err := res.Single(ctx)
	if err != nil {
		return false, err
	}

	n, _ := record.Get("n")

	return n == int64(1), nil
}

func eventFromRecord(record *neo4j.Record) (Event, error) {
	node, ok := nodeFromRecord(record, "e")
	if !ok {
		return Event{}, ErrEventNotFound
	}

	props := node.Props

	return Event{
		ID:                  propString(props, "id"),
		Title:               propString(props, "title"),
		Description:         propString(props, "description"),
		EventDate:           propTime(props, "eventDate"),
		Location:            propString(props, "location"),
		EventType:           propString(props, "eventType"),
		Status:              propString(props, "status"),
		OrganizerID:         propString(props, "organizerId"),
		FundingRequired:     propFloat(props, "fundingRequired"),
		AirdropAmount:       propFloat(props, "airdropAmount"),
		MaxParticipants:     propInt(props, "maxParticipants"),
		CurrentParticipants: propInt(props, "currentParticipants"),
		CurrentFunding:      propFloat(props, "currentFunding"),
		SponsorID:           propString(props, "sponsorId"),
		SponsorAmount:       propFloat(props, "sponsorAmount"),
		SponsorFundedAt:     propTimePtr(props, "sponsorFundedAt"),
		BannerImage:         propString(props, "bannerImage"),
		CreatedAt:           propTime(props, "createdAt"),
		UpdatedAt:           propTime(props, "updatedAt"),
		FundedAt:            propTimePtr(props, "fundedAt"),
		CompletedAt:         propTimePtr(props, "completedAt"),
	}, nil
}
