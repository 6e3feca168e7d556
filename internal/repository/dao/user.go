package dao

import (
	"context"
	"errors"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type User struct {
	ID               string
	WalletAddress    string
	ConnectionMethod string
	Name             string
	Email            string
	ProfileImage     string
	IsActive         bool
	CreatedAt        time.Time
	LastLoginAt      time.Time
}

type UserDAO struct {
	driver neo4j.DriverWithContext
}

func NewUserDAO(driver neo4j.DriverWithContext) *UserDAO {
	return &UserDAO{
		driver: driver,
	}
}

const upsertUserQuery = `
MERGE (u:User {walletAddress: $walletAddress})
ON CREATE SET
    u.id = $id,
    u.createdAt = $now,
    u.isActive = true
SET u.lastLoginAt = $now,
    u.connectionMethod = $connectionMethod,
    u.name = coalesce($name, u.name),
    u.email = coalesce($email, u.email),
    u.profileImage = coalesce($profileImage, u.profileImage)
RETURN u`

// Upsert creates the user on first login and refreshes lastLoginAt and
// profile fields on every subsequent one. The wallet address must
// already be lower-cased by the caller.
func (d *UserDAO) Upsert(ctx context.Context, user User) (User, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, upsertUserQuery, map[string]any{
			"walletAddress":    user.WalletAddress,
			"id":               user.ID,
			"now":              user.LastLoginAt,
			"connectionMethod": user.ConnectionMethod,
			"name":             nullable(user.Name),
			"email":            nullable(user.Email),
			"profileImage":     nullable(user.ProfileImage),
		})
		if err != nil {
			return nil, err
		}

		return res.Single(ctx)
	})
	if err != nil {
		return User{}, err
	}

	return userFromRecord(result.(*neo4j.Record))
}

func (d *UserDAO) FindByID(ctx context.Context, id string) (User, error) {
	return d.findOne(ctx, `MATCH (u:User {id: $value}) RETURN u`, id)
}

func (d *UserDAO) FindByWallet(ctx context.Context, wallet string) (User, error) {
	return d.findOne(ctx, `MATCH (u:User {walletAddress: $value}) RETURN u`, wallet)
}

func (d *UserDAO) findOne(ctx context.Context, query, value string) (User, error) {
	session := d.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"value": value})
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
		return User{}, err
	}

	return userFromRecord(result.(*neo4j.Record))
}

func userFromRecord(record *neo4j.Record) (User, error) {
	node, ok := nodeFromRecord(record, "u")
	if !ok {
		return User{}, ErrUserNotFound
	}

	return userFromNode(node), nil
}

func userFromNode(node neo4j.Node) User {
	props := node.Props

	return User{
		ID:               propString(props, "id"),
		WalletAddress:    propString(props, "walletAddress"),
		ConnectionMethod: propString(props, "connectionMethod"),
		Name:             propString(props, "name"),
		Email:            propString(props, "email"),
		ProfileImage:     propString(props, "profileImage"),
		IsActive:         propBool(props, "isActive"),
		CreatedAt:        propTime(props, "createdAt"),
		LastLoginAt:      propTime(props, "lastLoginAt"),
	}
}

// nullable maps the empty string to nil so coalesce keeps the stored value.
func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}
