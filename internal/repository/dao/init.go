package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

var schemaStatements = []string{
	`CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
	`CREATE CONSTRAINT user_wallet_unique IF NOT EXISTS FOR (u:User) REQUIRE u.walletAddress IS UNIQUE`,
	`CREATE CONSTRAINT event_id_unique IF NOT EXISTS FOR (e:Event) REQUIRE e.id IS UNIQUE`,
	`CREATE CONSTRAINT chain_event_key IF NOT EXISTS FOR (c:ChainEvent) REQUIRE (c.txHash, c.logIndex) IS UNIQUE`,
	`CREATE CONSTRAINT chain_cursor_id IF NOT EXISTS FOR (c:ChainCursor) REQUIRE c.id IS UNIQUE`,
}

// InitSchema creates the uniqueness constraints the write queries rely on.
func InitSchema(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, stmt := range schemaStatements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("session.Run(%q) -> %w", stmt, err)
		}
	}

	return nil
}

func propString(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}

	return ""
}

func propBool(props map[string]any, key string) bool {
	if v, ok := props[key].(bool); ok {
		return v
	}

	return false
}

func propFloat(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}

	return 0
}

func propInt(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}

	return 0
}

func propTime(props map[string]any, key string) time.Time {
	if v, ok := props[key].(time.Time); ok {
		return v
	}

	return time.Time{}
}

func propTimePtr(props map[string]any, key string) *time.Time {
	if v, ok := props[key].(time.Time); ok {
		return &v
	}

	return nil
}

func nodeFromRecord(record *neo4j.Record, key string) (neo4j.Node, bool) {
	value, ok := record.Get(key)
	if !ok {
		return neo4j.Node{}, false
	}

	node, ok := value.(neo4j.Node)

	return node, ok
}
