package db

import (
	"context"
	"fmt"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/huddleup-labs/huddleup-api/internal/config"
)

// OpenNeo4j connects to the graph database and verifies connectivity
// before returning the driver. NEO4J_URI overrides the configured URI
// so hosted deployments can inject their own connection string.
func OpenNeo4j(ctx context.Context, conf *config.Neo4jConfig) (neo4j.DriverWithContext, error) {
	uri := conf.URI
	if env := os.Getenv("NEO4J_URI"); env != "" {
		uri = env
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(conf.Username, conf.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j.NewDriverWithContext -> %w", err)
	}

	if err = driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("driver.VerifyConnectivity -> %w", err)
	}

	return driver, nil
}
