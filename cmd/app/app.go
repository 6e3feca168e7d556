package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/huddleup-labs/huddleup-api/internal/api"
	"github.com/huddleup-labs/huddleup-api/internal/chain"
	"github.com/huddleup-labs/huddleup-api/internal/config"
	"github.com/huddleup-labs/huddleup-api/internal/db"
	"github.com/huddleup-labs/huddleup-api/internal/logger"
	"github.com/huddleup-labs/huddleup-api/internal/repository/dao"
)

func Start() error {
	ctx := context.Background()

	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	driver, err := db.OpenNeo4j(ctx, conf.Neo4j)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}
	defer driver.Close(ctx)

	if err = dao.InitSchema(ctx, driver); err != nil {
		return fmt.Errorf("failed to initialize graph constraints -> %w", err)
	}

	s, err := api.NewServer(ctx, conf, driver)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	if conf.Chain.Enabled {
		listener := chain.NewListener(conf.Chain, s.Mirror, s.ChainRepo)
		go listener.Run(ctx)
	} else {
		zap.L().Info("chain listener is disabled")
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
