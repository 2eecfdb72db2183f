// Command hotseat runs a local two-player Gomoku match with the Swap2 opening
// and reports won matches to the history server when one is reachable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rocketscienceinc/gomoku-backend/internal/config"
	"github.com/rocketscienceinc/gomoku-backend/internal/historyclient"
	"github.com/rocketscienceinc/gomoku-backend/internal/pkg"
	"github.com/rocketscienceinc/gomoku-backend/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	offline := flag.Bool("offline", false, "do not connect to the history server")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// stdout belongs to the game
	logger := pkg.NewLogger(conf.LogLevel, os.Stderr)

	var client *historyclient.Client
	if !*offline {
		ctx, cancel := context.WithTimeout(context.Background(), conf.Client.DialTimeout)
		client, err = historyclient.Dial(ctx, conf.Client.ServerURL, logger)
		cancel()

		if err != nil {
			logger.Warn("history server unavailable, playing offline", "error", err)
			client = nil
		}
	}

	tbl := &table{
		requestTimeout: conf.Client.RequestTimeout,
		out:            os.Stdout,
	}

	if client != nil {
		tbl.match = usecase.NewMatchManager(logger, conf.Client.PlayerOne, conf.Client.PlayerTwo, client)
		tbl.history = client
		tbl.saves = client
	} else {
		tbl.match = usecase.NewMatchManager(logger, conf.Client.PlayerOne, conf.Client.PlayerTwo, nil)
	}

	if err = tbl.run(os.Stdin); err != nil {
		logger.Error("failed to read commands", "error", err)
	}

	if client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.Client.DisconnectTimeout)
	defer cancel()

	if err = client.Disconnect(ctx); err != nil {
		logger.Warn("history server did not say goodbye", "error", err)
	}
}
