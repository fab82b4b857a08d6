/* main.go
 * The "main" method for running the CPR training backend. Serves the HTTP routes and, when enabled, the Discord bot
 * Usage: go run . -prod="<true|false>" -bot="<true|false>"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cpr-backend/api/api"
	"cpr-backend/api/external"
	"cpr-backend/bot"
	"cpr-backend/config"
	"cpr-backend/logger"
	"cpr-backend/web"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	//Flags
	prodPtr := flag.String("prod", "false", "Use production logging: takes true or false as argument")
	botPtr := flag.String("bot", "false", "Also run the Discord bot: takes true or false as argument")

	flag.Parse()

	prod, err := parseBoolFlag("prod", *prodPtr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	runBot, err := parseBoolFlag("bot", *botPtr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := config.Load()
	if prod {
		cfg.LogMode = "production"
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Debug("no .env file loaded, using the process environment", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := external.NewProvisioner(cfg.ProvisioningBaseURL, cfg.NotifierTimeout, cfg.NotifierRate, log)

	apiPtr, err := api.NewAPI(ctx, cfg.MongoDB, cfg.MongoURI, notifier, log)
	if err != nil {
		log.Fatal("failed to initialize API", "error", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := apiPtr.Close(closeCtx); err != nil {
			log.Error("failed to disconnect from MongoDB", "error", err)
		}
	}()

	// A failed ping is reported but the server still starts, requests will fail until the database is reachable
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := apiPtr.Ping(pingCtx); err != nil {
		log.Warn("could not reach MongoDB at startup", "error", err)
	} else {
		log.Info("Connected to MongoDB", "db", cfg.MongoDB)
	}
	cancelPing()

	if runBot {
		discordBot, err := bot.NewBot(cfg.DiscordToken, apiPtr, log)
		if err != nil {
			log.Fatal("failed to initialize bot", "error", err)
		}
		go func() {
			if err := discordBot.Run(ctx); err != nil {
				log.Error("discord bot stopped", "error", err)
			}
		}()
	}

	err = web.Start(ctx, web.Config{
		Addr:        cfg.Addr(),
		API:         apiPtr,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		log.Error("HTTP server stopped", "error", err)
	}
	log.Info("shutdown complete")
}
