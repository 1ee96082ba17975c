package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"sideslacker/handler"
	"sideslacker/internal/dialog"
	"sideslacker/internal/directory"
	"sideslacker/internal/integrations/paramstore"
	"sideslacker/internal/integrations/slack"
	"sideslacker/internal/repository"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	stateTable := mustEnv("STATE_TABLE")
	paramPrefix := mustEnv("PARAM_PREFIX")
	sessionTTLMinutes := envInt("SESSION_TTL_MINUTES", 60)

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	dynamoClient := awsdynamodb.NewFromConfig(cfg)
	sessionStore, err := repository.New(dynamoClient, stateTable, time.Duration(sessionTTLMinutes)*time.Minute)
	if err != nil {
		slog.Error("failed to create session store", "err", err)
		os.Exit(1)
	}

	notifier, err := slack.NewClient(ssmClient, paramPrefix)
	if err != nil {
		slog.Error("failed to create slack client", "err", err)
		os.Exit(1)
	}

	dir, err := directory.Load(ctx, ssmClient, paramPrefix+"/directory")
	if err != nil {
		slog.Error("failed to load name directory", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	dialogService, err := dialog.NewService(sessionStore, notifier, dir)
	if err != nil {
		slog.Error("failed to create dialog service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(dialogService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
