package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/satang-labs/ledger-server/api"
	"github.com/satang-labs/ledger-server/internal/config"
	"github.com/satang-labs/ledger-server/internal/logging"
	"github.com/satang-labs/ledger-server/internal/operator"
	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage"
	"github.com/satang-labs/ledger-server/internal/textgen"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	ctx := context.Background()

	dbStorage, err := storage.New(ctx, envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.New")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.NumWorkers)
	delegator.Start()
	defer delegator.Stop()

	var generator textgen.SummaryGenerator
	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := textgen.NewGeminiGenerator(ctx, envConfig.GeminiModel)
		if err != nil {
			logrus.WithError(err).Warn("textgen.NewGeminiGenerator; summaries will use the template generator")
		} else {
			generator = gemini
		}
	}

	services := service.New(dbStorage, delegator, generator)

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.HTTPPort,
		Services: services,
	}
	httpRest.Serve()
}
