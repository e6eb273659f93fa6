package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/budget"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/category"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/currency"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/fxrate"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/insight"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/recurring"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/status"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/transaction"
	"github.com/satang-labs/ledger-server/internal/handlers/v1/wallet"
	"github.com/satang-labs/ledger-server/internal/logging"
	"github.com/satang-labs/ledger-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Services *service.Services
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Ledger Server", "1.0.0"))
	r.register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           logging.Middleware(r.Logger, mux),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

func (r *Rest) register(api huma.API) {
	transaction.NewCreateTransactionHandler(r.Services.Ledger).Register(api)
	transaction.NewCreateTransferHandler(r.Services.Ledger).Register(api)
	transaction.NewDeleteTransactionHandler(r.Services.Ledger).Register(api)
	transaction.NewListTransactionsHandler(r.Services.Ledger).Register(api)

	budget.NewCreateBudgetHandler(r.Services.Budget).Register(api)
	budget.NewBudgetStatusHandler(r.Services.Budget).Register(api)

	fxrate.NewCreateFxRateHandler(r.Services.Fx).Register(api)
	fxrate.NewResolveFxRateHandler(r.Services.Fx).Register(api)

	recurring.NewCreateRuleHandler(r.Services.Recurring).Register(api)
	recurring.NewListRulesHandler(r.Services.Recurring).Register(api)
	recurring.NewRunDueHandler(r.Services.Recurring).Register(api)

	wallet.NewCreateWalletHandler(r.Services.Wallet).Register(api)
	wallet.NewListWalletsHandler(r.Services.Wallet).Register(api)

	category.NewHandler(r.Services.Category).Register(api)
	currency.NewListCurrenciesHandler(r.Services.Currency).Register(api)
	insight.NewMonthlySummaryHandler(r.Services.Insight).Register(api)
}
