package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	server_config "github.com/satang-labs/ledger-server/internal/config"
	"github.com/satang-labs/ledger-server/internal/storage/currency"
)

var currencies = []currency.Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "VND", Name: "Vietnamese Dong", Symbol: "₫"},
	{Code: "MYR", Name: "Malaysian Ringgit", Symbol: "RM"},
	{Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp"},
}

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, env.PostgresURL())
	if err != nil {
		logrus.WithError(err).Fatal("pgxpool.New")
		return
	}
	defer pool.Close()

	writer := currency.NewWriter(pool)
	for _, c := range currencies {
		if err := writer.Upsert(ctx, &c); err != nil {
			logrus.WithError(err).WithField("code", c.Code).Fatal("Upsert")
			return
		}
	}

	logrus.WithField("count", len(currencies)).Info("Currencies seeded")
}
