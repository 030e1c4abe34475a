// Package seed opens a handful of demo accounts on an empty store, for
// local development. Gated behind the seed.demo-accounts config flag.
package seed

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aklyuk/banking-ledger/internal/logger"
	"github.com/aklyuk/banking-ledger/internal/service"
)

var demoBalances = []string{"1000.00", "500.00", "250.00"}

func Run(ctx context.Context, svc *service.AccountService) {
	accounts, err := svc.FindAccounts(ctx)
	if err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if len(accounts) > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	for _, balance := range demoBalances {
		account, err := svc.CreateAccount(ctx, decimal.RequireFromString(balance))
		if err != nil {
			logger.Log.Fatal("seed failed", zap.Error(err))
		}
		logger.Log.Info("seeded account",
			zap.String("number", account.Number),
			zap.String("balance", balance))
	}
}
