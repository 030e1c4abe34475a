// Package service implements the ledger operations on top of the account
// directory: account creation and lookup, deposits, withdrawals and the
// two-account transfer orchestration.
package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aklyuk/banking-ledger/internal/models"
	"github.com/aklyuk/banking-ledger/internal/numbering"
	"github.com/aklyuk/banking-ledger/internal/validation"
)

type AccountService struct {
	directory models.AccountDirectory
	numbers   numbering.Generator
	log       *zap.Logger
}

func NewAccountService(directory models.AccountDirectory, numbers numbering.Generator, log *zap.Logger) *AccountService {
	return &AccountService{directory: directory, numbers: numbers, log: log}
}

// CreateAccount opens an account under a freshly issued number holding the
// floor-rounded initial balance.
func (s *AccountService) CreateAccount(ctx context.Context, initialBalance decimal.Decimal) (*models.Account, error) {
	if err := validation.BalanceAmount(initialBalance); err != nil {
		return nil, err
	}
	account, err := models.NewAccount(s.numbers.Next(), initialBalance)
	if err != nil {
		return nil, err
	}
	saved, err := s.directory.Save(ctx, account)
	if err != nil {
		return nil, err
	}
	s.log.Info("account created",
		zap.String("number", saved.Number),
		zap.String("balance", saved.Balance.String()))
	return saved, nil
}

// FindAccounts lists every account, ordered by number.
func (s *AccountService) FindAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.directory.FindAll(ctx)
}

// FindAccount resolves one account by number.
func (s *AccountService) FindAccount(ctx context.Context, number string) (*models.Account, error) {
	return s.directory.FindByNumber(ctx, number)
}

// Deposit adds amount to the account and persists the result. The whole
// read-modify-write runs in one directory transaction so concurrent
// mutations of the same account serialize instead of losing updates.
func (s *AccountService) Deposit(ctx context.Context, number string, amount decimal.Decimal) (*models.Account, error) {
	var account *models.Account
	err := s.directory.InTransaction(ctx, func(dir models.AccountDirectory) error {
		found, err := dir.FindByNumber(ctx, number)
		if err != nil {
			return err
		}
		if err := found.Deposit(amount); err != nil {
			return err
		}
		account, err = dir.Save(ctx, found)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("deposit applied",
		zap.String("number", number),
		zap.String("amount", amount.String()))
	return account, nil
}

// Withdraw subtracts amount from the account and persists the result,
// failing without a write when the amount exceeds the balance.
func (s *AccountService) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (*models.Account, error) {
	var account *models.Account
	err := s.directory.InTransaction(ctx, func(dir models.AccountDirectory) error {
		found, err := dir.FindByNumber(ctx, number)
		if err != nil {
			return err
		}
		if err := found.Withdraw(amount); err != nil {
			return err
		}
		account, err = dir.Save(ctx, found)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("withdrawal applied",
		zap.String("number", number),
		zap.String("amount", amount.String()))
	return account, nil
}

// Transfer moves amount between two accounts as one atomic unit: withdraw
// from the source, deposit to the target, persist both with a single
// SaveAll inside one directory transaction. An insufficient-funds failure
// short-circuits before anything is written, so no partial transfer ever
// reaches the store. Returns the mutated source account.
//
// Accounts are resolved in ascending number order so two opposing
// concurrent transfers take their row locks in the same order and cannot
// deadlock.
func (s *AccountService) Transfer(ctx context.Context, req models.TransferRequest) (*models.Account, error) {
	if err := validation.TransferRequest(req); err != nil {
		return nil, err
	}
	if err := validation.TransferAmount(req.Amount); err != nil {
		return nil, err
	}
	var source *models.Account
	err := s.directory.InTransaction(ctx, func(dir models.AccountDirectory) error {
		firstNumber, secondNumber := req.SourceNumber, req.TargetNumber
		if firstNumber > secondNumber {
			firstNumber, secondNumber = secondNumber, firstNumber
		}
		first, err := dir.FindByNumber(ctx, firstNumber)
		if err != nil {
			return err
		}
		second, err := dir.FindByNumber(ctx, secondNumber)
		if err != nil {
			return err
		}
		src, dst := first, second
		if src.Number != req.SourceNumber {
			src, dst = second, first
		}
		if err := src.Withdraw(req.Amount); err != nil {
			return err
		}
		if err := dst.Deposit(req.Amount); err != nil {
			return err
		}
		if _, err := dir.SaveAll(ctx, []*models.Account{src, dst}); err != nil {
			return err
		}
		source = src
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("transfer completed",
		zap.String("source", req.SourceNumber),
		zap.String("target", req.TargetNumber),
		zap.String("amount", req.Amount.String()))
	return source, nil
}
