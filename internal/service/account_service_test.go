package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aklyuk/banking-ledger/internal/models"
	"github.com/aklyuk/banking-ledger/internal/numbering"
	"github.com/aklyuk/banking-ledger/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService() *AccountService {
	return NewAccountService(store.NewMemoryDirectory(), numbering.NewSequence(0), zap.NewNop())
}

func mustCreate(t *testing.T, svc *AccountService, balance string) *models.Account {
	t.Helper()
	account, err := svc.CreateAccount(context.Background(), dec(balance))
	if err != nil {
		t.Fatalf("CreateAccount(%s): %v", balance, err)
	}
	return account
}

func balanceOf(t *testing.T, svc *AccountService, number string) decimal.Decimal {
	t.Helper()
	account, err := svc.FindAccount(context.Background(), number)
	if err != nil {
		t.Fatalf("FindAccount(%s): %v", number, err)
	}
	return account.Balance
}

func TestCreateAccount(t *testing.T) {
	svc := newTestService()

	first := mustCreate(t, svc, "100.009")
	if first.Number != "26000000000001" {
		t.Errorf("number=%q want 26000000000001", first.Number)
	}
	if !first.Balance.Equal(dec("100.00")) {
		t.Errorf("balance=%s want 100.00 (floor rounded)", first.Balance)
	}
	if first.Currency != models.DefaultCurrency {
		t.Errorf("currency=%q want %q", first.Currency, models.DefaultCurrency)
	}

	second := mustCreate(t, svc, "0")
	if second.Number != "26000000000002" {
		t.Errorf("number=%q want 26000000000002", second.Number)
	}

	// created accounts are persisted
	if got := balanceOf(t, svc, first.Number); !got.Equal(dec("100.00")) {
		t.Errorf("persisted balance=%s want 100.00", got)
	}
}

func TestCreateAccount_NegativeBalance(t *testing.T) {
	svc := newTestService()
	if _, err := svc.CreateAccount(context.Background(), dec("-1")); !errors.Is(err, models.ErrNegativeBalance) {
		t.Fatalf("want ErrNegativeBalance, got %v", err)
	}
	accounts, err := svc.FindAccounts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 0 {
		t.Errorf("rejected creation persisted %d accounts", len(accounts))
	}
}

func TestFindAccounts(t *testing.T) {
	svc := newTestService()
	mustCreate(t, svc, "1")
	mustCreate(t, svc, "2")

	accounts, err := svc.FindAccounts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 2 {
		t.Fatalf("len=%d want 2", len(accounts))
	}
	if accounts[0].Number > accounts[1].Number {
		t.Error("accounts not ordered by number")
	}
}

func TestFindAccount_NotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.FindAccount(context.Background(), "26000000000042")
	var notFound *models.AccountNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want AccountNotFoundError, got %v", err)
	}
	if notFound.Number != "26000000000042" {
		t.Errorf("error names %q want 26000000000042", notFound.Number)
	}
}

func TestDepositAndWithdraw(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	account := mustCreate(t, svc, "100")

	deposited, err := svc.Deposit(ctx, account.Number, dec("25.509"))
	if err != nil {
		t.Fatal(err)
	}
	if !deposited.Balance.Equal(dec("125.50")) {
		t.Errorf("after deposit balance=%s want 125.50", deposited.Balance)
	}

	withdrawn, err := svc.Withdraw(ctx, account.Number, dec("25.509"))
	if err != nil {
		t.Fatal(err)
	}
	if !withdrawn.Balance.Equal(dec("100.00")) {
		t.Errorf("after withdraw balance=%s want 100.00", withdrawn.Balance)
	}
}

func TestDeposit_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	account := mustCreate(t, svc, "100")

	for _, amount := range []string{"0", "0.009", "-5"} {
		if _, err := svc.Deposit(ctx, account.Number, dec(amount)); !errors.Is(err, models.ErrInvalidAmount) {
			t.Errorf("Deposit(%s): want ErrInvalidAmount, got %v", amount, err)
		}
	}
	if got := balanceOf(t, svc, account.Number); !got.Equal(dec("100.00")) {
		t.Errorf("balance=%s want 100.00", got)
	}
}

func TestWithdraw_ExceedsBalance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	account := mustCreate(t, svc, "100")

	if _, err := svc.Withdraw(ctx, account.Number, dec("100.01")); !errors.Is(err, models.ErrAmountExceedsBalance) {
		t.Fatalf("want ErrAmountExceedsBalance, got %v", err)
	}
	if got := balanceOf(t, svc, account.Number); !got.Equal(dec("100.00")) {
		t.Errorf("failed withdraw changed balance to %s", got)
	}
}

func TestDeposit_AccountNotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Deposit(context.Background(), "26000000000042", dec("10"))
	var notFound *models.AccountNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want AccountNotFoundError, got %v", err)
	}
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	source := mustCreate(t, svc, "100.00")
	target := mustCreate(t, svc, "0.00")

	result, err := svc.Transfer(ctx, models.TransferRequest{
		SourceNumber: source.Number,
		TargetNumber: target.Number,
		Amount:       dec("50.00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Number != source.Number {
		t.Errorf("transfer returned %q want source %q", result.Number, source.Number)
	}
	if !result.Balance.Equal(dec("50.00")) {
		t.Errorf("source balance=%s want 50.00", result.Balance)
	}

	sourceBalance := balanceOf(t, svc, source.Number)
	targetBalance := balanceOf(t, svc, target.Number)
	if !targetBalance.Equal(dec("50.00")) {
		t.Errorf("target balance=%s want 50.00", targetBalance)
	}
	if !sourceBalance.Add(targetBalance).Equal(dec("100.00")) {
		t.Errorf("sum=%s want 100.00", sourceBalance.Add(targetBalance))
	}
}

func TestTransfer_SameAccount(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	account := mustCreate(t, svc, "100")

	_, err := svc.Transfer(ctx, models.TransferRequest{
		SourceNumber: account.Number,
		TargetNumber: account.Number,
		Amount:       dec("10"),
	})
	if !errors.Is(err, models.ErrSameAccount) {
		t.Fatalf("want ErrSameAccount, got %v", err)
	}
	if got := balanceOf(t, svc, account.Number); !got.Equal(dec("100.00")) {
		t.Errorf("balance=%s want 100.00", got)
	}
}

func TestTransfer_InvalidAccountNumber(t *testing.T) {
	svc := newTestService()
	_, err := svc.Transfer(context.Background(), models.TransferRequest{
		SourceNumber: "123121231",
		TargetNumber: "26000000000002",
		Amount:       dec("10"),
	})
	if !errors.Is(err, models.ErrInvalidAccountNumber) {
		t.Fatalf("want ErrInvalidAccountNumber, got %v", err)
	}
}

func TestTransfer_TargetNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	source := mustCreate(t, svc, "100")

	_, err := svc.Transfer(ctx, models.TransferRequest{
		SourceNumber: source.Number,
		TargetNumber: "26000000000042",
		Amount:       dec("10"),
	})
	var notFound *models.AccountNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want AccountNotFoundError, got %v", err)
	}
	if notFound.Number != "26000000000042" {
		t.Errorf("error names %q want the missing target", notFound.Number)
	}
	if got := balanceOf(t, svc, source.Number); !got.Equal(dec("100.00")) {
		t.Errorf("failed transfer changed source balance to %s", got)
	}
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	source := mustCreate(t, svc, "30")
	target := mustCreate(t, svc, "10")

	_, err := svc.Transfer(ctx, models.TransferRequest{
		SourceNumber: source.Number,
		TargetNumber: target.Number,
		Amount:       dec("30.01"),
	})
	if !errors.Is(err, models.ErrAmountExceedsBalance) {
		t.Fatalf("want ErrAmountExceedsBalance, got %v", err)
	}
	if got := balanceOf(t, svc, source.Number); !got.Equal(dec("30.00")) {
		t.Errorf("source balance=%s want 30.00", got)
	}
	if got := balanceOf(t, svc, target.Number); !got.Equal(dec("10.00")) {
		t.Errorf("target balance=%s want 10.00", got)
	}
}

// Two concurrent withdrawals that would jointly overdraw must serialize:
// exactly one succeeds and one fails with ErrAmountExceedsBalance.
func TestConcurrentWithdrawals_NoDoubleSpend(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	account := mustCreate(t, svc, "100")

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Withdraw(ctx, account.Number, dec("70"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, models.ErrAmountExceedsBalance):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || insufficient != 1 {
		t.Fatalf("successes=%d insufficient=%d, want exactly one of each", successes, insufficient)
	}
	if got := balanceOf(t, svc, account.Number); !got.Equal(dec("30.00")) {
		t.Errorf("balance=%s want 30.00", got)
	}
}

// Opposing concurrent transfers must neither deadlock nor create or
// destroy money.
func TestConcurrentTransfers_SumConserved(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	a := mustCreate(t, svc, "500")
	b := mustCreate(t, svc, "500")

	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			svc.Transfer(ctx, models.TransferRequest{SourceNumber: a.Number, TargetNumber: b.Number, Amount: dec("1.00")})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			svc.Transfer(ctx, models.TransferRequest{SourceNumber: b.Number, TargetNumber: a.Number, Amount: dec("1.00")})
		}
	}()
	wg.Wait()

	sum := balanceOf(t, svc, a.Number).Add(balanceOf(t, svc, b.Number))
	if !sum.Equal(dec("1000.00")) {
		t.Fatalf("sum=%s want 1000.00", sum)
	}
}
