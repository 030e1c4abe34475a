package store

import (
	"context"
	"sort"
	"sync"

	"github.com/aklyuk/banking-ledger/internal/models"
)

// MemoryDirectory is an in-memory models.AccountDirectory backing the
// tests and Postgres-free local runs. A single mutex serializes every
// operation and every transaction, which gives it the same
// no-lost-update guarantee the gorm directory gets from row locks.
// Accounts are stored by value, so callers always mutate copies and a
// failed transaction leaves the map untouched.
type MemoryDirectory struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[string]models.Account
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{accounts: make(map[string]models.Account)}
}

func (m *MemoryDirectory) FindByNumber(ctx context.Context, number string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(number)
}

func (m *MemoryDirectory) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(account), nil
}

func (m *MemoryDirectory) SaveAll(ctx context.Context, accounts []*models.Account) ([]*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]*models.Account, len(accounts))
	for i, account := range accounts {
		saved[i] = m.save(account)
	}
	return saved, nil
}

func (m *MemoryDirectory) FindAll(ctx context.Context) ([]*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(nil), nil
}

// InTransaction holds the directory mutex for the whole of fn and stages
// writes aside; they merge into the live map only when fn returns nil.
func (m *MemoryDirectory) InTransaction(ctx context.Context, fn func(models.AccountDirectory) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &memoryTx{dir: m, staged: make(map[string]models.Account)}
	if err := fn(tx); err != nil {
		return err
	}
	for number, account := range tx.staged {
		m.accounts[number] = account
	}
	return nil
}

// find/save/list assume the caller holds m.mu.

func (m *MemoryDirectory) find(number string) (*models.Account, error) {
	account, ok := m.accounts[number]
	if !ok {
		return nil, &models.AccountNotFoundError{Number: number}
	}
	cp := account
	return &cp, nil
}

func (m *MemoryDirectory) save(account *models.Account) *models.Account {
	cp := *account
	if existing, ok := m.accounts[cp.Number]; ok {
		cp.ID = existing.ID
	} else if cp.ID == 0 {
		m.nextID++
		cp.ID = m.nextID
	}
	m.accounts[cp.Number] = cp
	out := cp
	return &out
}

func (m *MemoryDirectory) list(staged map[string]models.Account) []*models.Account {
	merged := make(map[string]models.Account, len(m.accounts)+len(staged))
	for number, account := range m.accounts {
		merged[number] = account
	}
	for number, account := range staged {
		merged[number] = account
	}
	accounts := make([]*models.Account, 0, len(merged))
	for _, account := range merged {
		cp := account
		accounts = append(accounts, &cp)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Number < accounts[j].Number })
	return accounts
}

// memoryTx is the transactional view handed to InTransaction callbacks.
// The enclosing InTransaction already holds the directory mutex.
type memoryTx struct {
	dir    *MemoryDirectory
	staged map[string]models.Account
}

func (t *memoryTx) FindByNumber(ctx context.Context, number string) (*models.Account, error) {
	if account, ok := t.staged[number]; ok {
		cp := account
		return &cp, nil
	}
	return t.dir.find(number)
}

func (t *memoryTx) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	cp := *account
	if staged, ok := t.staged[cp.Number]; ok {
		cp.ID = staged.ID
	} else if existing, ok := t.dir.accounts[cp.Number]; ok {
		cp.ID = existing.ID
	} else if cp.ID == 0 {
		t.dir.nextID++
		cp.ID = t.dir.nextID
	}
	t.staged[cp.Number] = cp
	out := cp
	return &out, nil
}

func (t *memoryTx) SaveAll(ctx context.Context, accounts []*models.Account) ([]*models.Account, error) {
	saved := make([]*models.Account, len(accounts))
	for i, account := range accounts {
		s, err := t.Save(ctx, account)
		if err != nil {
			return nil, err
		}
		saved[i] = s
	}
	return saved, nil
}

func (t *memoryTx) FindAll(ctx context.Context) ([]*models.Account, error) {
	return t.dir.list(t.staged), nil
}

// InTransaction on a transactional view joins the enclosing transaction.
func (t *memoryTx) InTransaction(ctx context.Context, fn func(models.AccountDirectory) error) error {
	return fn(t)
}
