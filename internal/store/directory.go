// Package store provides the persistence backends for the account
// directory: a gorm/Postgres implementation for production and an
// in-memory one for tests and local runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aklyuk/banking-ledger/internal/models"
)

// Directory is the gorm-backed models.AccountDirectory. The atomicity of
// SaveAll and the no-lost-update guarantee both come from InTransaction:
// it opens a database transaction and upgrades every lookup inside it to
// SELECT ... FOR UPDATE, so concurrent read-modify-write pairs on the same
// account row serialize at the database.
type Directory struct {
	db      *gorm.DB
	locking bool
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) FindByNumber(ctx context.Context, number string) (*models.Account, error) {
	q := d.db.WithContext(ctx)
	if d.locking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var account models.Account
	if err := q.Where("number = ?", number).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.AccountNotFoundError{Number: number}
		}
		return nil, err
	}
	return &account, nil
}

func (d *Directory) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := d.db.WithContext(ctx).Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (d *Directory) SaveAll(ctx context.Context, accounts []*models.Account) ([]*models.Account, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, account := range accounts {
			if err := tx.Save(account).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (d *Directory) FindAll(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	if err := d.db.WithContext(ctx).Order("number asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (d *Directory) InTransaction(ctx context.Context, fn func(models.AccountDirectory) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Directory{db: tx, locking: true})
	})
}

// MaxIssuedSequence returns the numeric suffix of the highest account
// number on record, or 0 when no accounts exist. Used to seed the number
// generator so restarts do not reissue numbers.
func (d *Directory) MaxIssuedSequence(ctx context.Context) (uint64, error) {
	var number sql.NullString
	err := d.db.WithContext(ctx).
		Model(&models.Account{}).
		Select("max(number)").
		Scan(&number).Error
	if err != nil {
		return 0, err
	}
	if !number.Valid || number.String == "" {
		return 0, nil
	}
	return strconv.ParseUint(strings.TrimPrefix(number.String, "2600"), 10, 64)
}
