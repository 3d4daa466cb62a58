// Package store persists aligned EQR records to SQLite so filtered
// quarters can be queried without re-reading the archive. One database
// holds any number of quarters; records carry their quarter and their
// normalized seller join key.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gridscope/ferceqr/pkg/constants"
	"github.com/gridscope/ferceqr/pkg/eqr"
	"github.com/gridscope/ferceqr/pkg/errors"
)

const insertBatchSize = 500

// Store wraps the SQLite database holding processed EQR records.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path and migrates its
// schema.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.NewValidationError("database", path, "path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("mkdir", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return newStore(db)
}

// OpenDB wraps an existing gorm connection, migrating the schema.
func OpenDB(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.NewValidationError("db", nil, "gorm connection cannot be nil")
	}
	return newStore(db)
}

func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&TransactionModel{}, &ContractModel{}); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetMaxIdleConns(2)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveTransactions batch-inserts aligned transactions under the given
// quarter.
func (s *Store) SaveTransactions(ctx context.Context, quarter eqr.Quarter, txs []eqr.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	models := make([]TransactionModel, len(txs))
	for i, t := range txs {
		models[i] = newTransactionModel(quarter.String(), t)
	}
	return s.db.WithContext(ctx).CreateInBatches(models, insertBatchSize).Error
}

// SaveContracts batch-inserts aligned contracts under the given quarter.
func (s *Store) SaveContracts(ctx context.Context, quarter eqr.Quarter, contracts []eqr.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	models := make([]ContractModel, len(contracts))
	for i, c := range contracts {
		models[i] = newContractModel(quarter.String(), c)
	}
	return s.db.WithContext(ctx).CreateInBatches(models, insertBatchSize).Error
}

// TransactionsBySeller returns transactions whose normalized seller name
// matches joinKey, newest trade first.
func (s *Store) TransactionsBySeller(ctx context.Context, joinKey string) ([]TransactionModel, error) {
	var models []TransactionModel
	err := s.db.WithContext(ctx).
		Where("seller_join_key = ?", joinKey).
		Order("trade_date DESC, id DESC").
		Find(&models).Error
	return models, err
}

// TransactionsByBalancingAuthority returns transactions delivered into the
// given balancing authority for one quarter.
func (s *Store) TransactionsByBalancingAuthority(ctx context.Context, quarter eqr.Quarter, ba string) ([]TransactionModel, error) {
	var models []TransactionModel
	err := s.db.WithContext(ctx).
		Where("quarter = ? AND point_of_delivery_balancing_authority = ?", quarter.String(), ba).
		Order("trade_date, id").
		Find(&models).Error
	return models, err
}

// ContractsBySeller returns contracts whose normalized seller name matches
// joinKey.
func (s *Store) ContractsBySeller(ctx context.Context, joinKey string) ([]ContractModel, error) {
	var models []ContractModel
	err := s.db.WithContext(ctx).
		Where("seller_join_key = ?", joinKey).
		Order("id").
		Find(&models).Error
	return models, err
}

// SellerJoinKeys returns the distinct normalized seller names present in
// the transactions table, sorted.
func (s *Store) SellerJoinKeys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Distinct("seller_join_key").
		Order("seller_join_key").
		Pluck("seller_join_key", &keys).Error
	return keys, err
}

// CountByQuarter returns how many transactions are stored for the quarter.
func (s *Store) CountByQuarter(ctx context.Context, quarter eqr.Quarter) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Where("quarter = ?", quarter.String()).
		Count(&count).Error
	return count, err
}
