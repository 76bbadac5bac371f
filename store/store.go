// Package store persists an audit trail of executed swaps, adapted from
// the teacher's uniswap-v3-simulator Flush/Record pattern: a gorm model
// with decimal-formatted big-integer columns, backed by a pure-Go (no cgo)
// sqlite driver. It sits entirely outside the swap hot path: pool.Pool.Swap
// never imports this package, never blocks on it, and never sees a
// partially-recorded swap reflected back into its own state. A caller opts
// in by passing a completed SwapResult to RecordSwap after Swap returns.
package store

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tristero-labs/univ3swap/pool"
)

// SwapRecord is one persisted row describing an executed swap's inputs and
// the pool state immediately after it, for later audit; nothing in
// math/* or pool/* ever reads this table back.
type SwapRecord struct {
	gorm.Model
	PoolAddress       string `gorm:"index"`
	ZeroForOne        bool
	ExactIn           bool
	AmountSpecified   decimal.Decimal
	Amount0           decimal.Decimal
	Amount1           decimal.Decimal
	SqrtPriceX96After decimal.Decimal
	TickAfter         int32 `gorm:"index"`
	LiquidityAfter    decimal.Decimal
	RecordedAt        time.Time `gorm:"index"`
}

// Store wraps a sqlite-backed gorm.DB holding the swap_records table.
type Store struct {
	db *gorm.DB
}

// Open creates or opens the sqlite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&SwapRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// RecordSwap appends one row describing a swap that has already been
// executed against p: poolAddress identifies the pool, params and result
// are exactly what Pool.Swap was called with and returned, and recordedAt
// is the caller-supplied timestamp (this package never calls time.Now()
// itself, so callers control determinism in tests).
func (s *Store) RecordSwap(poolAddress common.Address, p *pool.Pool, params pool.SwapParams, result pool.SwapResult, recordedAt time.Time) error {
	rec := SwapRecord{
		PoolAddress:       poolAddress.Hex(),
		ZeroForOne:        params.ZeroForOne,
		ExactIn:           params.AmountSpecified.Sign() > 0,
		AmountSpecified:   decimalFromBig(params.AmountSpecified.Big()),
		Amount0:           decimalFromBig(result.Amount0.Big()),
		Amount1:           decimalFromBig(result.Amount1.Big()),
		SqrtPriceX96After: decimalFromBig(p.Slot0.SqrtPriceX96),
		TickAfter:         p.Slot0.Tick,
		LiquidityAfter:    decimalFromBig(p.Liquidity),
		RecordedAt:        recordedAt,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("store: record swap: %w", err)
	}
	return nil
}

// RecentSwaps returns up to limit of the most recently recorded swaps for
// poolAddress, newest first.
func (s *Store) RecentSwaps(poolAddress common.Address, limit int) ([]SwapRecord, error) {
	var records []SwapRecord
	err := s.db.
		Where("pool_address = ?", poolAddress.Hex()).
		Order("recorded_at desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("store: recent swaps: %w", err)
	}
	return records, nil
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("store: underlying db: %w", err)
	}
	return sqlDB.Close()
}

func decimalFromBig(x *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(x, 0)
}
