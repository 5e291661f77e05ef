package x_db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rskv-p/fpmine/constant"
	"github.com/rskv-p/fpmine/pkg/x_fptree"
	"github.com/rskv-p/fpmine/pkg/x_log"

	"gorm.io/gorm"
)

//---------------------
// Store
//---------------------

// Store persists mining runs and their itemsets.
type Store struct {
	db    *gorm.DB
	batch int
}

// Open connects to the configured database and migrates the schema.
func Open(cfg Config) (*Store, error) {
	cfg.ApplyDefaults()

	d, err := cfg.dialector()
	if err != nil {
		return nil, err
	}
	if err := ensureDir(cfg); err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: newLogAdapter(x_log.New("xdb"), gormLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	s := &Store{db: db, batch: cfg.BatchSize}
	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}

	x_log.Debug().
		Str("driver", string(cfg.Driver)).
		Msg("database initialized")
	return s, nil
}

// DB returns the underlying GORM handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate performs the schema migration.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Run{}, &ItemsetRow{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureDir creates the parent directory of a sqlite database file.
func ensureDir(cfg Config) error {
	if cfg.Driver != DriverSqlite || cfg.DSN == "" || strings.HasPrefix(cfg.DSN, "file:") || strings.Contains(cfg.DSN, ":memory:") {
		return nil
	}
	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

//---------------------
// Runs
//---------------------

// CreateRun inserts r with status running.
func (s *Store) CreateRun(ctx context.Context, r *Run) error {
	if r.Status == "" {
		r.Status = StatusRunning
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create run %s: %w", r.ID, err)
	}
	return nil
}

// FinishRun records the outcome of run id.
func (s *Store) FinishRun(ctx context.Context, id string, res x_fptree.Result, elapsed time.Duration, runErr error) error {
	upd := map[string]any{
		"itemsets":          res.Itemsets,
		"max_length":        res.MaxLength,
		"conditional_trees": res.ConditionalTrees,
		"duration_ms":       elapsed.Milliseconds(),
		"status":            StatusDone,
		"error":             "",
	}
	if runErr != nil {
		upd["status"] = StatusFailed
		upd["error"] = runErr.Error()
	}

	tx := s.db.WithContext(ctx).Model(&Run{}).Where("id = ?", id).Updates(upd)
	if tx.Error != nil {
		return fmt.Errorf("finish run %s: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", constant.ErrRunNotFound, id)
	}
	return nil
}

// ListRuns returns the latest runs first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var runs []Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun loads one run.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", constant.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &r, nil
}

//---------------------
// Itemsets
//---------------------

// SaveItemsets stores rows in batches.
func (s *Store) SaveItemsets(ctx context.Context, rows []ItemsetRow) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, s.batch).Error; err != nil {
		return fmt.Errorf("save itemsets: %w", err)
	}
	return nil
}

// RunItemsets returns the itemsets of a run with at least minSize items,
// in mining order.
func (s *Store) RunItemsets(ctx context.Context, runID string, minSize int) ([]ItemsetRow, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	var rows []ItemsetRow
	err := s.db.WithContext(ctx).
		Where("run_id = ? AND size >= ?", runID, minSize).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("run itemsets %s: %w", runID, err)
	}
	return rows, nil
}

// DeleteRun removes a run and its itemsets.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&ItemsetRow{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Run{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", constant.ErrRunNotFound, id)
		}
		return nil
	})
}
