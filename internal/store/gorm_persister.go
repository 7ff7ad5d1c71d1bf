package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const snapshotRowID = 1

// ErrVersionConflict means another writer advanced the stored snapshot.
var ErrVersionConflict = errors.New("stored snapshot version moved")

type snapshotRow struct {
	ID        int       `gorm:"column:id;primaryKey"`
	Payload   []byte    `gorm:"column:payload;type:jsonb;not null"`
	Version   int64     `gorm:"column:version;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (snapshotRow) TableName() string {
	return "hr_snapshots"
}

type gormPersister struct {
	db *gorm.DB
}

// NewGormPersister keeps the snapshot in a single jsonb row of hr_snapshots.
// The table is created by the embedded migrations (see RunMigrations).
func NewGormPersister(db *gorm.DB) Persister {
	return &gormPersister{db: db}
}

func (r *gormPersister) Read(ctx context.Context) (*Snapshot, error) {
	var row snapshotRow
	res := r.db.WithContext(ctx).
		Raw("SELECT id, payload, version, updated_at FROM hr_snapshots WHERE id = ?", snapshotRowID).
		Scan(&row)
	if res.Error != nil {
		return nil, classifyPgError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNoSnapshot
	}

	var snap Snapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Version = row.Version
	return &snap, nil
}

// Write upserts the row only when the stored version is the draft's parent,
// so a second process sharing the table cannot silently overwrite commits.
func (r *gormPersister) Write(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			INSERT INTO hr_snapshots (id, payload, version, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE
			SET payload = EXCLUDED.payload, version = EXCLUDED.version, updated_at = EXCLUDED.updated_at
			WHERE hr_snapshots.version = EXCLUDED.version - 1
		`, snapshotRowID, payload, snap.Version, time.Now().UTC())
		if res.Error != nil {
			return classifyPgError(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
}

func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 42P01: undefined_table
		if pgErr.Code == "42P01" {
			return fmt.Errorf("hr_snapshots table missing, run migrations: %w", err)
		}
		return fmt.Errorf("postgres %s: %w", pgErr.Code, err)
	}
	return err
}
