// Package history persists balance snapshots so account and history
// pages can chart holdings over time.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Snapshot is one balance reading. Wei values are stored as decimal
// strings because SQLite integers top out at 64 bits.
type Snapshot struct {
	ID      int64
	Address string
	VET     *big.Int
	VTHO    *big.Int
	TakenAt time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens and migrates the snapshot database at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AddSnapshot records a balance reading for address. Addresses are
// stored lowercased so checksummed and plain forms share a series.
func (s *Store) AddSnapshot(ctx context.Context, address string, vet, vtho *big.Int, takenAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO snapshots(address, vet_wei, vtho_wei, taken_at)
	VALUES (?, ?, ?, ?)
	`, strings.ToLower(address), vet.String(), vtho.String(), takenAt.UTC())
	return err
}

// RecentSnapshots returns up to limit readings for address, newest
// first.
func (s *Store) RecentSnapshots(ctx context.Context, address string, limit int) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, address, vet_wei, vtho_wei, taken_at
	FROM snapshots WHERE address = ?
	ORDER BY taken_at DESC, id DESC LIMIT ?
	`, strings.ToLower(address), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// VETSeries returns VET amounts (in whole VET) for the last limit
// snapshots of address, oldest first, ready for charting.
func (s *Store) VETSeries(ctx context.Context, address string, limit int) ([]float64, error) {
	snaps, err := s.RecentSnapshots(ctx, address, limit)
	if err != nil {
		return nil, err
	}

	series := make([]float64, 0, len(snaps))
	for i := len(snaps) - 1; i >= 0; i-- {
		series = append(series, weiToVET(snaps[i].VET))
	}
	return series, nil
}

// PruneOlderThan deletes snapshots taken before cutoff and reports how
// many rows went.
func (s *Store) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE taken_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanSnapshot(rows *sql.Rows) (Snapshot, error) {
	var (
		snap    Snapshot
		vetStr  string
		vthoStr string
	)
	if err := rows.Scan(&snap.ID, &snap.Address, &vetStr, &vthoStr, &snap.TakenAt); err != nil {
		return Snapshot{}, err
	}

	var ok bool
	snap.VET, ok = new(big.Int).SetString(vetStr, 10)
	if !ok {
		return Snapshot{}, fmt.Errorf("corrupt vet value %q", vetStr)
	}
	snap.VTHO, ok = new(big.Int).SetString(vthoStr, 10)
	if !ok {
		return Snapshot{}, fmt.Errorf("corrupt vtho value %q", vthoStr)
	}
	return snap, nil
}

func weiToVET(wei *big.Int) float64 {
	f := new(big.Float).SetInt(wei)
	f.Quo(f, big.NewFloat(1e18))
	out, _ := f.Float64()
	return out
}
