// Package repo contains all database access for the TripWeave API.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
//
// The trip list mirrors the browser's local-storage trip list: a bounded,
// most-recently-used ordered set of full trip snapshots per device. Trips are
// stored as whole JSON documents rather than normalized rows because the
// snapshot is the unit of exchange — it is what gets encoded into share
// tokens and merged across devices.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tripweave/backend/internal/domain"
)

// maxTrips bounds the per-device trip list. Inserting an 11th trip evicts the
// least recently touched one.
const maxTrips = 10

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripListRepo defines the persistence operations for a device's trip list.
// The service layer depends on this interface, not the Postgres
// implementation, so it can be unit-tested with a hand mock.
type TripListRepo interface {
	// Put stores a trip snapshot for the device, replacing any existing
	// snapshot with the same trip ID in place (no duplicates) and marking it
	// most recently used. Snapshots beyond the list bound are evicted oldest
	// first.
	Put(ctx context.Context, deviceID uuid.UUID, trip domain.Trip) error

	// Get returns the device's snapshot of one trip.
	// Returns domain.ErrNotFound when the device has no usable snapshot —
	// including when a stored snapshot is corrupted, which is treated the
	// same as absence rather than an error.
	Get(ctx context.Context, deviceID uuid.UUID, tripID string) (domain.Trip, error)

	// List returns the device's snapshots in most-recently-used order.
	// Corrupted snapshots are skipped silently.
	List(ctx context.Context, deviceID uuid.UUID) ([]domain.Trip, error)

	// Delete removes one trip from the device's list (the explicit user
	// removal — trips are never deleted any other way). Returns
	// domain.ErrNotFound when the device has no such trip.
	Delete(ctx context.Context, deviceID uuid.UUID, tripID string) error
}

// pgTripListRepo is the Postgres implementation of TripListRepo.
type pgTripListRepo struct {
	db db
}

// NewTripListRepo constructs a TripListRepo backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation.
func NewTripListRepo(db db) TripListRepo {
	return &pgTripListRepo{db: db}
}

// Put upserts the snapshot, then trims the device's list to the bound.
func (r *pgTripListRepo) Put(ctx context.Context, deviceID uuid.UUID, trip domain.Trip) error {
	data, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("repo.TripListRepo.Put: marshal: %w", err)
	}

	const upsert = `
		INSERT INTO trip_list (device_id, trip_id, data)
		VALUES (@device_id, @trip_id, @data)
		ON CONFLICT (device_id, trip_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = clock_timestamp()`

	_, err = r.db.Exec(ctx, upsert, pgx.NamedArgs{
		"device_id": deviceID,
		"trip_id":   trip.ID,
		"data":      data,
	})
	if err != nil {
		return fmt.Errorf("repo.TripListRepo.Put: %w", err)
	}

	// Evict everything past the maxTrips most recently used.
	const trim = `
		DELETE FROM trip_list
		WHERE device_id = @device_id
		  AND trip_id NOT IN (
			SELECT trip_id FROM trip_list
			WHERE device_id = @device_id
			ORDER BY updated_at DESC
			LIMIT @limit
		  )`

	_, err = r.db.Exec(ctx, trim, pgx.NamedArgs{
		"device_id": deviceID,
		"limit":     maxTrips,
	})
	if err != nil {
		return fmt.Errorf("repo.TripListRepo.Put: trim: %w", err)
	}
	return nil
}

// Get retrieves one snapshot. A corrupted snapshot maps to ErrNotFound —
// malformed stored state degrades to absence, it never crashes a request.
func (r *pgTripListRepo) Get(ctx context.Context, deviceID uuid.UUID, tripID string) (domain.Trip, error) {
	const q = `
		SELECT data FROM trip_list
		WHERE device_id = @device_id AND trip_id = @trip_id`

	var data []byte
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"device_id": deviceID,
		"trip_id":   tripID,
	}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, fmt.Errorf("repo.TripListRepo.Get: %w", err)
	}

	trip, ok := decodeSnapshot(data)
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return trip, nil
}

// List returns the device's snapshots, most recently used first.
func (r *pgTripListRepo) List(ctx context.Context, deviceID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT data FROM trip_list
		WHERE device_id = @device_id
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"device_id": deviceID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripListRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("repo.TripListRepo.List: scan: %w", err)
		}
		if trip, ok := decodeSnapshot(data); ok {
			trips = append(trips, trip)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripListRepo.List: rows: %w", err)
	}

	return trips, nil
}

// Delete removes one trip from the device's list.
func (r *pgTripListRepo) Delete(ctx context.Context, deviceID uuid.UUID, tripID string) error {
	const q = `DELETE FROM trip_list WHERE device_id = @device_id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"device_id": deviceID,
		"trip_id":   tripID,
	})
	if err != nil {
		return fmt.Errorf("repo.TripListRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripListRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// decodeSnapshot unmarshals a stored trip document. The second return is
// false for snapshots that do not decode to a usable trip (bad JSON shape or
// a missing ID), which callers treat as absence.
func decodeSnapshot(data []byte) (domain.Trip, bool) {
	var t domain.Trip
	if err := json.Unmarshal(data, &t); err != nil || t.ID == "" {
		return domain.Trip{}, false
	}
	return t, true
}
