package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkhub/internal/models"
)

const reservationColumns = `id, code, user_id, slot_id, vehicle_id, start_time, end_time, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*models.Reservation, error) {
	var r models.Reservation
	var start, end int64
	err := row.Scan(
		&r.ID, &r.Code, &r.UserID, &r.SlotID, &r.VehicleID,
		&start, &end, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.StartTime = time.Unix(start, 0).UTC()
	r.EndTime = time.Unix(end, 0).UTC()
	return &r, nil
}

// HasConflict reports whether a live reservation on the slot overlaps the
// half-open window [start, end). excludeID skips one reservation, for future
// modify flows; 0 means no exclusion. Read-only and deterministic.
func (db *DB) HasConflict(ctx context.Context, slotID int64, start, end time.Time, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(
                SELECT 1 FROM reservations
                WHERE slot_id = ?
                  AND status IN (?, ?)
                  AND start_time < ?
                  AND end_time > ?
                  AND id != ?)`

	var exists bool
	err := db.QueryRowContext(ctx, query,
		slotID, models.StatusPending, models.StatusActive,
		end.Unix(), start.Unix(), excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check conflict: %w", err)
	}
	return exists, nil
}

// CreateReservationWithLock performs the conflict check and the insert of a
// pending row as one transaction. Of any set of concurrent calls with
// overlapping windows on the same slot, at most one commits; the rest get
// ErrNotAvailable. A missing slot yields ErrNotFound.
func (db *DB) CreateReservationWithLock(ctx context.Context, res *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var slotExists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM parking_slots WHERE id = ?)`, res.SlotID,
	).Scan(&slotExists); err != nil {
		return fmt.Errorf("failed to check slot in tx: %w", err)
	}
	if !slotExists {
		return ErrNotFound
	}

	var overlapping int
	queryCount := `SELECT COUNT(*) FROM reservations
                   WHERE slot_id = ? AND status IN (?, ?)
                     AND start_time < ? AND end_time > ?`
	err = tx.QueryRowContext(ctx, queryCount,
		res.SlotID, models.StatusPending, models.StatusActive,
		res.EndTime.Unix(), res.StartTime.Unix(),
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check availability in tx: %w", err)
	}
	if overlapping > 0 {
		return ErrNotAvailable
	}

	now := time.Now().UTC()
	queryInsert := `INSERT INTO reservations
                    (code, user_id, slot_id, vehicle_id, start_time, end_time, status, created_at, updated_at)
                    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, queryInsert,
		res.Code, res.UserID, res.SlotID, res.VehicleID,
		res.StartTime.Unix(), res.EndTime.Unix(),
		models.StatusPending, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	res.ID = id
	res.Status = models.StatusPending
	res.CreatedAt = now
	res.UpdatedAt = now

	return tx.Commit()
}

func (db *DB) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return res, nil
}

// UpdateReservationStatusGuarded applies a transition as a single update
// conditioned on the current status. Zero rows affected means the row moved
// since it was read, reported as ErrConcurrentModification.
func (db *DB) UpdateReservationStatusGuarded(ctx context.Context, id int64, from, to string) error {
	query := `UPDATE reservations SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

// ListReservations returns reservations matching the filter, newest first.
func (db *DB) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	var args []any

	if filter.UserID != 0 {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.SlotID != 0 {
		query += ` AND slot_id = ?`
		args = append(args, filter.SlotID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	limit := filter.Limit
	if limit <= 0 || limit > models.MaxPageSize {
		limit = models.DefaultPageSize
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListReservationsInWindow returns reservations whose window intersects
// [from, to), oldest start first. Used by the admin export.
func (db *DB) ListReservationsInWindow(ctx context.Context, from, to time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
              WHERE start_time < ? AND end_time > ?
              ORDER BY start_time ASC, id ASC`

	rows, err := db.QueryContext(ctx, query, to.Unix(), from.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations in window: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListExpiredActive returns active reservations whose end time has passed.
// The sweeper moves each to completed with a guarded update afterwards.
func (db *DB) ListExpiredActive(ctx context.Context, now time.Time) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
              WHERE status = ? AND end_time <= ? ORDER BY end_time ASC`

	rows, err := db.QueryContext(ctx, query, models.StatusActive, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to list expired reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}
