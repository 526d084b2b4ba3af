package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkhub/internal/models"

	sqlite3 "github.com/mattn/go-sqlite3"
)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// slotColumns includes the derived occupied flag: a slot is occupied when an
// active reservation covers the query time. The stored status column is
// administrative and is returned separately, untouched.
const slotColumns = `s.id, s.slot_number, s.floor, s.type, s.status,
       EXISTS(SELECT 1 FROM reservations r
              WHERE r.slot_id = s.id AND r.status = ?
                AND r.start_time <= ? AND r.end_time > ?) AS occupied,
       s.created_at, s.updated_at`

func slotOccupancyArgs(now time.Time) []any {
	return []any{models.StatusActive, now.Unix(), now.Unix()}
}

func scanSlot(row interface{ Scan(...any) error }) (*models.ParkingSlot, error) {
	var s models.ParkingSlot
	err := row.Scan(
		&s.ID, &s.SlotNumber, &s.Floor, &s.Type, &s.Status,
		&s.Occupied, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) CreateSlot(ctx context.Context, slot *models.ParkingSlot) error {
	query := `INSERT INTO parking_slots (slot_number, floor, type, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		slot.SlotNumber, slot.Floor, slot.Type, slot.Status, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("failed to create slot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	slot.ID = id
	slot.CreatedAt = now
	slot.UpdatedAt = now
	return nil
}

func (db *DB) GetSlot(ctx context.Context, id int64) (*models.ParkingSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots s WHERE s.id = ?`
	args := append(slotOccupancyArgs(time.Now().UTC()), id)

	slot, err := scanSlot(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return slot, nil
}

// ListSlots returns slots matching the filter, newest first.
func (db *DB) ListSlots(ctx context.Context, filter models.SlotFilter) ([]*models.ParkingSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots s WHERE 1=1`
	args := slotOccupancyArgs(time.Now().UTC())

	if filter.Status != "" {
		query += ` AND s.status = ?`
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		query += ` AND s.type = ?`
		args = append(args, filter.Type)
	}
	if filter.Floor != "" {
		query += ` AND s.floor = ?`
		args = append(args, filter.Floor)
	}

	query += ` ORDER BY s.created_at DESC, s.id DESC`

	limit := filter.Limit
	if limit <= 0 || limit > models.MaxPageSize {
		limit = models.DefaultPageSize
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var slots []*models.ParkingSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

// UpdateSlot applies a partial update. A changed slot_number is re-validated
// for uniqueness by the constraint.
func (db *DB) UpdateSlot(ctx context.Context, id int64, upd models.SlotUpdate) error {
	query := `UPDATE parking_slots SET updated_at = ?`
	args := []any{time.Now().UTC()}

	if upd.SlotNumber != nil {
		query += `, slot_number = ?`
		args = append(args, *upd.SlotNumber)
	}
	if upd.Floor != nil {
		query += `, floor = ?`
		args = append(args, *upd.Floor)
	}
	if upd.Type != nil {
		query += `, type = ?`
		args = append(args, *upd.Type)
	}
	if upd.Status != nil {
		query += `, status = ?`
		args = append(args, *upd.Status)
	}

	query += ` WHERE id = ?`
	args = append(args, id)

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("failed to update slot: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSlot removes a slot unless live reservations still reference it.
// The check and the delete share a transaction so a reserve racing the delete
// cannot orphan its row.
func (db *DB) DeleteSlot(ctx context.Context, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var inUse bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reservations WHERE slot_id = ? AND status IN (?, ?))`,
		id, models.StatusPending, models.StatusActive,
	).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check slot reservations: %w", err)
	}
	if inUse {
		return ErrSlotInUse
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM parking_slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
