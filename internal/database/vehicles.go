package database

import (
	"context"
	"fmt"
	"time"

	"parkhub/internal/models"
)

func (db *DB) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `INSERT INTO vehicles (owner_id, plate, type, brand, model, color, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		v.OwnerID, v.Plate, v.Type, v.Brand, v.Model, v.Color, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlate
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	v.ID = id
	v.CreatedAt = now
	v.UpdatedAt = now
	return nil
}

// VehicleExists is the narrow ownership check consumed by reserve: the
// vehicle must exist and belong to the given user.
func (db *DB) VehicleExists(ctx context.Context, vehicleID, ownerID int64) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehicles WHERE id = ? AND owner_id = ?)`,
		vehicleID, ownerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vehicle: %w", err)
	}
	return exists, nil
}

func (db *DB) ListVehiclesByOwner(ctx context.Context, ownerID int64) ([]*models.Vehicle, error) {
	query := `SELECT id, owner_id, plate, type, brand, model, color, created_at, updated_at
              FROM vehicles WHERE owner_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(&v.ID, &v.OwnerID, &v.Plate, &v.Type, &v.Brand, &v.Model, &v.Color, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}
