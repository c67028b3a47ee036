package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhorvath/carwise/internal/domain"
)

type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) Create(ctx context.Context, carID int64, happenedOn time.Time, shopName, description string, costHUF int64) (*domain.ServiceRecord, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO service_records (car_id, happened_on, shop_name, description, cost_huf)
		VALUES (?, ?, ?, ?, ?)
	`, carID, happenedOn.Format("2006-01-02"), shopName, description, costHUF)
	if err != nil {
		return nil, fmt.Errorf("failed to create service record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *RecordStore) GetByID(ctx context.Context, id int64) (*domain.ServiceRecord, error) {
	rec := &domain.ServiceRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, car_id, happened_on, shop_name, description, cost_huf, created_at
		FROM service_records WHERE id = ?
	`, id).Scan(&rec.ID, &rec.CarID, &rec.HappenedOn, &rec.ShopName, &rec.Description, &rec.CostHUF, &rec.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service record: %w", err)
	}

	return rec, nil
}

// ListByCarID returns the car's service history, newest first.
func (s *RecordStore) ListByCarID(ctx context.Context, carID int64) ([]*domain.ServiceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, car_id, happened_on, shop_name, description, cost_huf, created_at
		FROM service_records WHERE car_id = ? ORDER BY happened_on DESC, id DESC
	`, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service records: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var records []*domain.ServiceRecord
	for rows.Next() {
		rec := &domain.ServiceRecord{}
		if err := rows.Scan(&rec.ID, &rec.CarID, &rec.HappenedOn, &rec.ShopName, &rec.Description, &rec.CostHUF, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service records: %w", err)
	}

	return records, nil
}

func (s *RecordStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM service_records WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("service record not found")
	}

	return nil
}
