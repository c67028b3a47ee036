package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bhorvath/carwise/internal/domain"
)

type CarStore struct {
	db *sql.DB
}

func NewCarStore(db *sql.DB) *CarStore {
	return &CarStore{db: db}
}

func (s *CarStore) Create(ctx context.Context, userID int64, make, model, year, plate, color string) (*domain.Car, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO cars (user_id, make, model, year, plate, color) VALUES (?, ?, ?, ?, ?, ?)
	`, userID, make, model, year, plate, color)
	if err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *CarStore) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	car := &domain.Car{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, make, model, year, plate, color, created_at FROM cars WHERE id = ?
	`, id).Scan(&car.ID, &car.UserID, &car.Make, &car.Model, &car.Year, &car.Plate, &car.Color, &car.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	return car, nil
}

func (s *CarStore) ListByUserID(ctx context.Context, userID int64) ([]*domain.Car, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, make, model, year, plate, color, created_at FROM cars
		WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var cars []*domain.Car
	for rows.Next() {
		car := &domain.Car{}
		if err := rows.Scan(&car.ID, &car.UserID, &car.Make, &car.Model, &car.Year, &car.Plate, &car.Color, &car.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}

	return cars, nil
}

func (s *CarStore) Update(ctx context.Context, id int64, make, model, year, plate, color string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE cars SET make = ?, model = ?, year = ?, plate = ?, color = ? WHERE id = ?
	`, make, model, year, plate, color, id)
	if err != nil {
		return fmt.Errorf("failed to update car: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("car not found")
	}

	return nil
}

func (s *CarStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM cars WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete car: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("car not found")
	}

	return nil
}
