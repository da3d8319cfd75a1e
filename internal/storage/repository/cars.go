package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/car-rental/internal/models"
)

// CreateCar вставляет новый автомобиль и возвращает его ID.
// Статус не передается: колонка имеет значение по умолчанию available.
func (s *Storage) CreateCar(ctx context.Context, car models.Car) (int, error) {
	const op = "storage.CreateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cars (brand, model, year, price_per_day)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		car.Brand, car.Model, car.Year, car.PricePerDay).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCar возвращает данные автомобиля по его ID.
func (s *Storage) ReadCar(ctx context.Context, id int) (*models.Car, error) {
	const op = "storage.ReadCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, brand, model, year, price_per_day, status
			  FROM cars WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Car
	if err := row.Scan(&result.ID, &result.Brand, &result.Model, &result.Year,
		&result.PricePerDay, &result.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrCarNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateCar полностью перезаписывает данные автомобиля по его ID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateCar(ctx context.Context, car models.Car, id int) (int, error) {
	const op = "storage.UpdateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cars
			  SET brand = $1, model = $2, year = $3, price_per_day = $4, status = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		car.Brand, car.Model, car.Year, car.PricePerDay, car.Status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCar удаляет автомобиль по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCar(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cars WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCars возвращает список всех автомобилей автопарка.
func (s *Storage) ListCars(ctx context.Context) ([]*models.Car, error) {
	const op = "storage.ListCars"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, brand, model, year, price_per_day, status
			  FROM cars
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Car
	for rows.Next() {
		var item models.Car
		if err := rows.Scan(&item.ID, &item.Brand, &item.Model, &item.Year,
			&item.PricePerDay, &item.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
