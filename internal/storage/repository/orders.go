package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/car-rental/internal/models"
)

// RentCar атомарно оформляет аренду автомобиля: в одной транзакции
// блокирует строку автомобиля (SELECT ... FOR UPDATE), проверяет его
// доступность, считает итоговую стоимость, вставляет заказ и помечает
// автомобиль как rented. Из двух конкурентных запросов на один
// автомобиль успешно завершится не более одного.
//
// Возвращает ID заказа и итоговую стоимость, либо ErrCarNotFound или
// ErrCarUnavailable.
func (s *Storage) RentCar(ctx context.Context, carID, userID int,
	startDate, endDate time.Time, rentalDays int) (int, float64, error) {
	const op = "storage.RentCar"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var pricePerDay float64
	var status string
	row := tx.QueryRowContext(ctx,
		`SELECT price_per_day, status FROM cars WHERE id = $1 FOR UPDATE`, carID)
	if err := row.Scan(&pricePerDay, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, fmt.Errorf("%s: %w", op, ErrCarNotFound)
		}
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	if status != models.CarStatusAvailable {
		return 0, 0, fmt.Errorf("%s: %w", op, ErrCarUnavailable)
	}

	totalPrice := pricePerDay * float64(rentalDays)

	var orderID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (car_id, user_id, start_date, end_date, total_price)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		carID, userID, startDate, endDate, totalPrice).Scan(&orderID)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE cars SET status = $1 WHERE id = $2`,
		models.CarStatusRented, carID)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return orderID, totalPrice, nil
}

// UpdateOrderStatus меняет статус заказа по его ID и возвращает
// количество изменённых строк. Статус автомобиля не затрагивается.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateOrderStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListOrders возвращает список заказов, объединённых с данными автомобиля
// и пользователя. Используется INNER JOIN: заказы с удалёнными
// автомобилями или пользователями в выдачу не попадают.
func (s *Storage) ListOrders(ctx context.Context) ([]*models.OrderInfo, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT o.id, o.start_date, o.end_date, o.total_price, o.status,
			      c.brand, c.model, c.price_per_day,
			      u.name, u.email
			  FROM orders o
			  JOIN cars c ON o.car_id = c.id
			  JOIN users u ON o.user_id = u.id
			  ORDER BY o.id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.OrderInfo
	for rows.Next() {
		var item models.OrderInfo
		if err := rows.Scan(&item.ID, &item.StartDate, &item.EndDate, &item.TotalPrice,
			&item.Status, &item.Brand, &item.Model, &item.PricePerDay,
			&item.UserName, &item.UserEmail); err != nil {
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
