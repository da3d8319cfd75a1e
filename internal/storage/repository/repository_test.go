package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental/internal/models"
)

func TestStorage_CreateUser_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	user := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hashed"}

	id, err := storage.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = storage.CreateUser(ctx, user)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestStorage_GetUserByEmail_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_CarLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	id, err := storage.CreateCar(ctx, models.Car{
		Brand: "Toyota", Model: "Corolla", Year: 2022, PricePerDay: 50,
	})
	require.NoError(t, err)

	// статус по умолчанию выставляется схемой
	car, err := storage.ReadCar(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.CarStatusAvailable, car.Status)
	assert.Equal(t, 50.0, car.PricePerDay)

	count, err := storage.UpdateCar(ctx, models.Car{
		Brand: "Toyota", Model: "Camry", Year: 2023, PricePerDay: 70,
		Status: models.CarStatusRented,
	}, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.UpdateCar(ctx, models.Car{
		Brand: "Toyota", Model: "Camry", Year: 2023, PricePerDay: 70,
		Status: models.CarStatusRented,
	}, id+1000)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = storage.RemoveCar(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = storage.RemoveCar(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = storage.ReadCar(ctx, id)
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestStorage_RentCar(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	userID := factory.CreateUser(t, "Bob", "bob@example.com", "hashed")
	carID := factory.CreateCar(t, "Toyota", "Corolla", 2022, 50, models.CarStatusAvailable)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	orderID, totalPrice, err := storage.RentCar(ctx, carID, userID, start, end, 3)
	require.NoError(t, err)
	assert.Equal(t, 150.0, totalPrice)

	// статус заказа по умолчанию active, автомобиль помечен rented
	verify.VerifyOrderData(t, orderID, 150.0, models.OrderStatusActive)
	verify.VerifyCarStatus(t, carID, models.CarStatusRented)

	// повторная аренда того же автомобиля отклоняется
	_, _, err = storage.RentCar(ctx, carID, userID, start, end, 3)
	assert.ErrorIs(t, err, ErrCarUnavailable)

	// несуществующий автомобиль
	_, _, err = storage.RentCar(ctx, carID+1000, userID, start, end, 3)
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestStorage_RentCar_Concurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := factory.CreateUser(t, "Bob", "bob@example.com", "hashed")
	carID := factory.CreateCar(t, "Toyota", "Corolla", 2022, 50, models.CarStatusAvailable)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := storage.RentCar(context.Background(), carID, userID, start, end, 3)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, ErrCarUnavailable)
			conflicted++
		}
	}

	// из N конкурентных запросов успешен ровно один
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)

	var orderCount int
	err := storage.DB.QueryRow("SELECT COUNT(*) FROM orders WHERE car_id = $1", carID).Scan(&orderCount)
	require.NoError(t, err)
	assert.Equal(t, 1, orderCount)
}

func TestStorage_UpdateOrderStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	userID := factory.CreateUser(t, "Bob", "bob@example.com", "hashed")
	carID := factory.CreateCar(t, "Toyota", "Corolla", 2022, 50, models.CarStatusRented)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orderID := factory.CreateOrder(t, carID, userID, start, start.AddDate(0, 0, 3),
		150, models.OrderStatusActive)

	count, err := storage.UpdateOrderStatus(ctx, orderID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	verify.VerifyOrderData(t, orderID, 150.0, models.OrderStatusCompleted)

	// статус автомобиля при завершении заказа не меняется
	verify.VerifyCarStatus(t, carID, models.CarStatusRented)

	count, err = storage.UpdateOrderStatus(ctx, orderID+1000, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_ListOrders_JoinSemantics(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "Bob", "bob@example.com", "hashed")
	carID := factory.CreateCar(t, "Toyota", "Corolla", 2022, 50, models.CarStatusRented)
	otherCarID := factory.CreateCar(t, "Honda", "Civic", 2021, 40, models.CarStatusRented)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateOrder(t, carID, userID, start, start.AddDate(0, 0, 3), 150, models.OrderStatusActive)
	factory.CreateOrder(t, otherCarID, userID, start, start.AddDate(0, 0, 2), 80, models.OrderStatusActive)

	orders, err := storage.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Toyota", orders[0].Brand)
	assert.Equal(t, "bob@example.com", orders[0].UserEmail)
	assert.Equal(t, 150.0, orders[0].TotalPrice)

	// заказ с удалённым автомобилем пропадает из выдачи
	count, err := storage.RemoveCar(ctx, carID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	orders, err = storage.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Honda", orders[0].Brand)
}
