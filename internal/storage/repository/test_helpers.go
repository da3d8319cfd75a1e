package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/car-rental/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, passwordHash string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3) RETURNING id`,
		name, email, passwordHash).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateCar создает тестовый автомобиль и возвращает его ID
func (f *TestDataFactory) CreateCar(t *testing.T, brand, model string, year int,
	pricePerDay float64, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO cars (brand, model, year, price_per_day, status)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		brand, model, year, pricePerDay, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateOrder создает тестовый заказ и возвращает его ID
func (f *TestDataFactory) CreateOrder(t *testing.T, carID, userID int,
	startDate, endDate time.Time, totalPrice float64, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO orders
		(car_id, user_id, start_date, end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		carID, userID, startDate, endDate, totalPrice, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyCarStatus проверяет статус автомобиля в БД
func (v *TestVerification) VerifyCarStatus(t *testing.T, carID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM cars WHERE id = $1", carID).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyOrderData проверяет стоимость и статус заказа
func (v *TestVerification) VerifyOrderData(t *testing.T, orderID int,
	expectedTotalPrice float64, expectedStatus string) {
	var totalPrice float64
	var status string
	err := v.storage.DB.QueryRow("SELECT total_price, status FROM orders WHERE id = $1", orderID).
		Scan(&totalPrice, &status)
	require.NoError(t, err)
	require.Equal(t, expectedTotalPrice, totalPrice)
	require.Equal(t, expectedStatus, status)
}

// VerifyCarDeleted проверяет удаление автомобиля из БД
func (v *TestVerification) VerifyCarDeleted(t *testing.T, carID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM cars WHERE id = $1", carID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
// и прогоняет миграции схемы
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to connect to test database")

	err = migrations.Run(storage.DB, "../../../migrations")
	require.NoError(t, err, "failed to run migrations")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = postgresContainer.Terminate(ctx)
	}
	return storage, cleanup
}
