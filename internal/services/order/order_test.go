package order_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental/internal/models"
	"github.com/magabrotheeeer/car-rental/internal/services/order"
	"github.com/magabrotheeeer/car-rental/internal/storage/repository"
)

// Мок для OrderRepository
type OrderRepoMock struct {
	mock.Mock
}

func (m *OrderRepoMock) RentCar(ctx context.Context, carID, userID int,
	startDate, endDate time.Time, rentalDays int) (int, float64, error) {
	args := m.Called(ctx, carID, userID, startDate, endDate, rentalDays)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *OrderRepoMock) UpdateOrderStatus(ctx context.Context, id int, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}

func (m *OrderRepoMock) ListOrders(ctx context.Context) ([]*models.OrderInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderInfo), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// Мок для EventPublisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCountDays(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantDays  int
		wantErr   bool
	}{
		{name: "three days", startDate: "2024-01-01", endDate: "2024-01-04", wantDays: 3},
		{name: "single day", startDate: "2024-06-15", endDate: "2024-06-16", wantDays: 1},
		{name: "across month boundary", startDate: "2024-02-28", endDate: "2024-03-01", wantDays: 2},
		{name: "across year boundary", startDate: "2023-12-30", endDate: "2024-01-02", wantDays: 3},
		{name: "full year", startDate: "2023-01-01", endDate: "2024-01-01", wantDays: 365},
		{name: "equal dates", startDate: "2024-01-01", endDate: "2024-01-01", wantErr: true},
		{name: "end before start", startDate: "2024-01-04", endDate: "2024-01-01", wantErr: true},
		{name: "bad start date", startDate: "01-01-2024", endDate: "2024-01-04", wantErr: true},
		{name: "bad end date", startDate: "2024-01-01", endDate: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, days, err := order.CountDays(tt.startDate, tt.endDate)
			if tt.wantErr {
				assert.ErrorIs(t, err, order.ErrInvalidDates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, days)
			assert.True(t, end.After(start))
		})
	}
}

// Для любой пары дат с неположительным периодом оформление отклоняется
// до обращения к хранилищу.
func TestOrderService_Create_InvalidDatePairs(t *testing.T) {
	repo := new(OrderRepoMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)
	svc := order.NewOrderService(repo, cache, publisher, newTestLogger())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset <= 30; offset++ {
		start := base.AddDate(0, 0, offset)
		req := models.CreateOrderRequest{
			CarID:     1,
			UserID:    1,
			StartDate: start.Format("2006-01-02"),
			EndDate:   base.Format("2006-01-02"),
		}
		_, _, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, order.ErrInvalidDates)
	}

	repo.AssertNotCalled(t, "RentCar")
}

func TestOrderService_Create(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	validReq := models.CreateOrderRequest{
		CarID:     7,
		UserID:    3,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-04",
	}

	tests := []struct {
		name       string
		req        models.CreateOrderRequest
		setupMocks func(r *OrderRepoMock, c *CacheMock, p *PublisherMock)
		wantID     int
		wantPrice  float64
		wantErr    error
	}{
		{
			name: "successful rent",
			req:  validReq,
			setupMocks: func(r *OrderRepoMock, c *CacheMock, p *PublisherMock) {
				r.On("RentCar", mock.Anything, 7, 3, start, end, 3).
					Return(42, 150.0, nil).Once()
				c.On("Invalidate", "car:7").Return(nil).Once()
				p.On("Publish", "created", mock.MatchedBy(func(msg any) bool {
					event, ok := msg.(models.OrderCreatedEvent)
					return ok && event.OrderID == 42 && event.CarID == 7 &&
						event.TotalPrice == 150.0 && event.EventID != ""
				})).Return(nil).Once()
			},
			wantID:    42,
			wantPrice: 150.0,
		},
		{
			name: "car not found",
			req:  validReq,
			setupMocks: func(r *OrderRepoMock, _ *CacheMock, _ *PublisherMock) {
				r.On("RentCar", mock.Anything, 7, 3, start, end, 3).
					Return(0, 0.0, fmt.Errorf("storage.RentCar: %w", repository.ErrCarNotFound)).Once()
			},
			wantErr: repository.ErrCarNotFound,
		},
		{
			name: "car already rented",
			req:  validReq,
			setupMocks: func(r *OrderRepoMock, _ *CacheMock, _ *PublisherMock) {
				r.On("RentCar", mock.Anything, 7, 3, start, end, 3).
					Return(0, 0.0, fmt.Errorf("storage.RentCar: %w", repository.ErrCarUnavailable)).Once()
			},
			wantErr: repository.ErrCarUnavailable,
		},
		{
			name: "publish failure does not fail the order",
			req:  validReq,
			setupMocks: func(r *OrderRepoMock, c *CacheMock, p *PublisherMock) {
				r.On("RentCar", mock.Anything, 7, 3, start, end, 3).
					Return(42, 150.0, nil).Once()
				c.On("Invalidate", "car:7").Return(nil).Once()
				p.On("Publish", "created", mock.Anything).
					Return(errors.New("broker is down")).Once()
			},
			wantID:    42,
			wantPrice: 150.0,
		},
		{
			name: "cache failure does not fail the order",
			req:  validReq,
			setupMocks: func(r *OrderRepoMock, c *CacheMock, p *PublisherMock) {
				r.On("RentCar", mock.Anything, 7, 3, start, end, 3).
					Return(42, 150.0, nil).Once()
				c.On("Invalidate", "car:7").Return(errors.New("redis is down")).Once()
				p.On("Publish", "created", mock.Anything).Return(nil).Once()
			},
			wantID:    42,
			wantPrice: 150.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(OrderRepoMock)
			cache := new(CacheMock)
			publisher := new(PublisherMock)
			svc := order.NewOrderService(repo, cache, publisher, newTestLogger())

			tt.setupMocks(repo, cache, publisher)

			id, price, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
				assert.Equal(t, tt.wantPrice, price)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	repo := new(OrderRepoMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)
	svc := order.NewOrderService(repo, cache, publisher, newTestLogger())

	repo.On("UpdateOrderStatus", mock.Anything, 5, models.OrderStatusCancelled).
		Return(1, nil).Once()
	repo.On("UpdateOrderStatus", mock.Anything, 6, models.OrderStatusCompleted).
		Return(0, nil).Once()

	count, err := svc.UpdateStatus(context.Background(), 5, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.UpdateStatus(context.Background(), 6, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	repo.AssertExpectations(t)
}

func TestOrderService_List(t *testing.T) {
	repo := new(OrderRepoMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)
	svc := order.NewOrderService(repo, cache, publisher, newTestLogger())

	expected := []*models.OrderInfo{
		{ID: 1, Brand: "Toyota", Model: "Corolla", TotalPrice: 150, UserName: "Bob"},
	}
	repo.On("ListOrders", mock.Anything).Return(expected, nil).Once()

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}
