package rabbitmq

// QueueConfig описывает очередь и ключ маршрутизации для событий бронирования.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetBookingQueues возвращает очереди, в которые раскладываются события заказов.
func GetBookingQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "booking.created", RoutingKey: "created"},
		// при необходимости дополнительные очереди для других воркеров
	}
}
