// Package days содержит функции подсчёта длительности аренды в целых днях.
package days

import (
	"time"
)

// Count считает количество целых календарных дней между двумя датами.
// Даты нормализуются до полуночи UTC, поэтому результат не зависит от
// времени суток и часового пояса входных значений.
func Count(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return int(endDay.Sub(startDay) / (24 * time.Hour))
}
