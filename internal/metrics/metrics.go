package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"taskboard/internal/board"
)

// Collector exposes move outcomes, column occupancy and HTTP traffic.
type Collector struct {
	moves           *prometheus.CounterVec
	columnTasks     *prometheus.GaugeVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

var _ board.Observer = (*Collector)(nil)

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		moves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskboard_moves_total",
				Help: "Move requests by outcome and rejection reason",
			},
			[]string{"outcome", "reason"},
		),
		columnTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskboard_column_tasks",
				Help: "Number of tasks currently in each column",
			},
			[]string{"column"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
	}
}

func (c *Collector) MoveApplied(_ board.Move, s board.Snapshot) {
	c.moves.WithLabelValues("applied", "none").Inc()
	c.ObserveSnapshot(s)
}

func (c *Collector) MoveRejected(reason error) {
	c.moves.WithLabelValues("rejected", reasonLabel(reason)).Inc()
}

// ObserveSnapshot sets the occupancy gauges from a snapshot.
func (c *Collector) ObserveSnapshot(s board.Snapshot) {
	for _, col := range s.Columns {
		c.columnTasks.WithLabelValues(col.ID).Set(float64(len(col.Tasks)))
	}
}

// Middleware records request counts and latency per route template.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		status := strconv.Itoa(ctx.Writer.Status())

		c.requestsTotal.WithLabelValues(method, route, status).Inc()
		c.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func reasonLabel(err error) string {
	switch {
	case errors.Is(err, board.ErrTaskNotFound):
		return "task_not_found"
	case errors.Is(err, board.ErrColumnNotFound):
		return "column_not_found"
	case errors.Is(err, board.ErrCapacityExceeded):
		return "capacity_exceeded"
	}
	return "other"
}
