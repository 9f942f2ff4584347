package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var startTime = time.Now()

// RegisterMetrics adds the process uptime and connection pool collectors to
// the default registry. Registering twice is not an error.
func RegisterMetrics(db *gorm.DB) error {
	uptime := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "boardmaster_uptime_seconds",
		Help: "Time since server start in seconds",
	}, func() float64 { return time.Since(startTime).Seconds() })
	if err := register(uptime); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return register(collectors.NewDBStatsCollector(sqlDB, "boardmaster"))
}

func register(c prometheus.Collector) error {
	err := prometheus.Register(c)
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

// Metrics serves the default registry in Prometheus text format.
// GET /metrics
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
