package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm/schema"

	"skyscraper/internal/config"
	"skyscraper/internal/core"
	"skyscraper/internal/persistence"

	"github.com/zhulik/pal"
)

var (
	tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skyscraper_table_count",
		Help: "Record count for a mirrored table.",
	}, []string{"table"})
)

// Collector periodically gauges the mirror's table sizes while a metrics
// server is running.
type Collector struct {
	Logger *slog.Logger
	Config *config.Config
	DB     *persistence.DB
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (c *Collector) Run(ctx context.Context) error {
	if c.Config.MetricsAddr == "" {
		return nil
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, tabler := range []schema.Tabler{core.ProfileModel{}, core.PostModel{}} {
				if err := c.collect(tabler); err != nil {
					c.Logger.Warn("failed to collect table count", "table", tabler.TableName(), "error", err)
				}
			}
		}
	}
}

func (c *Collector) collect(tabler schema.Tabler) error {
	count, err := c.DB.Count(tabler)
	if err != nil {
		return err
	}
	tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	return nil
}
