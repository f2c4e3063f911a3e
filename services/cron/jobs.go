package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/course-catalog/utils/metrics"
)

const (
	catalogStatsJob   = "catalog_stats"
	databaseHealthJob = "database_health"
)

// ReportCatalogStats logs how many courses, featured courses and categories
// the catalog holds and publishes them as gauges. Runs every hour.
func (m *CronManager) ReportCatalogStats() {
	m.logJobStart(catalogStatsJob)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	message, err := m.catalogStatsMessage(ctx)
	if err != nil {
		m.logJobError(catalogStatsJob, err)
		return
	}
	m.logJobComplete(catalogStatsJob, message)
}

func (m *CronManager) catalogStatsMessage(ctx context.Context) (string, error) {
	stats, err := m.store.CatalogStats(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read catalog stats: %w", err)
	}
	metrics.UpdateCatalogStats(stats)

	return fmt.Sprintf("%d courses, %d featured, %d categories",
		stats.TotalCourses, stats.FeaturedCourses, stats.Categories), nil
}

// CheckDatabaseHealth pings the store. Runs every 5 minutes.
func (m *CronManager) CheckDatabaseHealth() {
	m.logJobStart(databaseHealthJob)

	start := time.Now()
	if err := m.store.HealthCheck(); err != nil {
		m.logJobError(databaseHealthJob, fmt.Errorf("database unreachable: %w", err))
		return
	}
	m.logJobComplete(databaseHealthJob, fmt.Sprintf("database reachable in %s", time.Since(start).Round(time.Millisecond)))
}
