package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/models"
	"github.com/localnerve/pcnodetree/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Health states
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer,omitempty"`
	Timestamp    string            `json:"timestamp"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every checked dependency is operational
func (r HealthCheckResult) Healthy() bool {
	return r.Status == StatusHealthy
}

func (r *HealthCheckResult) fail(component, message string) {
	r.Status = StatusUnhealthy
	if r.ErrorMessage == "" {
		r.ErrorMessage = message
	} else {
		r.ErrorMessage += "; " + message
	}
	r.Details[component+"_error"] = message
}

// HealthCheck checks the database, and the Authorizer when it is the auth mode
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) HealthCheckResult {
	if log == nil {
		log = zap.NewNop()
	}

	result := HealthCheckResult{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Details:   make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	switch {
	case err != nil:
		result.Database = "error"
		result.fail("database", fmt.Sprintf("Database connection error: %v", err))
		log.Warn("health check failed: database connection", zap.Error(err))
	case sqlDB.PingContext(ctx) != nil:
		result.Database = "unreachable"
		result.fail("database", "Database ping failed")
		log.Warn("health check failed: database ping")
	default:
		var count int64
		err := db.WithContext(ctx).
			Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
			Model(&models.Node{}).
			Count(&count).Error
		if err != nil {
			result.Database = "error"
			result.fail("database", fmt.Sprintf("Node table unavailable: %v", err))
			log.Warn("health check failed: node table", zap.Error(err))
			break
		}
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
		result.Details["node_count"] = strconv.FormatInt(count, 10)
	}

	// Check Authorizer connectivity
	if cfg.AuthMode == config.AuthModeAuthorizer {
		if err := utils.PingAuthorizer(ctx, cfg.AuthzURL); err != nil {
			result.Authorizer = "unreachable"
			result.fail("authorizer", fmt.Sprintf("Authorizer ping failed: %v", err))
			log.Warn("health check failed: authorizer ping", zap.Error(err))
		} else {
			result.Authorizer = "ok"
			result.Details["authorizer_url"] = cfg.AuthzURL
		}
	}

	if result.Healthy() {
		log.Debug("health check passed")
	}
	return result
}
