package repository

import (
	"context"
	"fmt"
	"time"

	"logscope/internal/config"
	"logscope/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLRepository stores one summary row per analysis run
type MySQLRepository struct {
	db *gorm.DB
}

// NewMySQLRepository creates a new MySQL repository and migrates its table
func NewMySQLRepository(cfg *config.MySQLConfig) (*MySQLRepository, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: gormLogger(),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	repo := &MySQLRepository{db: db}
	if err := repo.Migrate(); err != nil {
		repo.Close()
		return nil, err
	}

	log.Info().Msg("MySQL connected successfully")

	return repo, nil
}

// gormLogger silences gorm unless debug logging is on
func gormLogger() logger.Interface {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.Default.LogMode(logger.Info)
}

// Migrate creates or updates the summary table
func (r *MySQLRepository) Migrate() error {
	if err := r.db.AutoMigrate(&model.ReportSummary{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SaveSummary saves a report summary to MySQL
func (r *MySQLRepository) SaveSummary(ctx context.Context, summary *model.ReportSummary) error {
	return r.db.WithContext(ctx).Create(summary).Error
}

// Close closes the database connection
func (r *MySQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
