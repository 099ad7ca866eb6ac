package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"quizforge-api/internal/db/migrations"
	"quizforge-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect() (*gorm.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Configure GORM logger
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.MigrationRecord{},
		&models.User{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.MonthlyUsage{},
		&models.UsageLogEntry{},
	); err != nil {
		return nil, fmt.Errorf("error migrating database: %v", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("error running migrations: %v", err)
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	migrationsList := migrations.GetMigrations()

	for _, migration := range migrationsList {
		var record models.MigrationRecord
		result := db.Where("name = ?", migration.Name).First(&record)

		if result.Error == gorm.ErrRecordNotFound {
			log.Printf("Running migration: %s", migration.Name)

			err := db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Run(tx); err != nil {
					return err
				}

				return tx.Create(&models.MigrationRecord{Name: migration.Name}).Error
			})

			if err != nil {
				return fmt.Errorf("migration '%s' failed: %v", migration.Name, err)
			}
		} else if result.Error != nil {
			return fmt.Errorf("failed to check migration status: %v", result.Error)
		}
	}

	return nil
}
