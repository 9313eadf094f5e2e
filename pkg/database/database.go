package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens Postgres when DATABASE_URL or the discrete DB_* vars are
// set, and falls back to a local SQLite file for development.
func ConnectDB() *gorm.DB {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	cfg := &gorm.Config{
		Logger: newLogger,
		// Map driver duplicate-key errors onto gorm.ErrDuplicatedKey so the
		// service layer can surface them as conflicts
		TranslateError: true,
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" && os.Getenv("DB_HOST") != "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	var db *gorm.DB
	var err error
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // Disables implicit prepared statements for pooled/transaction-mode hosts
		}), cfg)
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "inventory.db"
		}
		log.Printf("DATABASE_URL not set, using local SQLite database at %s", path)
		db, err = gorm.Open(sqlite.Open(path), cfg)
	}

	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	// Connection Pooling Setup
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
	return db
}
