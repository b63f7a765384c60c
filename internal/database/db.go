package database

import (
	"database/sql"
	"fmt"
	"log"

	"chillbills/internal/config"

	_ "github.com/lib/pq"
)

// Open connects to Postgres using the supplied settings and verifies the
// connection with a ping. The returned handle is the only shared mutable
// resource in the process; every component receives it by injection.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	log.Printf("Connecting to database: host=%s port=%s user=%s db=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Name, cfg.SSLMode)

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Println("Connected to database successfully")
	return db, nil
}
