// database/connection.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gewnthar/airportmin/config"
	"github.com/go-sql-driver/mysql"
)

var DB *sql.DB

// DSN builds the MySQL/MariaDB connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	port := cfg.Port
	if port == "" {
		port = "3306"
	}
	mc.Addr = cfg.Host + ":" + port
	mc.DBName = cfg.DBName
	mc.ParseTime = true
	return mc.FormatDSN()
}

// InitDB initializes the database connection pool and creates missing tables.
func InitDB(cfg config.DatabaseConfig) error {
	var err error
	DB, err = sql.Open("mysql", DSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(10)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		DB.Close()
		DB = nil
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err = EnsureSchema(); err != nil {
		DB.Close()
		DB = nil
		return err
	}

	log.Println("Database: Successfully connected to the database!")
	return nil
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
		DB = nil
		log.Println("Database: Connection closed.")
	}
}
