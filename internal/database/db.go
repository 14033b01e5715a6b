package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/redis/go-redis/v9"

	"emberarena/internal/config"
)

const maxRetries = 10

// OpenMySQL opens the MySQL pool and waits for the server to answer.
func OpenMySQL(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.MySQLDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	// Test the connection with retries
	for i := 1; i <= maxRetries; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		log.Printf("Waiting for MySQL... (%d/%d)", i, maxRetries)
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to mysql after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Successfully connected to MySQL database")
	return db, nil
}

// OpenRedis creates the Redis client and waits for the server to answer.
func OpenRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	var err error
	for i := 1; i <= maxRetries; i++ {
		err = client.Ping(ctx).Err()
		if err == nil {
			break
		}
		log.Printf("Waiting for Redis... (%d/%d)", i, maxRetries)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis after %d attempts: %w", maxRetries, err)
	}

	log.Println("Successfully connected to Redis")
	return client, nil
}
