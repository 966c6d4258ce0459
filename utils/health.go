package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			redisOK := redisClient != nil && redisClient.Ping(ctx).Err() == nil

			mongoOK := false
			if mongoClient != nil {
				pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
				mongoOK = mongoClient.Ping(pingCtx, nil) == nil
				cancel()
			}

			healthMu.Lock()
			currentHealth = HealthStatus{
				Mongo:     mongoOK,
				Redis:     redisOK,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
