// Package cache provides the redis client and page-cache helpers.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the shared redis client. It is nil when redis is unavailable,
// in which case every helper degrades to a cache miss.
var Client *redis.Client

// InitRedis connects to redis at addr and verifies the connection.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// GetClient returns the shared redis client (possibly nil).
func GetClient() *redis.Client {
	return Client
}
