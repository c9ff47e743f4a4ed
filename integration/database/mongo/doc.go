// Package mongo provides production-ready MongoDB client initialization and
// health checking.
//
// This package wraps the official MongoDB Go driver with application-level
// retry logic optimized for cloud deployments, particularly MongoDB Atlas.
// Both New and NewWithDatabase retry connection attempts to ride out Atlas
// cold starts (5-8 seconds) and brief network interruptions that could
// otherwise fail application startup, and verify the connection with a ping
// before returning.
//
// Basic usage:
//
//	import (
//		"context"
//		"log"
//
//		"github.com/amethyst-live/identity/core/config"
//		"github.com/amethyst-live/identity/integration/database/mongo"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		var cfg mongo.Config
//		config.MustLoad(&cfg)
//
//		client, err := mongo.New(ctx, cfg)
//		if err != nil {
//			log.Fatal("Failed to connect to MongoDB:", err)
//		}
//		defer client.Disconnect(ctx)
//	}
//
// # Configuration
//
// Configuration is handled through environment variables via the Config
// struct. The default values are optimized for MongoDB Atlas deployments:
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Health Checking
//
// Healthcheck returns a probe function for Kubernetes probes or HTTP
// endpoints:
//
//	probe := mongo.Healthcheck(client)
//	if err := probe(ctx); err != nil {
//		// database unhealthy
//	}
//
// # Error Handling
//
// The package defines domain-specific errors:
//
//	ErrFailedToConnectToMongo - Returned when all retry attempts are exhausted
//	ErrHealthcheckFailed      - Returned when the health check ping fails
package mongo
