package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "guestcal"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultSeasonPrice    = 100.0
	DefaultOffSeasonPrice = 80.0

	// Tentative holds expire one hour after creation.
	DefaultHoldTTL       = 1 * time.Hour
	DefaultSweepInterval = 5 * time.Minute
	DefaultRoomLockTTL   = 10 * time.Second

	DefaultKafkaBrokers      = "localhost:9092"
	DefaultKafkaChangeTopic  = "calendar-changes"
	DefaultKafkaConsumerGrp  = "calendar-hub"
	DefaultKafkaMaxAttempts  = 3
	DefaultKafkaBatchTimeout = 10 * time.Millisecond

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
