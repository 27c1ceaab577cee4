package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvSeasonPrice    = "SEASON_PRICE"
	EnvOffSeasonPrice = "OFF_SEASON_PRICE"

	EnvHoldTTL       = "HOLD_TTL"
	EnvSweepInterval = "SWEEP_INTERVAL"
	EnvRoomLockTTL   = "ROOM_LOCK_TTL"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaChangeTopic  = "KAFKA_CHANGE_TOPIC"
	EnvKafkaConsumerGrp  = "KAFKA_CONSUMER_GROUP"
	EnvKafkaMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
