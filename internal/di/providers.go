package di

import (
	"context"
	"fmt"
	"time"

	"DormBack/internal/domain/repository"
	domsvc "DormBack/internal/domain/service"
	"DormBack/internal/handler/api"
	"DormBack/internal/keysource"
	internalrepo "DormBack/internal/repository"
	"DormBack/internal/signer"
	"DormBack/internal/synthetic"
	"DormBack/internal/usecase"
	"DormBack/pkg/cache"
	pkgch "DormBack/pkg/clickhouse"
	"DormBack/pkg/config"
	xhttp "DormBack/pkg/http"
	pkgkafka "DormBack/pkg/kafka"
	applogger "DormBack/pkg/logger"
	"DormBack/pkg/metrics"
	"DormBack/pkg/queue"
	"DormBack/pkg/server"

	goredis "github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideGenerator creates the deterministic series generator.
func ProvideGenerator() domsvc.SeriesGenerator {
	return synthetic.NewGenerator()
}

// ProvideSigner selects the proof system once, at wiring time. Mock mode
// never touches the network; integration mode delegates to the verifier.
func ProvideSigner(cfg *config.Config) domsvc.Signer {
	if cfg.IsMock() {
		return signer.NewMock()
	}
	return signer.NewDelegate(cfg)
}

// ProvideKeySource selects key material per mode: throwaway keys for
// mock runs, CI-injected environment keys for integration runs.
func ProvideKeySource(cfg *config.Config) domsvc.KeySource {
	if cfg.IsMock() {
		return keysource.NewEphemeral()
	}
	return keysource.NewEnv()
}

// ProvideCache builds the series cache: layered memory+Redis when Redis
// is enabled, plain in-memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideClickHouseClient connects to ClickHouse when a component needs
// it. Returns nil when nothing in the current configuration stores points.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Fixtures.Backend != "clickhouse" && !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideStorage creates ClickHouse fixture storage, nil without a client.
func ProvideStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseSeriesStore(chClient.DB(), cfg.ClickHouse.Database+".fixture_points")
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend
// is selected.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Fixtures.Backend != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the Kafka fixture publisher, nil without a producer.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSeriesPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates the points consumer when enabled.
func ProvideKafkaConsumer(cfg *config.Config, log *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.HookFuncs{
		Err: func(_ context.Context, topic string, _ kafka.Message, _ []byte, err error) {
			log.Error("consumer handle error",
				applogger.String("topic", topic),
				applogger.Error(err))
		},
	})
	return consumer, nil
}

// ProvideKafkaPointsHandler registers the handler for the fixture topic.
func ProvideKafkaPointsHandler(store repository.Storage, m repository.Metrics, cfg *config.Config) pkgkafka.MessageHandler {
	if store == nil || !cfg.Kafka.Consumer.Enabled {
		return nil
	}
	return usecase.NewKafkaPointsHandler(cfg.Kafka.Topic, store, m)
}

// ProvideFixtureService creates the cached series service.
func ProvideFixtureService(
	gen domsvc.SeriesGenerator,
	c cache.Service,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.FixtureService {
	return usecase.NewFixtureService(gen, c, m, log, cfg.Fixtures.CacheTTL)
}

// ProvideSeriesProcessor creates the backend router.
func ProvideSeriesProcessor(
	pub repository.Publisher,
	store repository.Storage,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.SeriesProcessor {
	return usecase.NewSeriesProcessor(pub, store, m, cfg.Fixtures.Backend, cfg.Kafka.Producer.BatchSize)
}

// ProvideHarnessRunner creates the protocol harness.
func ProvideHarnessRunner(
	s domsvc.Signer,
	k domsvc.KeySource,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.HarnessRunner {
	return usecase.NewHarnessRunner(s, k, m, log, cfg.Mode)
}

// ProvideRunStore creates run state bookkeeping.
func ProvideRunStore(c cache.Service) *usecase.RunStore {
	return usecase.NewRunStore(c)
}

// ProvideGenerateRunJob creates the async run job.
func ProvideGenerateRunJob(
	fixtures *usecase.FixtureService,
	proc *usecase.SeriesProcessor,
	runs *usecase.RunStore,
	log *applogger.Logger,
) *usecase.GenerateRunJob {
	return usecase.NewGenerateRunJob(fixtures, proc, runs, log)
}

// ProvideRunQueue creates the Redis-backed run queue, nil when Redis is
// disabled.
func ProvideRunQueue(cfg *config.Config, log *applogger.Logger, job *usecase.GenerateRunJob) *queue.RedisQueue {
	if !cfg.Redis.Enabled {
		return nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	q := queue.NewRedisQueue(log,
		&queue.QueueConfig{
			Workers:    cfg.Queue.Workers,
			QueueSize:  1000,
			RetryLimit: cfg.Queue.RetryLimit,
			RetryDelay: cfg.Queue.RetryDelay,
		},
		client,
		queue.ModeProducerConsumer,
		queue.WithKeyPrefix("dormback:queue"),
	)
	q.RegisterJob(job)
	return q
}

// ProvideQueueService picks the run dispatcher: the Redis queue when
// available, an in-process fallback otherwise.
func ProvideQueueService(rq *queue.RedisQueue, job *usecase.GenerateRunJob, log *applogger.Logger) queue.QueueService {
	if rq != nil {
		return rq
	}
	return usecase.NewInlineQueue(log, job)
}

// ProvideStreamHandler creates the WebSocket replay handler.
func ProvideStreamHandler(log *applogger.Logger, fixtures *usecase.FixtureService, cfg *config.Config) *api.StreamEchoHandler {
	return api.NewStreamEchoHandler(log, fixtures, cfg.Fixtures.ReplayGap)
}

// ProvideHTTPHandler creates the Echo route registrar.
func ProvideHTTPHandler(
	log *applogger.Logger,
	fixtures *usecase.FixtureService,
	harness *usecase.HarnessRunner,
	runs *usecase.RunStore,
	qs queue.QueueService,
	store repository.Storage,
	stream *api.StreamEchoHandler,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewFixturesEchoHandler(log, fixtures, harness, runs, qs, store, stream, cfg.Fixtures.Backend)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	runQueue *queue.RedisQueue,
	qs queue.QueueService,
	proc *usecase.SeriesProcessor,
) *server.App {
	return server.New(cfg, log, handler, consumer, kh, chClient, runQueue, qs, proc)
}
