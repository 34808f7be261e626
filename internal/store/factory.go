package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/recordkit/recordsvc/internal/config"
	"github.com/recordkit/recordsvc/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Factory opens the configured backend kind once and hands out one
// instrumented Backend per document name.
type Factory struct {
	cfg    config.StoreConfig
	redis  *redis.Client
	prefix string
	mongo  *mongo.Client
	col    *mongo.Collection
	minio  *minio.Client
	bkt    string

	mu     sync.Mutex
	memory map[string]*MemoryBackend
}

// NewFactory connects to the backend selected by cfg.Store.Backend.
func NewFactory(ctx context.Context, cfg *config.Config) (*Factory, error) {
	f := &Factory{cfg: cfg.Store, memory: map[string]*MemoryBackend{}}
	switch cfg.Store.Backend {
	case config.BackendFile, config.BackendMemory:
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr(), err)
		}
		f.redis = client
		f.prefix = cfg.Redis.KeyPrefix
		logger.Infof("store: using redis at %s", cfg.Redis.Addr())
	case config.BackendMongo:
		client, err := connectMongoWithRetry(ctx, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		f.mongo = client
		f.col = client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		logger.Infof("store: using mongo collection %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	case config.BackendMinIO:
		mc, err := ConnectMinIO(ctx, MinIOOptions{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		})
		if err != nil {
			return nil, err
		}
		f.minio = mc
		f.bkt = cfg.MinIO.Bucket
		logger.Infof("store: using minio bucket %s at %s", cfg.MinIO.Bucket, cfg.MinIO.Endpoint)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return f, nil
}

// Backend returns the backend holding the named document.
func (f *Factory) Backend(document string) Backend {
	var b Backend
	switch f.cfg.Backend {
	case config.BackendMemory:
		f.mu.Lock()
		m, ok := f.memory[document]
		if !ok {
			m = NewMemoryBackend(document)
			f.memory[document] = m
		}
		f.mu.Unlock()
		b = m
	case config.BackendRedis:
		b = NewRedisBackend(f.redis, f.prefix+document)
	case config.BackendMongo:
		b = NewMongoBackend(f.col, document)
	case config.BackendMinIO:
		b = NewMinIOBackend(f.minio, f.bkt, document+".json")
	default:
		b = NewFileBackend(filepath.Join(f.cfg.DataDir, document+".json"))
	}
	return NewInstrumented(document, b)
}

// Close releases backend clients.
func (f *Factory) Close(ctx context.Context) error {
	if f.redis != nil {
		if err := f.redis.Close(); err != nil {
			return err
		}
	}
	if f.mongo != nil {
		return f.mongo.Disconnect(ctx)
	}
	return nil
}

// connectMongoWithRetry tolerates startup races with the database container.
func connectMongoWithRetry(ctx context.Context, cfg config.MongoDBConfig) (*mongo.Client, error) {
	const maxAttempts = 5
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := ConnectMongo(ctx, cfg.URI, cfg.Timeout)
		if err == nil {
			return client, nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", maxAttempts, lastErr)
}
