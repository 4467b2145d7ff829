package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key formats. Patients and settings are cached per doctor and
// invalidated on every write.
const (
	SettingsKeyFmt = "settings:%d"
	PatientKeyFmt  = "patient:%d:%s"
	StockListFmt   = "stock:%d"
)

var client *redis.Client

// Init initializes the Redis connection. The server degrades gracefully
// when Redis is unreachable: every helper becomes a no-op.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when degraded)
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	doctorID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return doctorID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, doctorID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, doctorID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a doctor (on password change)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Del(ctx, key)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// SettingsKey is the cache key for a doctor's settings document
func SettingsKey(doctorID int) string {
	return fmt.Sprintf(SettingsKeyFmt, doctorID)
}

// PatientKey is the cache key for one patient record
func PatientKey(doctorID int, fileID string) string {
	return fmt.Sprintf(PatientKeyFmt, doctorID, fileID)
}

// StockListKey is the cache key for a doctor's inventory list
func StockListKey(doctorID int) string {
	return fmt.Sprintf(StockListFmt, doctorID)
}

// InvalidatePatient drops the cached record after a chart or plan write
func InvalidatePatient(ctx context.Context, doctorID int, fileID string) {
	InvalidateKeys(ctx, PatientKey(doctorID, fileID))
}

// InvalidateSettings drops the cached settings document
func InvalidateSettings(ctx context.Context, doctorID int) {
	InvalidateKeys(ctx, SettingsKey(doctorID))
}

// InvalidateStock drops the cached inventory list
func InvalidateStock(ctx context.Context, doctorID int) {
	InvalidateKeys(ctx, StockListKey(doctorID))
}
