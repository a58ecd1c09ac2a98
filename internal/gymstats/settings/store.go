package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymstreak/internal/streak"
	"github.com/2beens/gymstreak/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	settingsKeyPrefix = "gymstreak::settings::"

	DefaultCacheSize = 10 * 1024 * 1024 // 10 MB
	DefaultCacheTTL  = 5 * time.Minute
)

// UserSettings is the stored (and JSON exposed) form of a user's streak settings.
type UserSettings struct {
	UserID         string `json:"userId,omitempty"`
	RestDaysBuffer int    `json:"restDaysBuffer"`
	Timezone       string `json:"timezone"`
}

func FromSettings(userID string, s streak.Settings) UserSettings {
	return UserSettings{
		UserID:         userID,
		RestDaysBuffer: s.RestDaysBuffer(),
		Timezone:       s.Timezone(),
	}
}

// Store keeps user settings in redis, with a small in-process read cache in front.
// Settings are validated on write; reads of users with nothing stored yield defaults.
type Store struct {
	redisClient *redis.Client
	cache       *freecache.Cache
	cacheTTL    time.Duration
}

func NewStore(redisClient *redis.Client, cacheSize int, cacheTTL time.Duration) *Store {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Store{
		redisClient: redisClient,
		cache:       freecache.NewCache(cacheSize),
		cacheTTL:    cacheTTL,
	}
}

func settingsKey(userID string) string {
	return settingsKeyPrefix + userID
}

func (s *Store) Get(ctx context.Context, userID string) (_ streak.Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.gymstats.settings.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	key := settingsKey(userID)
	if cached, err := s.cache.Get([]byte(key)); err == nil {
		span.SetAttributes(attribute.Bool("settings.from-cache", true))
		return decodeSettings(cached)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Warnf("settings cache get [%s]: %s", userID, err)
	}
	span.SetAttributes(attribute.Bool("settings.from-cache", false))

	settingsJson, err := s.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Tracef("no settings stored for user [%s], using defaults", userID)
		return streak.DefaultSettings(), nil
	}
	if err != nil {
		return streak.Settings{}, fmt.Errorf("redis get settings: %w", err)
	}

	settings, err := decodeSettings(settingsJson)
	if err != nil {
		return streak.Settings{}, err
	}

	s.cacheSet(key, settingsJson)

	return settings, nil
}

// Set validates and stores the settings for a user.
func (s *Store) Set(ctx context.Context, userID string, restDaysBuffer int, timezone string) (_ streak.Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.gymstats.settings.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.Int("rest_days_buffer", restDaysBuffer))
	span.SetAttributes(attribute.String("timezone", timezone))

	settings, err := streak.NewSettings(restDaysBuffer, timezone)
	if err != nil {
		return streak.Settings{}, err
	}

	settingsJson, err := json.Marshal(FromSettings("", settings))
	if err != nil {
		return streak.Settings{}, fmt.Errorf("marshal settings: %w", err)
	}

	key := settingsKey(userID)
	if err := s.redisClient.Set(ctx, key, string(settingsJson), 0).Err(); err != nil {
		s.cache.Del([]byte(key))
		return streak.Settings{}, fmt.Errorf("redis set settings: %w", err)
	}

	s.cacheSet(key, settingsJson)

	return settings, nil
}

// Delete removes stored settings, so the user falls back to defaults.
func (s *Store) Delete(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.gymstats.settings.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	key := settingsKey(userID)
	s.cache.Del([]byte(key))
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del settings: %w", err)
	}
	return nil
}

func (s *Store) CacheHitCount() int64 {
	return s.cache.HitCount()
}

func (s *Store) CacheMissCount() int64 {
	return s.cache.MissCount()
}

func (s *Store) cacheSet(key string, settingsJson []byte) {
	if err := s.cache.Set([]byte(key), settingsJson, int(s.cacheTTL.Seconds())); err != nil {
		log.Warnf("settings cache set [%s]: %s", key, err)
	}
}

func decodeSettings(settingsJson []byte) (streak.Settings, error) {
	var stored UserSettings
	if err := json.Unmarshal(settingsJson, &stored); err != nil {
		return streak.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return streak.NewSettings(stored.RestDaysBuffer, stored.Timezone)
}
