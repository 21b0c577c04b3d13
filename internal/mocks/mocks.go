// Package mocks provides testify mocks of the ports used across package tests.
// Constructors register AssertExpectations as a test cleanup.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"weatherdialog.app/internal/ports"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// ForecastProvider mocks ports.ForecastProvider
type ForecastProvider struct {
	mock.Mock
}

func NewForecastProvider(t testingT) *ForecastProvider {
	m := &ForecastProvider{}
	register(&m.Mock, t)
	return m
}

func (m *ForecastProvider) FetchForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastPayload, error) {
	args := m.Called(ctx, query)
	payload, _ := args.Get(0).(*ports.ForecastPayload)
	return payload, args.Error(1)
}

func (m *ForecastProvider) GetProviderName() string {
	args := m.Called()
	return args.String(0)
}

// ForecastCache mocks ports.ForecastCache
type ForecastCache struct {
	mock.Mock
}

func NewForecastCache(t testingT) *ForecastCache {
	m := &ForecastCache{}
	register(&m.Mock, t)
	return m
}

func (m *ForecastCache) Get(ctx context.Context, key string) (*ports.CachedForecast, error) {
	args := m.Called(ctx, key)
	cached, _ := args.Get(0).(*ports.CachedForecast)
	return cached, args.Error(1)
}

func (m *ForecastCache) Set(ctx context.Context, key string, forecast *ports.CachedForecast, ttl time.Duration) error {
	args := m.Called(ctx, key, forecast, ttl)
	return args.Error(0)
}

// Geocoder mocks ports.Geocoder
type Geocoder struct {
	mock.Mock
}

func NewGeocoder(t testingT) *Geocoder {
	m := &Geocoder{}
	register(&m.Mock, t)
	return m
}

func (m *Geocoder) Geolocate(ctx context.Context, place string) (*ports.GeoLocation, error) {
	args := m.Called(ctx, place)
	geo, _ := args.Get(0).(*ports.GeoLocation)
	return geo, args.Error(1)
}

// DatetimeExtractor mocks ports.DatetimeExtractor
type DatetimeExtractor struct {
	mock.Mock
}

func NewDatetimeExtractor(t testingT) *DatetimeExtractor {
	m := &DatetimeExtractor{}
	register(&m.Mock, t)
	return m
}

func (m *DatetimeExtractor) Extract(utterance string, anchor time.Time, language string) (*ports.ExtractedDatetime, error) {
	args := m.Called(utterance, anchor, language)
	extracted, _ := args.Get(0).(*ports.ExtractedDatetime)
	return extracted, args.Error(1)
}

// CacheProvider mocks ports.CacheProvider
type CacheProvider struct {
	mock.Mock
}

func NewCacheProvider(t testingT) *CacheProvider {
	m := &CacheProvider{}
	register(&m.Mock, t)
	return m
}

func (m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *CacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *CacheProvider) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MetricsCollector mocks ports.MetricsCollector
type MetricsCollector struct {
	mock.Mock
}

func NewMetricsCollector(t testingT) *MetricsCollector {
	m := &MetricsCollector{}
	register(&m.Mock, t)
	return m
}

func (m *MetricsCollector) RecordCacheHit(ctx context.Context) {
	m.Called(ctx)
}

func (m *MetricsCollector) RecordCacheMiss(ctx context.Context) {
	m.Called(ctx)
}

func (m *MetricsCollector) RecordWeatherAPICall(ctx context.Context, provider string, success bool) {
	m.Called(ctx, provider, success)
}

func (m *MetricsCollector) RecordIntent(ctx context.Context, intent string, outcome string, duration time.Duration) {
	m.Called(ctx, intent, outcome, duration)
}

// Logger discards every entry. Tests that care about logging use a
// RecordingLogger.
type Logger struct{}

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Debug(msg string, fields ...ports.Field) {}
func (l *Logger) Info(msg string, fields ...ports.Field)  {}
func (l *Logger) Warn(msg string, fields ...ports.Field)  {}
func (l *Logger) Error(msg string, fields ...ports.Field) {}

// LogEntry is one call recorded by RecordingLogger
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// RecordingLogger keeps every entry in memory
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, msg string, fields []ports.Field) {
	entry := LogEntry{Level: level, Message: msg, Fields: make(map[string]interface{}, len(fields))}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *RecordingLogger) Debug(msg string, fields ...ports.Field) { l.record("debug", msg, fields) }
func (l *RecordingLogger) Info(msg string, fields ...ports.Field)  { l.record("info", msg, fields) }
func (l *RecordingLogger) Warn(msg string, fields ...ports.Field)  { l.record("warn", msg, fields) }
func (l *RecordingLogger) Error(msg string, fields ...ports.Field) { l.record("error", msg, fields) }

// Entries returns a copy of the recorded entries
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Messages returns the recorded messages in order
func (l *RecordingLogger) Messages() []string {
	entries := l.Entries()
	messages := make([]string, len(entries))
	for i, e := range entries {
		messages[i] = e.Message
	}
	return messages
}

// Clock always returns the same instant
type Clock struct {
	Instant time.Time
}

func NewClock(instant time.Time) *Clock {
	return &Clock{Instant: instant}
}

func (c *Clock) Now() time.Time {
	return c.Instant
}

// ConfigProvider returns fixed configuration sections
type ConfigProvider struct {
	Weather   ports.WeatherConfig
	Device    ports.DeviceConfig
	Server    ports.ServerConfig
	Cache     ports.CacheConfig
	Scheduler ports.SchedulerConfig
}

func (c *ConfigProvider) GetWeatherConfig() ports.WeatherConfig     { return c.Weather }
func (c *ConfigProvider) GetDeviceConfig() ports.DeviceConfig       { return c.Device }
func (c *ConfigProvider) GetServerConfig() ports.ServerConfig       { return c.Server }
func (c *ConfigProvider) GetCacheConfig() ports.CacheConfig         { return c.Cache }
func (c *ConfigProvider) GetSchedulerConfig() ports.SchedulerConfig { return c.Scheduler }
