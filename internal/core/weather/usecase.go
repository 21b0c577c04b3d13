package weather

import (
	"context"
	"fmt"
	"time"

	"weatherdialog.app/internal/core/dialog"
	"weatherdialog.app/internal/core/forecast"
	"weatherdialog.app/internal/core/intent"
	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

type handlerFunc func(uc *UseCase, ctx context.Context, req intent.Request) ([]dialog.Dialog, error)

func single(fn func(uc *UseCase, ctx context.Context, req intent.Request) (dialog.Dialog, error)) handlerFunc {
	return func(uc *UseCase, ctx context.Context, req intent.Request) ([]dialog.Dialog, error) {
		d, err := fn(uc, ctx, req)
		if err != nil {
			return nil, err
		}
		return []dialog.Dialog{d}, nil
	}
}

var handlers = map[string]handlerFunc{
	IntentCurrent:       (*UseCase).CurrentWeather,
	IntentHour:          single((*UseCase).OneHourForecast),
	IntentDay:           single((*UseCase).OneDayForecast),
	IntentDays:          (*UseCase).MultiDayForecast,
	IntentWeekend:       (*UseCase).WeekendForecast,
	IntentWeek:          (*UseCase).WeekSummary,
	IntentTemperature:   single((*UseCase).Temperature),
	IntentCondition:     single((*UseCase).Condition),
	IntentWind:          single((*UseCase).Wind),
	IntentHumidity:      single((*UseCase).Humidity),
	IntentSunrise:       single((*UseCase).Sunrise),
	IntentSunset:        single((*UseCase).Sunset),
	IntentPrecipitation: single((*UseCase).NextPrecipitation),
}

// Intents returns the names Handle accepts
func Intents() []string {
	return sortedIntents(handlers)
}

type UseCase struct {
	provider ports.ForecastProvider
	cache    ports.ForecastCache
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsCollector
	clock    ports.Clock
	resolver *intent.Resolver
}

type UseCaseDependencies struct {
	Provider          ports.ForecastProvider
	Cache             ports.ForecastCache
	Geocoder          ports.Geocoder
	DatetimeExtractor ports.DatetimeExtractor
	Config            ports.ConfigProvider
	Logger            ports.Logger
	Metrics           ports.MetricsCollector
	Clock             ports.Clock
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("forecast provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}

	deviceTZ, err := time.LoadLocation(deps.Config.GetDeviceConfig().Timezone)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid device timezone", err)
	}

	resolver, err := intent.NewResolver(intent.ResolverDependencies{
		Geocoder:          deps.Geocoder,
		DatetimeExtractor: deps.DatetimeExtractor,
		Clock:             deps.Clock,
		DeviceTimezone:    deviceTZ,
	})
	if err != nil {
		return nil, err
	}

	return &UseCase{
		provider: deps.Provider,
		cache:    deps.Cache,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		clock:    deps.Clock,
		resolver: resolver,
	}, nil
}

// Handle answers a request for the named intent
func (uc *UseCase) Handle(ctx context.Context, name string, req intent.Request) (*Response, error) {
	handler, ok := handlers[name]
	if !ok {
		return nil, errors.NewNotFoundError("unknown intent " + name)
	}
	if err := validateRequest(name, req); err != nil {
		return nil, errors.NewValidationError("invalid weather request: " + err.Error())
	}

	start := time.Now()
	uc.logger.Debug("Handling weather intent",
		ports.F("intent", name),
		ports.F("location", req.Location),
		ports.F("timeframe", req.Timeframe))

	dialogs, err := handler(uc, ctx, req)
	duration := time.Since(start)
	if err != nil {
		uc.metrics.RecordIntent(ctx, name, errors.TypeOf(err).String(), duration)
		uc.logger.Error("Failed to handle weather intent",
			ports.F("intent", name),
			ports.F("error", err),
			ports.F("duration_ms", duration.Milliseconds()))
		return nil, fmt.Errorf("handle %s intent: %w", name, err)
	}

	uc.metrics.RecordIntent(ctx, name, "success", duration)
	uc.logger.Debug("Weather intent handled",
		ports.F("intent", name),
		ports.F("dialogs", len(dialogs)),
		ports.F("duration_ms", duration.Milliseconds()))
	return &Response{Intent: name, Dialogs: dialogs}, nil
}

// session is everything one request is answered from
type session struct {
	report    *forecast.WeatherReport
	composer  *dialog.Composer
	timeframe forecast.Timeframe
	anchor    time.Time
	requested time.Time
}

func (s *session) weatherForIntent() (forecast.Forecast, error) {
	return s.report.WeatherForIntent(s.timeframe, s.anchor, s.requested)
}

// prepare resolves where and when the request is about, then fetches the
// forecast for that place.
func (uc *UseCase) prepare(ctx context.Context, req intent.Request) (*session, error) {
	device := uc.config.GetDeviceConfig()
	if req.Language == "" {
		req.Language = device.Language
	}

	ictx := uc.resolver.NewContext(req)
	geo, err := ictx.Geolocation(ctx)
	if err != nil {
		return nil, err
	}
	anchor, requested, err := ictx.Datetimes(ctx)
	if err != nil {
		return nil, err
	}

	units := forecast.ResolveUnits(req.Unit, device.TemperatureUnit, device.SystemUnit)
	query := ports.ForecastQuery{
		MeasurementSystem: units.MeasurementSystem,
		Latitude:          device.Latitude,
		Longitude:         device.Longitude,
		Language:          intent.ProviderLanguage(req.Language),
	}
	if !geo.IsZero() {
		query.Latitude = geo.Latitude
		query.Longitude = geo.Longitude
	}

	payload, err := uc.fetchPayload(ctx, query)
	if err != nil {
		return nil, err
	}
	report, err := forecast.NewWeatherReport(payload)
	if err != nil {
		return nil, err
	}

	return &session{
		report: report,
		composer: dialog.NewComposer(dialog.Settings{
			Units:         units,
			DeviceCountry: device.Country,
			Geolocation:   geo,
			Now:           anchor,
		}),
		timeframe: req.ResolveTimeframe(),
		anchor:    anchor,
		requested: requested,
	}, nil
}

// CurrentWeather speaks the weather for the requested timeframe. Current
// conditions are followed by today's high and low.
func (uc *UseCase) CurrentWeather(ctx context.Context, req intent.Request) ([]dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	entry, err := s.weatherForIntent()
	if err != nil {
		return nil, err
	}
	if current, ok := entry.(*forecast.CurrentWeather); ok {
		return []dialog.Dialog{s.composer.CurrentWeather(current), s.composer.HighLow(current)}, nil
	}
	return []dialog.Dialog{s.composer.Weather(entry)}, nil
}

// OneHourForecast speaks the weather of the coming hour
func (uc *UseCase) OneHourForecast(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}

	hour, err := s.report.ForecastForHour(s.anchor, s.anchor)
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.HourlyWeather(hour), nil
}

// OneDayForecast speaks the weather of the requested day
func (uc *UseCase) OneDayForecast(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}

	day, err := s.report.ForecastForDate(s.anchor, s.requested)
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.DailyWeather(day), nil
}

// MultiDayForecast speaks the weather of each of the next req.Days days
func (uc *UseCase) MultiDayForecast(ctx context.Context, req intent.Request) ([]dialog.Dialog, error) {
	days := req.Days
	if days == 0 {
		days = DefaultForecastDays
	}

	s, err := uc.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	forecasts, err := s.report.ForecastForMultipleDays(days)
	if err != nil {
		return nil, err
	}
	return uc.dailyDialogs(s, forecasts), nil
}

// WeekendForecast speaks the weather of the coming Saturday and Sunday
func (uc *UseCase) WeekendForecast(ctx context.Context, req intent.Request) ([]dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	weekend := s.report.WeekendForecast()
	if len(weekend) == 0 {
		return nil, errors.NewHorizonExceededError("no weekend in the forecast", time.Saturday.String())
	}
	return uc.dailyDialogs(s, weekend), nil
}

// WeekSummary speaks an overview of the coming week
func (uc *UseCase) WeekSummary(ctx context.Context, req intent.Request) ([]dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	days := s.report.Daily
	if len(days) > WeekLength {
		days = days[:WeekLength]
	}
	return s.composer.WeekSummary(days), nil
}

func (uc *UseCase) dailyDialogs(s *session, days []*forecast.DailyWeather) []dialog.Dialog {
	dialogs := make([]dialog.Dialog, 0, len(days))
	for _, day := range days {
		dialogs = append(dialogs, s.composer.DailyWeather(day))
	}
	return dialogs
}

// Temperature speaks a temperature; req.Aspect may ask for the high or low
func (uc *UseCase) Temperature(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}

	entry, err := s.weatherForIntent()
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.Temperature(entry, dialog.ParseQualifier(req.Aspect)), nil
}

// Condition answers whether the condition named by req.Aspect is expected
func (uc *UseCase) Condition(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	requested, ok := dialog.RequestedCondition(req.Aspect)
	if !ok {
		return dialog.Dialog{}, errors.NewValidationError(fmt.Sprintf("unknown condition %q", req.Aspect))
	}

	s, err := uc.prepare(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}

	entry, err := s.weatherForIntent()
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.Condition(entry, requested), nil
}

// Wind speaks the wind for the requested timeframe
func (uc *UseCase) Wind(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}

	entry, err := s.weatherForIntent()
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.Wind(entry), nil
}

// Humidity speaks the humidity for the requested timeframe
func (uc *UseCase) Humidity(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}

	entry, err := s.weatherForIntent()
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.Humidity(entry)
}

// Sunrise speaks today's or the requested day's sunrise
func (uc *UseCase) Sunrise(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, entry, err := uc.sunEventEntry(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.Sunrise(entry)
}

// Sunset speaks today's or the requested day's sunset
func (uc *UseCase) Sunset(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, entry, err := uc.sunEventEntry(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}
	return s.composer.Sunset(entry)
}

// Hours carry no sunrise or sunset, so an hourly request is answered from
// the day it falls on.
func (uc *UseCase) sunEventEntry(ctx context.Context, req intent.Request) (*session, forecast.Forecast, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if s.timeframe == forecast.TimeframeCurrent {
		return s, s.report.Current, nil
	}

	day, err := s.report.ForecastForDate(s.anchor, s.requested)
	if err != nil {
		return nil, nil, err
	}
	return s, day, nil
}

// NextPrecipitation speaks when precipitation is next expected
func (uc *UseCase) NextPrecipitation(ctx context.Context, req intent.Request) (dialog.Dialog, error) {
	s, err := uc.prepare(ctx, req)
	if err != nil {
		return dialog.Dialog{}, err
	}

	entry, timeframe := s.report.NextPrecipitation(s.anchor)
	return s.composer.NextPrecipitation(entry, timeframe), nil
}

// RefreshDeviceForecast fetches the forecast of the configured device
// location and stores it in the cache, whatever the cache holds.
func (uc *UseCase) RefreshDeviceForecast(ctx context.Context) error {
	device := uc.config.GetDeviceConfig()
	units := forecast.ResolveUnits("", device.TemperatureUnit, device.SystemUnit)
	query := ports.ForecastQuery{
		MeasurementSystem: units.MeasurementSystem,
		Latitude:          device.Latitude,
		Longitude:         device.Longitude,
		Language:          intent.ProviderLanguage(device.Language),
	}

	payload, err := uc.fetchFromProvider(ctx, query)
	if err != nil {
		return fmt.Errorf("refresh device forecast: %w", err)
	}
	if _, err := forecast.NewWeatherReport(payload); err != nil {
		return fmt.Errorf("refresh device forecast: %w", err)
	}
	uc.store(ctx, query, payload)
	return nil
}

// fetchPayload serves a provider response from the cache while it is fresh
func (uc *UseCase) fetchPayload(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastPayload, error) {
	cfg := uc.config.GetWeatherConfig()
	if !cfg.EnableCache {
		return uc.fetchFromProvider(ctx, query)
	}

	key := CacheKey(query)
	cached, err := uc.cache.Get(ctx, key)
	if err == nil && cached != nil && cached.Payload != nil && uc.clock.Now().Sub(cached.FetchedAt) < cfg.CacheTTL {
		uc.metrics.RecordCacheHit(ctx)
		uc.logger.Debug("Forecast found in cache", ports.F("key", key))
		return cached.Payload, nil
	}
	if err != nil && !errors.IsNotFoundError(err) {
		uc.logger.Warn("Failed to read forecast cache", ports.F("key", key), ports.F("error", err))
	}
	uc.metrics.RecordCacheMiss(ctx)

	payload, err := uc.fetchFromProvider(ctx, query)
	if err != nil {
		return nil, err
	}
	uc.store(ctx, query, payload)
	return payload, nil
}

func (uc *UseCase) store(ctx context.Context, query ports.ForecastQuery, payload *ports.ForecastPayload) {
	cfg := uc.config.GetWeatherConfig()
	if !cfg.EnableCache {
		return
	}

	key := CacheKey(query)
	entry := &ports.CachedForecast{FetchedAt: uc.clock.Now(), Payload: payload}
	if err := uc.cache.Set(ctx, key, entry, cfg.CacheTTL); err != nil {
		uc.logger.Warn("Failed to cache forecast", ports.F("key", key), ports.F("error", err))
	}
}

func (uc *UseCase) fetchFromProvider(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastPayload, error) {
	payload, err := uc.provider.FetchForecast(ctx, query)
	uc.metrics.RecordWeatherAPICall(ctx, uc.provider.GetProviderName(), err == nil)
	if err != nil {
		// Keep typed provider errors, a 401 in particular
		if errors.TypeOf(err) != errors.ErrorTypeUnknown {
			return nil, err
		}
		return nil, errors.NewExternalAPIError("forecast provider failed", err)
	}
	return payload, nil
}
