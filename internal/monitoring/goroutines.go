package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// GoroutineMonitor tracks goroutine counts and any registered gauges, such as
// the number of live sessions, and warns when the process looks like it leaks.
type GoroutineMonitor struct {
	mu             sync.RWMutex
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	lastAlert      time.Time
	alertCooldown  time.Duration
	stopChan       chan struct{}
	stopOnce       sync.Once
	gauges         map[string]func() int
	gaugeValues    map[string]int
	logger         zerolog.Logger
	numGoroutine   func() int
	now            func() time.Time
}

// MonitorConfig tunes a GoroutineMonitor; zero fields take defaults
type MonitorConfig struct {
	CheckInterval  time.Duration
	AlertThreshold int
	AlertCooldown  time.Duration
}

// NewGoroutineMonitor creates a new goroutine monitor
func NewGoroutineMonitor(cfg MonitorConfig, logger zerolog.Logger) *GoroutineMonitor {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 30 * time.Second
	}
	if cfg.AlertThreshold <= 0 {
		cfg.AlertThreshold = 1000
	}
	if cfg.AlertCooldown <= 0 {
		cfg.AlertCooldown = 5 * time.Minute
	}
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  cfg.CheckInterval,
		alertThreshold: cfg.AlertThreshold,
		alertCooldown:  cfg.AlertCooldown,
		stopChan:       make(chan struct{}),
		gauges:         make(map[string]func() int),
		gaugeValues:    make(map[string]int),
		logger:         logger.With().Str("component", "GoroutineMonitor").Logger(),
		numGoroutine:   runtime.NumGoroutine,
		now:            time.Now,
	}
}

// Start begins monitoring goroutines
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	gm.logger.Info().
		Int("baseline", gm.baseline).
		Dur("interval", gm.checkInterval).
		Msg("Started goroutine monitoring")
}

// Stop stops the monitor. It is safe to call more than once.
func (gm *GoroutineMonitor) Stop() {
	gm.stopOnce.Do(func() { close(gm.stopChan) })
}

// monitor is the main monitoring loop
func (gm *GoroutineMonitor) monitor() {
	defer func() {
		if r := recover(); r != nil {
			gm.logger.Error().
				Interface("panic", r).
				Msg("Goroutine monitor panicked - restarting")
			time.Sleep(5 * time.Second)
			go gm.monitor()
		}
	}()

	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Check()
		case <-gm.stopChan:
			return
		}
	}
}

// Check samples the goroutine count and every gauge, and alerts if needed
func (gm *GoroutineMonitor) Check() {
	current := gm.numGoroutine()

	gm.mu.RLock()
	gauges := make(map[string]func() int, len(gm.gauges))
	for name, fn := range gm.gauges {
		gauges[name] = fn
	}
	gm.mu.RUnlock()

	values := make(map[string]int, len(gauges))
	for name, fn := range gauges {
		values[name] = fn()
	}

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}
	for name, v := range values {
		gm.gaugeValues[name] = v
	}

	growth := current - gm.baseline
	growthRate := 0.0
	if gm.baseline > 0 {
		growthRate = float64(growth) / float64(gm.baseline) * 100
	}

	now := gm.now()
	shouldAlert := current > gm.alertThreshold && now.Sub(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = now
	}
	peak := gm.peak
	gm.mu.Unlock()

	event := gm.logger.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", peak).
		Float64("growth_rate", growthRate)
	for name, v := range values {
		event = event.Int(name, v)
	}
	event.Msg("Goroutine metrics")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("threshold", gm.alertThreshold).
			Float64("growth_rate", growthRate).
			Msg("High goroutine count detected - possible leak")
	}
}

// RegisterGauge adds a named value sampled on every check
func (gm *GoroutineMonitor) RegisterGauge(name string, fn func() int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.gauges[name] = fn
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:  gm.current,
		Baseline: gm.baseline,
		Peak:     gm.peak,
		Growth:   gm.current - gm.baseline,
		Gauges:   copyMap(gm.gaugeValues),
	}
}

// AlertedAt returns when the last leak warning fired, zero if never
func (gm *GoroutineMonitor) AlertedAt() time.Time {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return gm.lastAlert
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current  int            `json:"current"`
	Baseline int            `json:"baseline"`
	Peak     int            `json:"peak"`
	Growth   int            `json:"growth"`
	Gauges   map[string]int `json:"gauges"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
