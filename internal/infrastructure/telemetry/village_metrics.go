package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when VillageMetrics is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

const defaultCollectInterval = 5 * time.Minute

// Prediction outcomes recorded by RecordPrediction
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
	OutcomeInvalid     = "invalid_response"
)

// ContentSnapshot is a point-in-time count of public content
type ContentSnapshot struct {
	ArticlesByStatus map[string]int64
	UMKMByDusun      map[string]int64
	TravelsByDusun   map[string]int64
}

// ContentStatsProvider supplies the periodic content counts
type ContentStatsProvider interface {
	ContentSnapshot(ctx context.Context) (*ContentSnapshot, error)
}

// VillageMetrics records portal activity and content gauges
type VillageMetrics struct {
	logger   *zap.Logger
	provider ContentStatsProvider
	interval time.Duration

	uploads     metric.Int64Counter
	predictions metric.Int64Counter
	logins      metric.Int64Counter

	articles metric.Int64Gauge
	umkm     metric.Int64Gauge
	travels  metric.Int64Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once
	wg          sync.WaitGroup
}

// VillageMetricsConfig configures VillageMetrics
type VillageMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	Provider        ContentStatsProvider
	CollectInterval time.Duration
}

// NewVillageMetrics registers the instruments on cfg.Meter
func NewVillageMetrics(cfg VillageMetricsConfig) (*VillageMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := cfg.CollectInterval
	if interval <= 0 {
		interval = defaultCollectInterval
	}

	vm := &VillageMetrics{
		logger:   logger,
		provider: cfg.Provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}

	counter := func(name, desc, unit string) (metric.Int64Counter, error) {
		return cfg.Meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	}
	gauge := func(name, desc, unit string) (metric.Int64Gauge, error) {
		return cfg.Meter.Int64Gauge(name, metric.WithDescription(desc), metric.WithUnit(unit))
	}
	var errs [6]error
	vm.uploads, errs[0] = counter("desa_media_upload_total", "Image uploads by folder and result", "{uploads}")
	vm.predictions, errs[1] = counter("desa_prediction_total", "Stunting predictions by outcome", "{predictions}")
	vm.logins, errs[2] = counter("desa_login_total", "Admin login attempts by result", "{attempts}")
	vm.articles, errs[3] = gauge("desa_articles", "Articles by publication status", "{articles}")
	vm.umkm, errs[4] = gauge("desa_umkm", "UMKM listings by dusun", "{listings}")
	vm.travels, errs[5] = gauge("desa_travels", "Travel destinations by dusun", "{destinations}")
	if err := errors.Join(errs[:]...); err != nil {
		return nil, fmt.Errorf("register village metrics: %w", err)
	}
	return vm, nil
}

// RecordUpload counts an image upload attempt
func (vm *VillageMetrics) RecordUpload(ctx context.Context, folder string, success bool) {
	vm.uploads.Add(ctx, 1, metric.WithAttributes(AttrFolder.String(folder), AttrOutcome.String(successLabel(success))))
}

// RecordPrediction counts a stunting prediction by outcome
func (vm *VillageMetrics) RecordPrediction(ctx context.Context, outcome string) {
	vm.predictions.Add(ctx, 1, metric.WithAttributes(AttrOutcome.String(outcome)))
}

// RecordLogin counts a login attempt
func (vm *VillageMetrics) RecordLogin(ctx context.Context, success bool) {
	vm.logins.Add(ctx, 1, metric.WithAttributes(AttrOutcome.String(successLabel(success))))
}

func successLabel(ok bool) string {
	return strconv.FormatBool(ok)
}

// Start begins periodic gauge collection. It is a no-op without a provider
// and only the first call has effect.
func (vm *VillageMetrics) Start(ctx context.Context) {
	if vm.provider == nil {
		return
	}
	vm.collectOnce.Do(func() {
		vm.wg.Add(1)
		go vm.run(ctx)
	})
}

func (vm *VillageMetrics) run(ctx context.Context) {
	defer vm.wg.Done()
	ticker := time.NewTicker(vm.interval)
	defer ticker.Stop()

	vm.Collect(ctx)
	for {
		select {
		case <-vm.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			vm.Collect(ctx)
		}
	}
}

// Collect records one snapshot of the content gauges
func (vm *VillageMetrics) Collect(ctx context.Context) {
	if vm.provider == nil {
		return
	}
	snap, err := vm.provider.ContentSnapshot(ctx)
	if err != nil {
		vm.logger.Warn("Failed to collect content metrics", zap.Error(err))
		return
	}
	record := func(g metric.Int64Gauge, key attribute.Key, values map[string]int64) {
		for label, n := range values {
			g.Record(ctx, n, metric.WithAttributes(key.String(label)))
		}
	}
	record(vm.articles, AttrStatus, snap.ArticlesByStatus)
	record(vm.umkm, AttrDusun, snap.UMKMByDusun)
	record(vm.travels, AttrDusun, snap.TravelsByDusun)
}

// Stop ends periodic collection and waits for the collector to exit
func (vm *VillageMetrics) Stop() {
	vm.stopOnce.Do(func() { close(vm.stopChan) })
	vm.wg.Wait()
}
