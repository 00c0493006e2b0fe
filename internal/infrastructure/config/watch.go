package config

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads config.toml when it changes on disk.
type Watcher struct {
	logger   *zap.Logger
	onChange []func(*Config)
}

// NewWatcher creates a watcher. Call Start to begin watching.
func NewWatcher(logger *zap.Logger) *Watcher {
	return &Watcher{logger: logger}
}

// OnChange registers a callback invoked with the freshly loaded config.
// Callbacks run on the watcher goroutine and must not block.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.onChange = append(w.onChange, fn)
}

// Start begins watching. It is a no-op when no config file was found.
func (w *Watcher) Start() error {
	v, err := newViper()
	if err != nil {
		return err
	}
	if v.ConfigFileUsed() == "" {
		w.logger.Debug("No config file in use, config hot reload disabled")
		return nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := build(v)
		if err != nil {
			w.logger.Warn("Ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}
		w.logger.Info("Config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		for _, fn := range w.onChange {
			fn(cfg)
		}
	})
	v.WatchConfig()

	w.logger.Info("Watching config file", zap.String("file", v.ConfigFileUsed()))
	return nil
}
