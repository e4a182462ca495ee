// Package server runs the editor process: it starts the registered services,
// waits for one of them to finish or for SIGINT/SIGTERM, then stops them all.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running part of the process.
type Service interface {
	// Start runs the service and blocks until it is done or stopped.
	// Returning nil means the service finished normally.
	Start() error
	// Stop asks a running service to finish.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function, if any.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// Lifecycle starts services in registration order and stops them in reverse.
type Lifecycle struct {
	logger   *zap.Logger
	signals  []os.Signal
	services []namedService
	mu       sync.Mutex
}

type namedService struct {
	name    string
	service Service
}

type result struct {
	name string
	err  error
}

// NewLifecycle creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until one of them returns, a
// termination signal arrives, or ctx is cancelled.
//
// Postcondition: every service has been stopped. The returned error is the
// first service failure, or nil when shutdown was clean.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	doneCh := make(chan result, len(services))
	for _, ns := range services {
		ns := ns
		go func() {
			l.logger.Debug("starting service", zap.String("service", ns.name))
			svcStart := time.Now()
			err := ns.service.Start()
			if err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				err = fmt.Errorf("service %s: %w", ns.name, err)
			}
			doneCh <- result{name: ns.name, err: err}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case r := <-doneCh:
		if r.err != nil {
			runErr = r.err
		} else {
			l.logger.Debug("service finished, shutting down", zap.String("service", r.name))
		}
	case <-ctx.Done():
		l.logger.Debug("context cancelled, shutting down")
	}

	l.shutdown(services)

	l.logger.Debug("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return runErr
}

func (l *Lifecycle) shutdown(services []namedService) {
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		ns.service.Stop()
		l.logger.Debug("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
}
