package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/verte-zerg/crackle/internal/attack"
)

// watchSignals stops ctrl on stopSignals and toggles pause on
// toggleSignals until the returned function is called.
func watchSignals(ctx context.Context, ctrl *attack.Controller, logger *slog.Logger) func() {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, stopSignals...)
	toggleCh := make(chan os.Signal, 1)
	if len(toggleSignals) > 0 {
		signal.Notify(toggleCh, toggleSignals...)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case sig := <-stopCh:
				if ctrl.Stop() {
					logger.Info("stop requested", slog.String("signal", sig.String()))
				}
			case sig := <-toggleCh:
				state := ctrl.Toggle()
				logger.Info("pause toggled", slog.String("signal", sig.String()), slog.String("state", state.String()))
			}
		}
	}()
	return func() {
		signal.Stop(stopCh)
		signal.Stop(toggleCh)
		close(done)
	}
}
