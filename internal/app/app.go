// Package app wires configuration, the session store, and the two clients
// into the commands the CLI exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"estation-client/internal/api"
	"estation-client/internal/config"
	"estation-client/internal/logging"
	"estation-client/internal/realtime"
	"estation-client/internal/session"
)

var ErrMissingCredentials = errors.New("username and password are required")

type DashboardApp struct {
	settings config.Settings
	sessions *session.FileStore
	api      *api.Client
	realtime *realtime.Client
	logger   *logging.Logger
	out      io.Writer
}

func New(settings config.Settings, logger *logging.Logger) (*DashboardApp, error) {
	if logger == nil {
		panic("app.New: logger must not be nil")
	}
	path, err := session.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve session store path: %w", err)
	}
	sessions := session.NewFileStore(path)
	return &DashboardApp{
		settings: settings,
		sessions: sessions,
		api:      api.FromSettings(settings, sessions, logger),
		realtime: realtime.FromSettings(settings, sessions, logger),
		logger:   logger,
		out:      os.Stdout,
	}, nil
}

func (a *DashboardApp) Login(ctx context.Context) error {
	if a.settings.Username == "" || a.settings.Password == "" {
		return ErrMissingCredentials
	}
	resp, err := a.api.Login(ctx, api.Credentials{
		Username: a.settings.Username,
		Password: a.settings.Password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", resp.User.Username)
	return nil
}

func (a *DashboardApp) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		// Local credential is gone either way; the server call is advisory.
		a.logger.Warn("server logout failed", logging.Field("error", err))
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

// Status prints a one-shot snapshot of backend health and monitored
// services.
func (a *DashboardApp) Status(ctx context.Context) error {
	report, err := a.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	fmt.Fprintf(a.out, "backend: %s (%s)\n", report.Status, report.Message)

	services, err := a.api.ServiceStatus(ctx)
	if err != nil {
		return fmt.Errorf("service status failed: %w", err)
	}
	for _, service := range services {
		line := fmt.Sprintf("%-24s %s", service.Name, service.Status)
		if service.ResponseTime != nil {
			line += fmt.Sprintf(" (%.0f ms)", *service.ResponseTime)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
