package app

import (
	"context"
	"errors"
	"fmt"

	"estation-client/internal/logging"
	"estation-client/internal/realtime"
)

// Watch connects the realtime client and prints pushed updates until ctx is
// done. An out-of-band session change (login or logout from another
// process) re-sends the auth message on the live connection.
func (a *DashboardApp) Watch(ctx context.Context) error {
	a.realtime.OnConnectionChange(func(change realtime.ConnectionChange) {
		switch change.Status {
		case realtime.ConnStatusConnected:
			fmt.Fprintln(a.out, "realtime: connected")
		case realtime.ConnStatusDisconnected:
			fmt.Fprintf(a.out, "realtime: disconnected (code %d)\n", change.Code)
		case realtime.ConnStatusError:
			fmt.Fprintf(a.out, "realtime: connection error: %v\n", change.Err)
		}
	})
	a.realtime.OnServiceUpdate(func(update realtime.ServiceUpdate) {
		line := fmt.Sprintf("service %s: %s", update.ServiceID, update.Status)
		if update.ErrorMessage != "" {
			line += " (" + update.ErrorMessage + ")"
		}
		fmt.Fprintln(a.out, line)
	})
	a.realtime.OnWorkspaceUpdate(func(update realtime.WorkspaceUpdate) {
		fmt.Fprintf(a.out, "workspace %s: %s by %s\n", update.WorkspaceID, update.Action, update.UserID)
	})

	a.realtime.Connect()
	defer a.realtime.Destroy()

	go a.watchSession(ctx)

	<-ctx.Done()
	return nil
}

func (a *DashboardApp) watchSession(ctx context.Context) {
	err := a.sessions.Watch(ctx, func() {
		a.logger.Debug("session store changed externally")
		if token, ok := a.sessions.Get(a.settings.SessionKey); ok && token != "" {
			a.realtime.Send("auth", map[string]string{"token": token})
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Warn("session watcher stopped", logging.Field("error", err))
	}
}
