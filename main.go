package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flags "github.com/jessevdk/go-flags"

	"estation-client/internal/app"
	"estation-client/internal/config"
	"estation-client/internal/logging"
)

var BuildVersion = "dev"

const usage = "usage: estation-client [flags] <login|logout|status|watch|version>"

func main() {
	rootCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	opts, args, err := config.ParseOptions()
	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	settings, err := config.BuildSettings(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(settings.Debug)

	if args[0] == "version" {
		fmt.Println("estation-client", BuildVersion)
		return
	}

	dashboard, err := app.New(settings, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch args[0] {
	case "login":
		err = dashboard.Login(rootCtx)
	case "logout":
		err = dashboard.Logout(rootCtx)
	case "status":
		err = dashboard.Status(rootCtx)
	case "watch":
		err = dashboard.Watch(rootCtx)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
