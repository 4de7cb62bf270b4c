package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"p9e.in/lms/cmd"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.NewRoot(Version, BuildTime).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
