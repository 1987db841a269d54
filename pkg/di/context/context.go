package shortcontext

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New root context cancelled on SIGINT / SIGTERM.
func New() (context.Context, func(), error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx, cancel, nil
}
