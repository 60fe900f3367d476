// Command vocab runs the vocabulary service and its maintenance jobs.
//
//	vocab serve               start the HTTP API
//	vocab migrate             apply database migrations
//	vocab preload --file F    import a word list with placeholder content
//	vocab enrich [--limit N]  enrich placeholder words from the providers
//	vocab verify              print store statistics
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
