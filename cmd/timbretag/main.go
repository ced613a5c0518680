// Command timbretag cleans and augments a tagged synth-patch library and
// exports the result as a labelled training dataset.
//
// Usage:
//
//	timbretag augment  --library ./patches --output ./out/dataset.db
//	timbretag inspect  --library ./patches
//	timbretag thresholds
//
// Every flag falls back to the YAML file given by --config and to
// TIMBRETAG_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
