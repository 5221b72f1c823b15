// prettylog - JSON log pretty-printer
//
// prettylog reads newline-delimited JSON logs and prints each record as a
// single aligned, human-readable line. Anything that is not a JSON object
// passes through untouched.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ccollicutt/prettylog/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return cli.Execute(ctx)
}
