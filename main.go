package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/oakwood-commons/dtable/cmd"
	"github.com/oakwood-commons/dtable/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	exitCode := 0
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exitCode = cmd.ExitCode(err)
	}

	stop()
	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
