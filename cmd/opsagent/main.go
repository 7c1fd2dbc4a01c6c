package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/BadrBouzakri/AI-Agent/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

// run is separated from main so deferred cleanup executes before os.Exit.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := cli.Options{
		ConfigPath: configPathFlag(os.Args[1:]),
		Debug:      isDebug(),
	}

	root, cleanup, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer cleanup()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// configPathFlag pre-scans the arguments for --config so the container can
// load the right file before cobra parses flags. An empty result defers to
// OPSAGENT_CONFIG and the default location inside the loader.
func configPathFlag(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

func isDebug() bool {
	debug := os.Getenv("OPSAGENT_DEBUG")
	return strings.EqualFold(debug, "1") || strings.EqualFold(debug, "true")
}
