package main

import (
	"fmt"
	"os"

	"github.com/openkraft/uikraft/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "uikraft:", err)
		os.Exit(cli.ExitCode(err))
	}
}
