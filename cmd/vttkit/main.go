package main

import (
	"os"

	"github.com/anilkumarmeena/vttkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
