package main

import (
	"fmt"
	"os"

	"github.com/MrSnakeDoc/index/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ index: %v\n", err)
		os.Exit(1)
	}
}
