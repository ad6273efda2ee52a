package main

import (
	"fmt"
	"os"

	"github.com/numan-developer-2/RAGSystem-Company/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
