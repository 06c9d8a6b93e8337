package main

import (
	"os"

	"github.com/ngrash/go-tzdb/cmd/tzdb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
