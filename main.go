package main

import (
	"os"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
