package main

import (
	"os"

	"enhancer/cmd/handlers"
	"enhancer/internal/logger"
)

func main() {
	logger.Init()
	if err := handlers.Execute(); err != nil {
		os.Exit(1)
	}
}
