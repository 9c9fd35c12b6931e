package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}
