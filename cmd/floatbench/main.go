package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zeusync/floatbench/internal/config"
	"github.com/zeusync/floatbench/internal/injector"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "optional YAML file overriding the built-in benchmark settings")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		return 2
	}

	application, cleanup, err := injector.InitializeApp(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing benchmark:", err)
		return 1
	}
	defer cleanup()

	if _, err = application.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running benchmark:", err)
		return 1
	}
	return 0
}
