// kbcheck loads a support knowledge base file and prints its validation
// report. Use it to vet database files before deploying them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"wm-assistant/internal/repository"
	"wm-assistant/pkg/config"
	"wm-assistant/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	path := flag.String("db", cfg.Knowledge.DatabasePath, "path to the support database JSON file")
	flag.Parse()

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	store := repository.NewKnowledgeStore(appLogger)
	if err := store.Load(*path); err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	report := store.Validate()

	fmt.Printf("Support database: %s\n", *path)
	fmt.Printf("Entries: %d\n", report.TotalEntries)
	fmt.Println("Categories:")
	for _, category := range store.Categories() {
		fmt.Printf("  %-22s %d\n", category, report.Categories[string(category)])
	}
	for _, warning := range report.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	for _, errMsg := range report.Errors {
		fmt.Printf("error: %s\n", errMsg)
	}

	if !report.IsValid {
		fmt.Println("result: INVALID")
		os.Exit(1)
	}
	fmt.Println("result: OK")
}
