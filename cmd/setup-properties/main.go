// Idempotently provisions the CRM contact property group and catalog.
// Safe to run repeatedly: properties that already exist are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/faces-agency/talent-sync/internal/config"
	"github.com/faces-agency/talent-sync/internal/hubspot"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.HubSpot.AccessToken == "" {
		log.Fatal("HUBSPOT_ACCESS_TOKEN is required")
	}

	fmt.Printf("Provisioning %d contact properties...\n", len(hubspot.PropertyCatalog))

	provisioner := hubspot.NewProvisioner(cfg.HubSpot)
	summary, err := provisioner.EnsureProperties(context.Background())
	if err != nil {
		log.Fatalf("Provisioning failed: %v", err)
	}

	fmt.Println("\n=== Provisioning Summary ===")
	fmt.Printf("Created: %d\n", summary.Created)
	fmt.Printf("Skipped: %d (already exist)\n", summary.Skipped)
	if len(summary.Failed) > 0 {
		fmt.Printf("Failed:  %d\n", len(summary.Failed))
		for _, failure := range summary.Failed {
			fmt.Printf("  %s\n", failure)
		}
	}
}
