// Bulk import of historical candidate spreadsheets into the CRM.
//
// Usage:
//
//	import --file=data.xlsx --dry-run    validate and clean without uploading
//	import --file=data.xlsx --import     upload the cleaned contacts
//
// Every run writes a cleaned review workbook next to the input file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/faces-agency/talent-sync/internal/config"
	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/importer"
	"github.com/faces-agency/talent-sync/internal/mapping"
	"github.com/faces-agency/talent-sync/internal/normalize"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	filePath := flag.String("file", "", "path to .xlsx or .csv file (required)")
	dryRun := flag.Bool("dry-run", false, "validate and clean without uploading")
	doImport := flag.Bool("import", false, "upload the cleaned contacts to the CRM")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *doImport && cfg.HubSpot.AccessToken == "" {
		log.Fatal("HUBSPOT_ACCESS_TOKEN is required for --import")
	}

	rows, err := importer.ReadRows(*filePath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *filePath, err)
	}
	fmt.Printf("Found %d rows in %s\n", len(rows), *filePath)

	mapper := mapping.NewMapper(normalize.PhoneRules{
		CountryCode:      cfg.Phone.CountryCode,
		TrunkPrefix:      cfg.Phone.TrunkPrefix,
		MaxSubscriberLen: cfg.Phone.MaxSubscriberLen,
	}, cfg.Import.Source)

	crm := hubspot.NewClient(cfg.HubSpot)
	uploader := hubspot.NewBatchUploader(crm, cfg.HubSpot.BatchSize, cfg.HubSpot.BatchDelay())
	imp := importer.New(mapper, uploader)

	ctx := context.Background()
	summary, contacts := imp.Process(rows)

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Total rows:      %d\n", summary.Total)
	fmt.Printf("Valid contacts:  %d\n", summary.Valid)
	fmt.Printf("Invalid rows:    %d\n", summary.Invalid)
	fmt.Printf("Duplicates:      %d\n", summary.Duplicates)
	fmt.Printf("Ready to import: %d\n", summary.Ready)

	printIssues("Validation Errors", summary.Errors)
	printIssues("Warnings", summary.Warnings)

	cleanedPath := importer.CleanedPath(*filePath)
	if err := importer.WriteCleaned(contacts, cleanedPath); err != nil {
		log.Fatalf("Failed to write cleaned workbook: %v", err)
	}
	fmt.Printf("\nCleaned data exported to: %s\n", cleanedPath)

	if cfg.Archive.Enabled {
		archiver, err := importer.NewArchiver(ctx, cfg.Archive)
		if err != nil {
			log.Printf("Archive setup failed: %v", err)
		} else if key, err := archiver.Archive(ctx, cleanedPath); err != nil {
			log.Printf("Archive failed: %v", err)
		} else {
			fmt.Printf("Archived to: s3://%s/%s\n", cfg.Archive.S3Bucket, key)
		}
	}

	switch {
	case *doImport:
		fmt.Println("\n=== Starting CRM Import ===")
		seen := len(summary.Errors)
		imp.Upload(ctx, contacts, &summary)
		fmt.Println("\nImport complete!")
		fmt.Printf("Created: %d contacts\n", summary.Created)
		printIssues("Upload Errors", summary.Errors[seen:])
	case !*dryRun:
		fmt.Println("\nUse --import to upload to the CRM, or --dry-run to just validate")
	}
}

// printIssues shows at most 20 entries so a badly broken sheet does not
// flood the terminal.
func printIssues(title string, issues []string) {
	if len(issues) == 0 {
		return
	}
	fmt.Printf("\n=== %s ===\n", title)
	for i, issue := range issues {
		if i == 20 {
			fmt.Printf("  ... and %d more\n", len(issues)-20)
			break
		}
		fmt.Printf("  %s\n", issue)
	}
}
