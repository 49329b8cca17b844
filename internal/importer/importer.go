// Package importer runs the bulk import pipeline: spreadsheet rows are
// normalized and mapped, invalid rows rejected, duplicates collapsed,
// and the surviving contacts optionally uploaded to the CRM and written
// out as a cleaned workbook for operator review.
package importer

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/mapping"
)

// Summary reports one import run.
type Summary struct {
	Total      int      `json:"total"`
	Valid      int      `json:"valid"`
	Invalid    int      `json:"invalid"`
	Duplicates int      `json:"duplicates"`
	Ready      int      `json:"ready"`
	Created    int      `json:"created"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Importer wires the row mapper to the batch uploader.
type Importer struct {
	mapper   *mapping.Mapper
	uploader *hubspot.BatchUploader
}

// New creates an importer. The uploader may be nil for dry runs that
// never call Upload.
func New(mapper *mapping.Mapper, uploader *hubspot.BatchUploader) *Importer {
	return &Importer{mapper: mapper, uploader: uploader}
}

// Process maps and validates every row, then deduplicates by phone key.
// The returned contacts are ready for upload; the summary carries all
// rejection errors and normalization warnings.
func (imp *Importer) Process(rows []map[string]string) (Summary, []hubspot.Contact) {
	summary := Summary{Total: len(rows)}

	var valid []hubspot.Contact
	for i, row := range rows {
		result := imp.mapper.MapRow(row, i)
		summary.Errors = append(summary.Errors, result.Errors...)
		summary.Warnings = append(summary.Warnings, result.Warnings...)
		if result.Contact != nil {
			valid = append(valid, *result.Contact)
		}
	}

	summary.Valid = len(valid)
	summary.Invalid = summary.Total - summary.Valid

	unique, duplicates := mapping.Deduplicate(valid)
	summary.Duplicates = duplicates
	summary.Ready = len(unique)

	return summary, unique
}

// Upload pushes the deduplicated contacts to the CRM and folds the
// outcome into the summary.
func (imp *Importer) Upload(ctx context.Context, contacts []hubspot.Contact, summary *Summary) {
	result := imp.uploader.Upload(ctx, contacts)
	summary.Created = result.Created
	summary.Errors = append(summary.Errors, result.Errors...)
}

var spreadsheetExt = regexp.MustCompile(`(?i)\.(xlsx|xlsm|csv)$`)

// CleanedPath derives the review-workbook path from the input path:
// "candidates.xlsx" → "candidates_cleaned.xlsx".
func CleanedPath(inputPath string) string {
	if spreadsheetExt.MatchString(inputPath) {
		return spreadsheetExt.ReplaceAllString(inputPath, "_cleaned.xlsx")
	}
	return inputPath + "_cleaned.xlsx"
}

// WriteCleaned writes the mapped contacts to a workbook so an operator
// can eyeball the normalized values before a real import. Columns are
// the union of all property names, sorted for a stable layout.
func WriteCleaned(contacts []hubspot.Contact, path string) error {
	headerSet := map[string]bool{}
	for _, c := range contacts {
		for key := range c.Properties {
			headerSet[key] = true
		}
	}
	headers := make([]string, 0, len(headerSet))
	for key := range headerSet {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cleaned Data"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("write header %s: %w", header, err)
		}
	}

	for rowIdx, contact := range contacts {
		for col, header := range headers {
			value := contact.Properties[header]
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", rowIdx+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save cleaned workbook: %w", err)
	}
	return nil
}
