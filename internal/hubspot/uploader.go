package hubspot

import (
	"context"
	"fmt"
	"time"

	"github.com/faces-agency/talent-sync/internal/pkg/logger"
)

// BatchUploader sends contacts to the CRM in fixed-size chunks with a
// fixed delay between chunks. This is a simple fixed-rate throttle, not
// an adaptive one: a failed chunk is recorded and the run continues.
type BatchUploader struct {
	client    *Client
	batchSize int
	delay     time.Duration
}

// NewBatchUploader creates an uploader. batchSize <= 0 falls back to the
// CRM bulk-create limit of 100; delay < 0 is treated as no delay.
func NewBatchUploader(client *Client, batchSize int, delay time.Duration) *BatchUploader {
	if batchSize <= 0 {
		batchSize = 100
	}
	if delay < 0 {
		delay = 0
	}
	return &BatchUploader{client: client, batchSize: batchSize, delay: delay}
}

// Upload partitions contacts into chunks and issues one bulk-create call
// per chunk, sequentially. Chunk failures never abort the run: each failed
// chunk contributes one error entry tagged with its 1-based index, and the
// created count accumulates from successful chunks only.
func (u *BatchUploader) Upload(ctx context.Context, contacts []Contact) BatchUploadResult {
	result := BatchUploadResult{}
	totalBatches := (len(contacts) + u.batchSize - 1) / u.batchSize

	for i := 0; i < len(contacts); i += u.batchSize {
		end := i + u.batchSize
		if end > len(contacts) {
			end = len(contacts)
		}
		batch := contacts[i:end]
		batchNum := i/u.batchSize + 1

		logger.Info("uploading contact batch",
			"batch", batchNum, "total_batches", totalBatches, "size", len(batch))

		created, err := u.client.BatchCreateContacts(ctx, batch)
		if err != nil {
			if apiErr, ok := err.(*APIError); ok {
				result.Errors = append(result.Errors, fmt.Sprintf("Batch %d: %s", batchNum, apiErr.Body))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Batch %d: %v", batchNum, err))
			}
			logger.Warn("contact batch failed", "batch", batchNum, "error", err)
		} else {
			result.Created += created
		}

		// Throttle between chunks, but not after the last one.
		if end < len(contacts) && u.delay > 0 {
			timer := time.NewTimer(u.delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				result.Errors = append(result.Errors, fmt.Sprintf("Batch %d: %v", batchNum+1, ctx.Err()))
				return result
			}
		}
	}

	return result
}
