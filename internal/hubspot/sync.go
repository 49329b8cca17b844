package hubspot

import (
	"context"

	"github.com/faces-agency/talent-sync/internal/pkg/logger"
)

// SyncContact upserts a single submission: search by phone, then update
// the first match or create a new contact. The search-then-act sequence
// is not atomic; two concurrent submissions with the same new number can
// both miss the search and create duplicate contacts. The CRM exposes no
// compare-and-swap primitive, so this is an at-least-once create.
//
// Failures are returned as a structured result, never thrown, and no
// retry is attempted.
func (c *Client) SyncContact(ctx context.Context, properties map[string]string, phone string) SyncResult {
	existingID, err := c.SearchContactByPhone(ctx, phone)
	if err != nil {
		// A failed search falls through to create: losing the lookup is
		// preferable to losing the submission.
		logger.Warn("contact search failed, falling back to create", "error", err)
		existingID = ""
	}

	if existingID != "" {
		if err := c.UpdateContact(ctx, existingID, properties); err != nil {
			return SyncResult{Success: false, ContactID: existingID, Error: err.Error()}
		}
		return SyncResult{Success: true, ContactID: existingID, Action: "updated"}
	}

	contactID, err := c.CreateContact(ctx, properties)
	if err != nil {
		return SyncResult{Success: false, Error: err.Error()}
	}
	return SyncResult{Success: true, ContactID: contactID, Action: "created"}
}
