package api

import (
	"net/http"

	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/pkg/httputil"
	"github.com/faces-agency/talent-sync/internal/pkg/logger"
)

// relayRequest is the browser-facing CRM proxy payload. The action
// discriminator selects the CRM call; the bearer token stays on this
// side of the boundary and never reaches the browser.
type relayRequest struct {
	Action     string                 `json:"action"`
	Properties map[string]string      `json:"properties,omitempty"`
	ContactID  string                 `json:"contactId,omitempty"`
	Search     *hubspot.SearchRequest `json:"searchParams,omitempty"`
}

// Relay forwards a CRM operation on behalf of the form client. An
// omitted or unknown action with properties present falls back to
// create, matching what older form builds send.
func (h *Handlers) Relay(w http.ResponseWriter, r *http.Request) {
	var req relayRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	switch req.Action {
	case "search":
		if req.Search == nil {
			httputil.BadRequest(w, "searchParams required for search")
			return
		}
		data, err := h.crm.Search(r.Context(), *req.Search)
		if err != nil {
			relayError(w, "search", err)
			return
		}
		httputil.OK(w, map[string]interface{}{"success": true, "data": data})

	case "update":
		if req.ContactID == "" {
			httputil.BadRequest(w, "contactId required for update")
			return
		}
		if err := h.crm.UpdateContact(r.Context(), req.ContactID, req.Properties); err != nil {
			relayError(w, "update", err)
			return
		}
		httputil.OK(w, map[string]interface{}{"success": true})

	default:
		if len(req.Properties) == 0 {
			httputil.BadRequest(w, "properties required for create")
			return
		}
		contactID, err := h.crm.CreateContact(r.Context(), req.Properties)
		if err != nil {
			relayError(w, "create", err)
			return
		}
		httputil.OK(w, map[string]interface{}{"success": true, "contactId": contactID})
	}
}

// relayError reports a CRM failure without exposing upstream detail the
// browser has no business seeing.
func relayError(w http.ResponseWriter, action string, err error) {
	logger.Warn("relay operation failed", "action", action, "error", err)

	status := http.StatusBadGateway
	if apiErr, ok := err.(*hubspot.APIError); ok && apiErr.Status >= 400 && apiErr.Status < 500 {
		status = apiErr.Status
	}
	httputil.JSON(w, status, map[string]interface{}{
		"success": false,
		"error":   "CRM request failed",
	})
}
