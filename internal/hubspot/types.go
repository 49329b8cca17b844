package hubspot

// Contact is one CRM contact payload: a bag of already-cleaned string
// properties keyed by internal property name.
type Contact struct {
	Properties map[string]string `json:"properties"`
}

// SearchRequest is the body for POST /crm/v3/objects/contacts/search.
// Filter groups are OR-combined; filters within a group are AND-combined.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
	Limit        int           `json:"limit,omitempty"`
}

// FilterGroup is one AND-combined filter set.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// Filter is a single property comparison.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchResponse struct {
	Total   int             `json:"total"`
	Results []contactObject `json:"results"`
}

type contactObject struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

type batchCreateRequest struct {
	Inputs []Contact `json:"inputs"`
}

type batchCreateResponse struct {
	Results []contactObject `json:"results"`
}

// SyncResult is the structured outcome of a single-contact upsert.
// Failures are reported here, never via panic or thrown error.
type SyncResult struct {
	Success   bool   `json:"success"`
	ContactID string `json:"contactId,omitempty"`
	Action    string `json:"action,omitempty"` // "created" or "updated"
	Error     string `json:"error,omitempty"`
}

// BatchUploadResult accumulates the outcome of one bulk import run.
type BatchUploadResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors"`
}

// OK reports whether every batch succeeded.
func (r BatchUploadResult) OK() bool { return len(r.Errors) == 0 }
