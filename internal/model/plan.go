package model

import "time"

// ContentRow is one data row of a content plan, keyed by column header.
// Missing cells are empty strings; rows are normalized to the header width
// before they reach this type.
type ContentRow map[string]string

// ClientPlan is the fetch stage's output for one client: the rows read from
// the client's content plan document, or the reason none were read.
type ClientPlan struct {
	Number     int          `json:"number"`
	ClientName string       `json:"client_name"`
	DocumentID string       `json:"content_plan_id,omitempty"`
	Rows       []ContentRow `json:"rows,omitempty"`
	Error      string       `json:"error,omitempty"`
	FetchedAt  time.Time    `json:"fetched_at,omitzero"`
}
