package model

import "time"

// ProjectRef identifies the tracker project by key.
type ProjectRef struct {
	Key string `json:"key"`
}

// IssueTypeRef identifies the tracker issue type by ID.
type IssueTypeRef struct {
	ID string `json:"id"`
}

// ComponentRef identifies a project component by ID.
type ComponentRef struct {
	ID string `json:"id"`
}

// UserRef identifies a tracker user by account ID.
type UserRef struct {
	AccountID string `json:"accountId"`
}

// PriorityRef identifies a priority by ID.
type PriorityRef struct {
	ID string `json:"id"`
}

// WorkItemFields is the tracker-facing field payload for one content asset.
// Custom field keys match the tracker's content-asset issue type (10009).
type WorkItemFields struct {
	Project         ProjectRef     `json:"project"`
	Summary         string         `json:"summary"`
	IssueType       IssueTypeRef   `json:"issuetype"`
	Components      []ComponentRef `json:"components"`
	Description     *ADFDoc        `json:"description,omitempty"`
	PublicationDate string         `json:"customfield_10040,omitempty"`
	FieldAssociate  *UserRef       `json:"customfield_10042,omitempty"`
	Reporter        *UserRef       `json:"reporter,omitempty"`
	ContentEditor   *UserRef       `json:"customfield_10043,omitempty"`
	Priority        *PriorityRef   `json:"priority,omitempty"`
	StartDate       string         `json:"customfield_10015,omitempty"`
	ContentType     string         `json:"customfield_10039,omitempty"`
	DueDate         string         `json:"duedate,omitempty"`
	Assignee        *UserRef       `json:"assignee,omitempty"`
}

// WorkItemMeta carries resolution metadata alongside the payload for audit:
// which lookups fired, when the row was converted, and the full original row.
type WorkItemMeta struct {
	ClientName         string     `json:"client_name"`
	ComponentID        string     `json:"component_id,omitempty"`
	FieldAssociateName string     `json:"field_associate_name,omitempty"`
	ContentEditorName  string     `json:"content_editor_name,omitempty"`
	ConvertedAt        time.Time  `json:"converted_at"`
	OriginalRow        ContentRow `json:"original_row"`
}

// WorkItem is one transformed content-plan row, ready for bulk submission.
// The tracker ignores the metadata block; it travels with the payload so
// persisted snapshots stay self-describing.
type WorkItem struct {
	Fields WorkItemFields `json:"fields"`
	Meta   WorkItemMeta   `json:"metadata"`
}

// ClientConversion is the transform stage's output for one client.
type ClientConversion struct {
	ClientName string     `json:"client_name"`
	DocumentID string     `json:"content_plan_id,omitempty"`
	Items      []WorkItem `json:"issue_updates"`
	RowErrors  []RowError `json:"row_errors,omitempty"`
}

// RowError records a structurally malformed row that could not be converted.
type RowError struct {
	RowIndex int    `json:"row_index"`
	Error    string `json:"error"`
}
