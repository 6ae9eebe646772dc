package model

// ClientRecord is one row of the client roster sheet. Name is the unique key
// every later stage uses; FolderRef is the opaque document-store folder ID
// that holds the client's content plans.
type ClientRecord struct {
	Number    int    `json:"number"`
	Name      string `json:"name"`
	FolderRef string `json:"content_plan_folder_id"`
}

// MatchRule records which matching rule selected a document candidate.
type MatchRule string

const (
	MatchExact     MatchRule = "exact"
	MatchSubstring MatchRule = "substring"
	MatchNone      MatchRule = ""
)

// Candidate is a document seen while scanning a client's folder.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentMatch is the locator's result for one client. DocumentID is empty
// when no candidate matched. Skipped marks clients excluded before the search
// ran (missing name or folder ref); Error records a per-client search failure.
type DocumentMatch struct {
	Number       int         `json:"number"`
	ClientName   string      `json:"client_name"`
	FolderRef    string      `json:"content_plan_folder_id,omitempty"`
	ExpectedName string      `json:"expected_filename,omitempty"`
	DocumentID   string      `json:"content_plan_id,omitempty"`
	MatchRule    MatchRule   `json:"match_rule,omitempty"`
	Candidates   []Candidate `json:"candidates,omitempty"`
	Skipped      bool        `json:"skipped,omitempty"`
	SkipReason   string      `json:"skip_reason,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// Found reports whether the locator resolved a document for this client.
func (m DocumentMatch) Found() bool {
	return m.DocumentID != ""
}
