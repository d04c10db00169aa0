package models

// Project represents the subset of a Jira project this tool reads.
// Jira serializes the project id as a string ("10001"); version payloads
// want it numeric, so callers convert when building a create request.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}
