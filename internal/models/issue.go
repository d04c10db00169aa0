package models

// IssueUpdate is the request body for editing an issue's fields.
type IssueUpdate struct {
	Update IssueUpdateOperations `json:"update"`
}

// IssueUpdateOperations lists per-field edit operations.
type IssueUpdateOperations struct {
	FixVersions []FixVersionOperation `json:"fixVersions,omitempty"`
}

// FixVersionOperation adds a version to an issue's fix-version field.
// Add semantics append without disturbing versions already present.
type FixVersionOperation struct {
	Add *VersionRef `json:"add,omitempty"`
}

// VersionRef references a version by its tracker-assigned id.
type VersionRef struct {
	ID string `json:"id"`
}
