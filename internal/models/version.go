// Package models defines the Jira REST API wire types used by this tool.
package models

// Version represents a Jira project version as returned by the API.
type Version struct {
	ID          string `json:"id,omitempty"`
	Self        string `json:"self,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Released    bool   `json:"released"`
	Archived    bool   `json:"archived"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	ProjectID   int64  `json:"projectId,omitempty"`
}

// VersionPayload is the request body for creating or updating a version.
//
// ReleaseDate is a pointer serialized without omitempty: an explicit JSON
// null clears the date on the Jira side, while omitting the field would
// leave a previously set date in place on update.
type VersionPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Released    bool    `json:"released"`
	Archived    bool    `json:"archived"`
	ReleaseDate *string `json:"releaseDate"`
	ProjectID   int64   `json:"projectId,omitempty"`
}

// PagedVersions is one page of the project version listing.
type PagedVersions struct {
	MaxResults int       `json:"maxResults"`
	StartAt    int64     `json:"startAt"`
	Total      int       `json:"total"`
	IsLast     bool      `json:"isLast"`
	Values     []Version `json:"values"`
}
