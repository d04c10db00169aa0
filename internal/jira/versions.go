package jira

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/releasekit/jira-release-sync/internal/constants"
	"github.com/releasekit/jira-release-sync/internal/models"
)

// FindVersionByName looks up a project version by exact, case-sensitive
// name. The query parameter is a server-side text filter and may match
// fuzzily, so the returned page is scanned for exact equality; the first
// match wins.
//
// Only the first page (maxResults 50) is requested. A version whose name
// matches many near-duplicates, or that falls beyond the first page, can
// therefore yield a NotFoundError even though it exists remotely. This
// single-page semantic is part of the contract; callers must not rely on
// lookup across pages.
func (c *Client) FindVersionByName(ctx context.Context, projectKey, name string) (*models.Version, error) {
	path := fmt.Sprintf("%s/project/%s/version?maxResults=%d&query=%s",
		constants.APIPrefix, url.PathEscape(projectKey), constants.VersionPageSize, url.QueryEscape(name))

	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, newRemoteError("GET", redactQuery(path), resp)
	}

	var page models.PagedVersions
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode version listing: %w", err)
	}

	for i := range page.Values {
		if page.Values[i].Name == name {
			return &page.Values[i], nil
		}
	}

	return nil, &NotFoundError{Kind: "version", Name: name}
}

// GetProject resolves a project by its human-facing key.
func (c *Client) GetProject(ctx context.Context, projectKey string) (*models.Project, error) {
	path := fmt.Sprintf("%s/project/%s", constants.APIPrefix, url.PathEscape(projectKey))

	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, newRemoteError("GET", path, resp)
	}

	var project models.Project
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}

	return &project, nil
}

// CreateVersion creates a new version. The payload must carry the numeric
// project id.
func (c *Client) CreateVersion(ctx context.Context, payload models.VersionPayload) (*models.Version, error) {
	path := constants.APIPrefix + "/version"

	resp, err := c.doRequest(ctx, "POST", path, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusCreated && resp.StatusCode != nethttp.StatusOK {
		return nil, newRemoteError("POST", path, resp)
	}

	var version models.Version
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return nil, fmt.Errorf("failed to decode created version: %w", err)
	}

	return &version, nil
}

// UpdateVersion mutates an existing version in place by its id. There is no
// versioning token; the write is last-write-wins against concurrent callers.
func (c *Client) UpdateVersion(ctx context.Context, versionID string, payload models.VersionPayload) (*models.Version, error) {
	path := fmt.Sprintf("%s/version/%s", constants.APIPrefix, url.PathEscape(versionID))

	resp, err := c.doRequest(ctx, "PUT", path, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, newRemoteError("PUT", path, resp)
	}

	var version models.Version
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return nil, fmt.Errorf("failed to decode updated version: %w", err)
	}

	return &version, nil
}

// DeleteVersion deletes a version by id. No replacement version is
// substituted into issues that referenced it.
func (c *Client) DeleteVersion(ctx context.Context, versionID string) error {
	path := fmt.Sprintf("%s/version/%s", constants.APIPrefix, url.PathEscape(versionID))

	resp, err := c.doRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusNoContent && resp.StatusCode != nethttp.StatusOK {
		return newRemoteError("DELETE", path, resp)
	}

	return nil
}
