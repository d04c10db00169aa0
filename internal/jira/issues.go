package jira

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/releasekit/jira-release-sync/internal/constants"
	"github.com/releasekit/jira-release-sync/internal/models"
)

// AddFixVersion appends a version to an issue's fix-version field. Versions
// already present on the issue are left untouched.
func (c *Client) AddFixVersion(ctx context.Context, issueKey, versionID string) error {
	path := fmt.Sprintf("%s/issue/%s", constants.APIPrefix, url.PathEscape(issueKey))

	payload := models.IssueUpdate{
		Update: models.IssueUpdateOperations{
			FixVersions: []models.FixVersionOperation{
				{Add: &models.VersionRef{ID: versionID}},
			},
		},
	}

	resp, err := c.doRequest(ctx, "PUT", path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusNoContent && resp.StatusCode != nethttp.StatusOK {
		return newRemoteError("PUT", path, resp)
	}

	return nil
}
