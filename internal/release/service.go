// Package release implements the version reconciliation logic: upsert a
// named version on a Jira project, delete it, or tag issues with it.
package release

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/releasekit/jira-release-sync/internal/jira"
	"github.com/releasekit/jira-release-sync/internal/logging"
	"github.com/releasekit/jira-release-sync/internal/models"
	"github.com/releasekit/jira-release-sync/internal/util/dates"
)

// API is the slice of the Jira client this package depends on.
type API interface {
	FindVersionByName(ctx context.Context, projectKey, name string) (*models.Version, error)
	GetProject(ctx context.Context, projectKey string) (*models.Project, error)
	CreateVersion(ctx context.Context, payload models.VersionPayload) (*models.Version, error)
	UpdateVersion(ctx context.Context, versionID string, payload models.VersionPayload) (*models.Version, error)
	DeleteVersion(ctx context.Context, versionID string) error
	AddFixVersion(ctx context.Context, issueKey, versionID string) error
}

var _ API = (*jira.Client)(nil)

// Spec is the desired state of a version, as supplied by the CI workflow.
// It has no identity until persisted by Jira.
type Spec struct {
	Name        string
	Description string
	Released    bool
	ReleaseDate string // free-form; normalized before any write
	Archived    bool
}

// Service runs release operations against a Jira tenant. It holds no state
// across operations; every call re-fetches the remote version by name
// immediately before acting.
type Service struct {
	api API
	log *logging.Logger
	now func() time.Time
}

// NewService creates a release service over the given API handle.
func NewService(api API, log *logging.Logger) *Service {
	return &Service{
		api: api,
		log: log,
		now: time.Now,
	}
}

// payload derives the wire payload from a spec. The derivation is
// deterministic and identical on the create and update paths:
//
//   - released with no usable date: stamp today's UTC calendar day
//   - not released: clear the date unconditionally, even if one was given
//   - date present: reparse and reformat as YYYY-MM-DD
//
// A malformed date degrades to "no date" here; the validation gate has
// already rejected malformed input on the CLI path.
func (s *Service) payload(spec Spec) models.VersionPayload {
	p := models.VersionPayload{
		Name:        spec.Name,
		Description: spec.Description,
		Released:    spec.Released,
		Archived:    spec.Archived,
	}

	if !spec.Released {
		return p
	}

	day := ""
	if spec.ReleaseDate != "" {
		if normalized, err := dates.Normalize(spec.ReleaseDate); err == nil {
			day = normalized
		}
	}
	if day == "" {
		day = dates.Day(s.now())
	}
	p.ReleaseDate = &day

	return p
}

// Upsert creates or updates the version named spec.Name on the project.
// An existing exact-name match is updated in place by its id; otherwise the
// project's numeric id is resolved and a new version is created under it.
//
// The found version is not re-verified at the moment of the update call;
// a concurrent delete in that window surfaces as a RemoteError from Jira.
func (s *Service) Upsert(ctx context.Context, projectKey string, spec Spec) (*models.Version, error) {
	p := s.payload(spec)

	existing, err := s.api.FindVersionByName(ctx, projectKey, spec.Name)
	switch {
	case err == nil:
		s.log.Info().
			Str("project", projectKey).
			Str("version", spec.Name).
			Str("id", existing.ID).
			Msg("updating existing version")
		return s.api.UpdateVersion(ctx, existing.ID, p)

	case jira.IsNotFound(err):
		project, perr := s.api.GetProject(ctx, projectKey)
		if perr != nil {
			return nil, perr
		}
		projectID, perr := strconv.ParseInt(project.ID, 10, 64)
		if perr != nil {
			return nil, fmt.Errorf("project %s has non-numeric id %q: %w", projectKey, project.ID, perr)
		}
		p.ProjectID = projectID

		s.log.Info().
			Str("project", projectKey).
			Str("version", spec.Name).
			Msg("creating new version")
		return s.api.CreateVersion(ctx, p)

	default:
		return nil, err
	}
}

// DeleteByName deletes the version named name on the project. A missing
// version is a jira.NotFoundError carrying the name; no delete request is
// issued in that case. No replacement version is substituted into issues.
func (s *Service) DeleteByName(ctx context.Context, projectKey, name string) error {
	existing, err := s.api.FindVersionByName(ctx, projectKey, name)
	if err != nil {
		return err
	}

	s.log.Info().
		Str("project", projectKey).
		Str("version", name).
		Str("id", existing.ID).
		Msg("deleting version")
	return s.api.DeleteVersion(ctx, existing.ID)
}

// TagIssues attaches the version to each issue's fix-version field, one
// request per issue, strictly in order. The first failure aborts the
// remaining requests and propagates. An empty list is a no-op.
func (s *Service) TagIssues(ctx context.Context, versionID string, issueKeys []string) error {
	for _, key := range issueKeys {
		if err := s.api.AddFixVersion(ctx, key, versionID); err != nil {
			return fmt.Errorf("failed to tag issue %s: %w", key, err)
		}
		s.log.Info().
			Str("issue", key).
			Str("version_id", versionID).
			Msg("tagged issue with fix version")
	}
	return nil
}

// SplitTickets splits a comma-separated ticket list into trimmed issue
// keys, dropping empty entries.
func SplitTickets(tickets string) []string {
	if strings.TrimSpace(tickets) == "" {
		return nil
	}

	var keys []string
	for _, part := range strings.Split(tickets, ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
