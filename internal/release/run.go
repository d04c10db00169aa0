package release

import (
	"context"
	"fmt"

	"github.com/releasekit/jira-release-sync/internal/config"
)

// Run dispatches one validated configuration to the matching operation.
//
// Dry run short-circuits before any Jira interaction: it only reports the
// fully resolved configuration. Otherwise create_or_update reconciles the
// version and, when a ticket list was supplied, tags each issue with the
// reconciled version's id; delete removes the version by name and ignores
// the ticket list and version state flags.
//
// Version upsert and issue tagging are independent, non-atomic steps: a
// tagging failure does not roll the version change back.
func (s *Service) Run(ctx context.Context, cfg *config.Config) error {
	if cfg.DryRun {
		red := cfg.Redacted()
		s.log.Info().
			Str("operation", red.Operation).
			Str("subdomain", red.Subdomain).
			Str("email", red.Email).
			Str("api_token", red.APIToken).
			Str("jira_project", red.Project).
			Str("release_name", red.ReleaseName).
			Str("tickets", red.Tickets).
			Str("release_description", red.ReleaseDescription).
			Bool("release_released", red.ReleaseReleased).
			Str("release_release_date", red.ReleaseDate).
			Bool("release_archived", red.ReleaseArchived).
			Msg("dry run: configuration resolved, skipping all Jira calls")
		return nil
	}

	switch cfg.Operation {
	case config.OperationCreateOrUpdate:
		spec := Spec{
			Name:        cfg.ReleaseName,
			Description: cfg.ReleaseDescription,
			Released:    cfg.ReleaseReleased,
			ReleaseDate: cfg.ReleaseDate,
			Archived:    cfg.ReleaseArchived,
		}

		version, err := s.Upsert(ctx, cfg.Project, spec)
		if err != nil {
			return err
		}
		s.log.Info().
			Str("id", version.ID).
			Str("name", version.Name).
			Bool("released", version.Released).
			Str("release_date", version.ReleaseDate).
			Msg("version reconciled")

		tickets := SplitTickets(cfg.Tickets)
		if len(tickets) == 0 {
			return nil
		}
		if version.ID == "" {
			return &InvariantError{Msg: "reconciled version has no id"}
		}
		return s.TagIssues(ctx, version.ID, tickets)

	case config.OperationDelete:
		return s.DeleteByName(ctx, cfg.Project, cfg.ReleaseName)

	default:
		// Unreachable after config.Validate.
		return fmt.Errorf("unknown operation %q", cfg.Operation)
	}
}
