package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/releasekit/jira-release-sync/internal/config"
	"github.com/releasekit/jira-release-sync/internal/jira"
	"github.com/releasekit/jira-release-sync/internal/release"
)

// newRunCmd creates the 'run' command, the CI entry point.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create, update, or delete a release version",
		Long: `Validates the supplied configuration and runs the requested operation
against Jira.

Operations:
  create_or_update - reconcile the named version (create if absent, update
                     in place otherwise) and tag any listed tickets with it
  delete           - delete the named version; fails if it does not exist

Every flag can also be supplied as a JRS_* or INPUT_* environment
variable, e.g. --release-name / JRS_RELEASE_NAME / INPUT_RELEASE_NAME.
With --dry-run the resolved configuration is reported and no Jira call
is made.`,
		RunE: runRelease,
	}

	cmd.Flags().String("email", "", "Jira account email")
	cmd.Flags().String("api-token", "", "Jira API token")
	cmd.Flags().String("subdomain", "", "Jira Cloud tenant subdomain ({subdomain}.atlassian.net)")
	cmd.Flags().String("jira-project", "", "Project key, e.g. AB")
	cmd.Flags().String("release-name", "", "Version name, the lookup key")
	cmd.Flags().String("operation", "", "Operation: create_or_update or delete")
	cmd.Flags().String("tickets", "", "Comma-separated issue keys to tag, e.g. AB-1,AB-2")
	cmd.Flags().Bool("dry-run", false, "Report the resolved configuration without calling Jira")
	cmd.Flags().String("release-description", "", "Version description")
	cmd.Flags().Bool("release-released", false, "Mark the version released")
	cmd.Flags().String("release-release-date", "", "Release date (free-form; normalized to YYYY-MM-DD)")
	cmd.Flags().Bool("release-archived", false, "Mark the version archived")

	// Errors are logged once here; suppress cobra's own reporting.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return cmd
}

// runRelease is the single error boundary: any failure from validation,
// the Jira client, or the release service is logged once with its message
// and reflected in the exit status by main.
func runRelease(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	v := viper.New()
	config.BindEnv(v)
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	if err := cfg.Validate(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			log.Error().Str("field", verr.Field).Msg(verr.Msg)
		} else {
			log.Error().Err(err).Msg("configuration invalid")
		}
		return err
	}

	client, err := jira.NewClient(cfg.Email, cfg.APIToken, cfg.Subdomain)
	if err != nil {
		log.Error().Err(err).Msg("failed to build Jira client")
		return err
	}

	log.Debug().
		Str("base_url", client.BaseURL()).
		Str("operation", cfg.Operation).
		Msg("starting release sync")

	svc := release.NewService(client, log)
	if err := svc.Run(GetContext(), cfg); err != nil {
		var inv *release.InvariantError
		if errors.As(err, &inv) {
			log.Error().Str("kind", "invariant").Msg(err.Error())
		} else {
			log.Error().Msg(err.Error())
		}
		return err
	}

	log.Info().Str("operation", cfg.Operation).Msg("done")
	return nil
}
