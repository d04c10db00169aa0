package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/releasekit/jira-release-sync/internal/config"
	"github.com/releasekit/jira-release-sync/internal/models"
)

func validRunConfig() *config.Config {
	return &config.Config{
		Email:       "ci-bot@example.com",
		APIToken:    "token",
		Subdomain:   "example",
		Project:     "AB",
		ReleaseName: "v1.2.0",
		Operation:   config.OperationCreateOrUpdate,
	}
}

func TestRunDryRunPerformsZeroRequests(t *testing.T) {
	api := &fakeAPI{}
	svc := newTestService(api)

	cfg := validRunConfig()
	cfg.DryRun = true
	cfg.Tickets = "AB-1,AB-2"

	require.NoError(t, svc.Run(context.Background(), cfg))
	assert.Empty(t, api.calls, "dry run must not touch the tracker")
}

func TestRunDryRunSkipsDeleteToo(t *testing.T) {
	api := &fakeAPI{existing: &models.Version{ID: "10200", Name: "v1.2.0"}}
	svc := newTestService(api)

	cfg := validRunConfig()
	cfg.Operation = config.OperationDelete
	cfg.DryRun = true

	require.NoError(t, svc.Run(context.Background(), cfg))
	assert.Empty(t, api.calls)
}

func TestRunEmptyTicketsSkipsTagging(t *testing.T) {
	api := &fakeAPI{project: &models.Project{ID: "10001", Key: "AB"}}
	svc := newTestService(api)

	cfg := validRunConfig()
	cfg.Tickets = ""

	require.NoError(t, svc.Run(context.Background(), cfg))
	for _, call := range api.calls {
		assert.NotContains(t, call, "tag:")
	}
}

func TestRunTagsTicketsInOrder(t *testing.T) {
	api := &fakeAPI{project: &models.Project{ID: "10001", Key: "AB"}}
	svc := newTestService(api)

	cfg := validRunConfig()
	cfg.Tickets = "AB-1, AB-2"

	require.NoError(t, svc.Run(context.Background(), cfg))
	assert.Equal(t, []string{"AB-1", "AB-2"}, api.tagged)
}

func TestRunFirstTaggingFailureAbortsTheRest(t *testing.T) {
	api := &fakeAPI{
		project:  &models.Project{ID: "10001", Key: "AB"},
		tagErrOn: "AB-1",
	}
	svc := newTestService(api)

	cfg := validRunConfig()
	cfg.Tickets = "AB-1, AB-2"

	err := svc.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, api.calls, "tag:AB-1")
	assert.NotContains(t, api.calls, "tag:AB-2", "the second request must not be issued after the first fails")
}

func TestRunInvariantWhenReconciledVersionLacksID(t *testing.T) {
	api := &fakeAPI{
		project: &models.Project{ID: "10001", Key: "AB"},
		created: &models.Version{Name: "v1.2.0"}, // no id
	}
	svc := newTestService(api)

	cfg := validRunConfig()
	cfg.Tickets = "AB-1"

	err := svc.Run(context.Background(), cfg)
	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Empty(t, api.tagged)
}

func TestRunDeleteIgnoresTickets(t *testing.T) {
	api := &fakeAPI{existing: &models.Version{ID: "10300", Name: "v1.2.0"}}
	svc := newTestService(api)

	cfg := validRunConfig()
	cfg.Operation = config.OperationDelete
	cfg.Tickets = "AB-1,AB-2"

	require.NoError(t, svc.Run(context.Background(), cfg))
	assert.Equal(t, "10300", api.deletedID)
	assert.Empty(t, api.tagged)
}
