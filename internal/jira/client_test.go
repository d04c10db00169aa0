package jira

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/releasekit/jira-release-sync/internal/models"
)

// testClient returns a Client pointed at the test server.
func testClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		email:      "ci-bot@example.com",
		apiToken:   "secret-token",
	}
}

// TestNewClientRejectsEmptySubdomain verifies that NewClient fails fast
// instead of building a client whose every request would hit a bad URL.
func TestNewClientRejectsEmptySubdomain(t *testing.T) {
	_, err := NewClient("ci-bot@example.com", "token", "")
	if err == nil {
		t.Fatal("NewClient() should return error for empty subdomain")
	}
}

// TestNewClientBuildsTenantBaseURL verifies base URL assembly from the
// tenant subdomain.
func TestNewClientBuildsTenantBaseURL(t *testing.T) {
	client, err := NewClient("ci-bot@example.com", "token", "example")
	if err != nil {
		t.Fatalf("NewClient() error = %v, want nil", err)
	}
	if got, want := client.BaseURL(), "https://example.atlassian.net"; got != want {
		t.Errorf("BaseURL() = %q, want %q", got, want)
	}
}

func TestDoRequestSetsBasicAuthAndJSONHeaders(t *testing.T) {
	var gotAuthUser, gotAuthPass string
	var gotAuthOK bool
	var gotAccept string

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotAuthUser, gotAuthPass, gotAuthOK = r.BasicAuth()
		gotAccept = r.Header.Get("Accept")
		json.NewEncoder(w).Encode(models.PagedVersions{})
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.FindVersionByName(context.Background(), "AB", "v1.2.0")
	if !IsNotFound(err) {
		t.Fatalf("FindVersionByName() error = %v, want NotFoundError", err)
	}

	if !gotAuthOK {
		t.Fatal("request carried no basic auth header")
	}
	if gotAuthUser != "ci-bot@example.com" || gotAuthPass != "secret-token" {
		t.Errorf("basic auth = %q:%q, want email:token", gotAuthUser, gotAuthPass)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

// TestFindVersionByNameScansForExactMatch verifies that fuzzy server-side
// matches are filtered down to exact, case-sensitive name equality.
func TestFindVersionByNameScansForExactMatch(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if got := r.URL.Query().Get("query"); got != "v1.2.0" {
			t.Errorf("query param = %q, want v1.2.0", got)
		}
		json.NewEncoder(w).Encode(models.PagedVersions{
			Values: []models.Version{
				{ID: "1", Name: "v1.2.0-beta"},
				{ID: "2", Name: "V1.2.0"},
				{ID: "3", Name: "v1.2.0"},
				{ID: "4", Name: "v1.2.0"},
			},
		})
	}))
	defer srv.Close()

	client := testClient(srv)
	got, err := client.FindVersionByName(context.Background(), "AB", "v1.2.0")
	if err != nil {
		t.Fatalf("FindVersionByName() error = %v, want nil", err)
	}
	if got.ID != "3" {
		t.Errorf("FindVersionByName() id = %q, want first exact match %q", got.ID, "3")
	}
}

func TestFindVersionByNameNotFound(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		json.NewEncoder(w).Encode(models.PagedVersions{
			Values: []models.Version{{ID: "1", Name: "v1.2.0-beta"}},
		})
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.FindVersionByName(context.Background(), "AB", "v1.2.0")
	if !IsNotFound(err) {
		t.Fatalf("FindVersionByName() error = %v, want NotFoundError", err)
	}
	if !strings.Contains(err.Error(), "v1.2.0") {
		t.Errorf("error %q should carry the version name", err.Error())
	}
}

// TestCreateVersionSerializesNullReleaseDate verifies the wire invariant:
// an unreleased version's payload carries an explicit null releaseDate so
// any previously stored date is cleared.
func TestCreateVersionSerializesNullReleaseDate(t *testing.T) {
	var gotBody string

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(nethttp.StatusCreated)
		json.NewEncoder(w).Encode(models.Version{ID: "10100", Name: "v1.2.0"})
	}))
	defer srv.Close()

	client := testClient(srv)
	created, err := client.CreateVersion(context.Background(), models.VersionPayload{
		Name:      "v1.2.0",
		ProjectID: 10001,
	})
	if err != nil {
		t.Fatalf("CreateVersion() error = %v, want nil", err)
	}
	if created.ID != "10100" {
		t.Errorf("CreateVersion() id = %q, want 10100", created.ID)
	}
	if !strings.Contains(gotBody, `"releaseDate":null`) {
		t.Errorf("request body %q should carry an explicit null releaseDate", gotBody)
	}
}

func TestUpdateVersionAddressesByID(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(models.Version{ID: "10200", Name: "v1.2.0"})
	}))
	defer srv.Close()

	client := testClient(srv)
	date := "2024-03-05"
	_, err := client.UpdateVersion(context.Background(), "10200", models.VersionPayload{
		Name:        "v1.2.0",
		Released:    true,
		ReleaseDate: &date,
	})
	if err != nil {
		t.Fatalf("UpdateVersion() error = %v, want nil", err)
	}
	if gotPath != "/rest/api/3/version/10200" {
		t.Errorf("path = %q, want /rest/api/3/version/10200", gotPath)
	}
}

func TestDeleteVersionAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != "DELETE" {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("delete carried query %q, want none (no replacement version)", r.URL.RawQuery)
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}))
	defer srv.Close()

	client := testClient(srv)
	if err := client.DeleteVersion(context.Background(), "10300"); err != nil {
		t.Fatalf("DeleteVersion() error = %v, want nil", err)
	}
}

func TestAddFixVersionPayload(t *testing.T) {
	var gotPath, gotBody string

	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(nethttp.StatusNoContent)
	}))
	defer srv.Close()

	client := testClient(srv)
	if err := client.AddFixVersion(context.Background(), "AB-1", "10100"); err != nil {
		t.Fatalf("AddFixVersion() error = %v, want nil", err)
	}
	if gotPath != "/rest/api/3/issue/AB-1" {
		t.Errorf("path = %q, want /rest/api/3/issue/AB-1", gotPath)
	}
	if !strings.Contains(gotBody, `"add":{"id":"10100"}`) {
		t.Errorf("body %q should add fix version by id", gotBody)
	}
}

func TestRemoteErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusBadRequest)
		io.WriteString(w, `{"errorMessages":["A version with this name already exists"]}`)
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.CreateVersion(context.Background(), models.VersionPayload{Name: "v1.2.0"})
	if err == nil {
		t.Fatal("CreateVersion() should fail on 400")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error = %T, want *RemoteError", err)
	}
	if remoteErr.StatusCode != nethttp.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", remoteErr.StatusCode)
	}
	if !strings.Contains(remoteErr.Body, "already exists") {
		t.Errorf("Body %q should echo the server message", remoteErr.Body)
	}
}
