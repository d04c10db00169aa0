// Package jira provides the authenticated Jira Cloud REST client.
package jira

import (
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
)

// NotFoundError indicates a lookup by name found no exact match.
type NotFoundError struct {
	Kind string // "version" or "project"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// RemoteError is any failure surfaced by the Jira API: auth failure,
// missing entity, server error, conflict. The response body is carried
// verbatim for the top-level error report.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("jira request %s %s failed: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// newRemoteError drains the response body into a RemoteError.
func newRemoteError(method, path string, resp *nethttp.Response) *RemoteError {
	body, _ := io.ReadAll(resp.Body)
	return &RemoteError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
