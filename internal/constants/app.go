package constants

import (
	"time"
)

// Jira Cloud API
const (
	// JiraCloudDomain - every Jira Cloud tenant lives under this domain.
	// The base URL is https://{subdomain}.atlassian.net
	JiraCloudDomain = "atlassian.net"

	// APIPrefix - Jira Cloud REST API v3 path prefix
	APIPrefix = "/rest/api/3"

	// VersionPageSize - page size for the project version listing.
	// Only the first page is ever requested (see jira.FindVersionByName).
	VersionPageSize = 50
)

// HTTP transport retry configuration
const (
	// HTTPRetryMax - transport-level retries for transient failures
	// (connection resets, 5xx). Logical operations are never re-issued.
	HTTPRetryMax = 3

	// HTTPRetryWaitMin - initial delay before first retry
	HTTPRetryWaitMin = 1 * time.Second

	// HTTPRetryWaitMax - maximum delay between retries
	HTTPRetryWaitMax = 10 * time.Second
)

// HTTP client timeouts
const (
	// HTTPRequestTimeout - overall timeout for a single API request
	HTTPRequestTimeout = 60 * time.Second

	// HTTPIdleConnTimeout - how long to keep idle connections open
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPTLSHandshakeTimeout - timeout for TLS handshake
	HTTPTLSHandshakeTimeout = 10 * time.Second

	// HTTPExpectContinueTimeout - timeout for 100-continue response
	HTTPExpectContinueTimeout = 1 * time.Second

	// HTTPDialTimeout - timeout for establishing connection
	HTTPDialTimeout = 30 * time.Second

	// HTTPDialKeepAlive - keep-alive period for dialer
	HTTPDialKeepAlive = 30 * time.Second
)
