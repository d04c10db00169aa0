// Package httpx builds proxy-aware HTTP clients for the Jira API.
// Supported proxy modes mirror what enterprise CI runners need:
// no-proxy, system (environment), basic auth, and NTLM.
package httpx

import (
	"crypto/tls"
	"fmt"
	"net"
	nethttp "net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	ntlmssp "github.com/Azure/go-ntlmssp"
	"golang.org/x/net/http/httpproxy"

	"github.com/releasekit/jira-release-sync/internal/constants"
)

// ProxyOptions selects how outbound requests reach the network.
type ProxyOptions struct {
	// Mode is one of "no-proxy" (or empty), "system", "basic", "ntlm".
	Mode     string
	Host     string
	Port     int
	User     string
	Password string
	// NoProxy is a comma-separated bypass list (hosts, domains, CIDRs).
	NoProxy string
}

// OptionsFromEnv reads proxy options from JRS_PROXY_* environment variables.
// The default mode is "system" so standard HTTP_PROXY/HTTPS_PROXY settings
// on the runner keep working without any extra configuration.
func OptionsFromEnv() ProxyOptions {
	opts := ProxyOptions{
		Mode:     os.Getenv("JRS_PROXY_MODE"),
		Host:     os.Getenv("JRS_PROXY_HOST"),
		User:     os.Getenv("JRS_PROXY_USER"),
		Password: os.Getenv("JRS_PROXY_PASSWORD"),
		NoProxy:  os.Getenv("JRS_NO_PROXY"),
	}
	if opts.Mode == "" {
		opts.Mode = "system"
	}
	if p := os.Getenv("JRS_PROXY_PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			opts.Port = port
		}
	}
	return opts
}

// NewClient configures an HTTP client for the given proxy options.
func NewClient(opts ProxyOptions) (*nethttp.Client, error) {
	transport := &nethttp.Transport{
		DialContext: (&net.Dialer{
			Timeout:   constants.HTTPDialTimeout,
			KeepAlive: constants.HTTPDialKeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       constants.HTTPIdleConnTimeout,
		TLSHandshakeTimeout:   constants.HTTPTLSHandshakeTimeout,
		ExpectContinueTimeout: constants.HTTPExpectContinueTimeout,
	}

	switch strings.ToLower(opts.Mode) {
	case "no-proxy", "":
		transport.Proxy = nil

	case "system":
		transport.Proxy = nethttp.ProxyFromEnvironment

	case "basic":
		if opts.Host == "" {
			return nil, fmt.Errorf("proxy mode is basic but JRS_PROXY_HOST is not set")
		}
		proxyURL := buildProxyURL(opts)
		transport.Proxy = proxyFuncWithBypass(proxyURL, opts.NoProxy)

	case "ntlm":
		if opts.Host == "" {
			return nil, fmt.Errorf("proxy mode is ntlm but JRS_PROXY_HOST is not set")
		}
		proxyURL := buildProxyURL(opts)
		transport.Proxy = proxyFuncWithBypass(proxyURL, opts.NoProxy)

		// NTLM negotiation wraps the whole transport.
		return &nethttp.Client{
			Transport: ntlmssp.Negotiator{
				RoundTripper: transport,
			},
			Timeout: constants.HTTPRequestTimeout,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported proxy mode: %s", opts.Mode)
	}

	return &nethttp.Client{
		Transport: transport,
		Timeout:   constants.HTTPRequestTimeout,
	}, nil
}

// buildProxyURL constructs a proxy URL from options.
func buildProxyURL(opts ProxyOptions) *url.URL {
	port := opts.Port
	if port == 0 {
		port = 8080
	}

	proxyURL := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", opts.Host, port),
	}

	// Only embed credentials when both parts are present; an empty password
	// in the URL trips up some proxies.
	if opts.User != "" && opts.Password != "" {
		proxyURL.User = url.UserPassword(opts.User, opts.Password)
	}

	return proxyURL
}

// proxyFuncWithBypass returns a proxy function honoring the NoProxy bypass
// list. With an empty list it behaves identically to nethttp.ProxyURL.
func proxyFuncWithBypass(proxyURL *url.URL, noProxy string) func(*nethttp.Request) (*url.URL, error) {
	if noProxy == "" {
		return nethttp.ProxyURL(proxyURL)
	}
	cfg := httpproxy.Config{
		HTTPProxy:  proxyURL.String(),
		HTTPSProxy: proxyURL.String(),
		NoProxy:    noProxy,
	}
	proxyFunc := cfg.ProxyFunc()
	return func(req *nethttp.Request) (*url.URL, error) {
		return proxyFunc(req.URL)
	}
}
