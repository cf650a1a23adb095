// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultUserAgent is the User-Agent sent on each request, unless the
// [Options.Headers] set one.
const DefaultUserAgent = `Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36`

// List of default values for Options.
const (
	DefaultMaxDepth     = 1
	DefaultConcurrency  = 10
	DefaultTimeout      = 10 * time.Second
	DefaultMaxRetry     = 5
	DefaultRetryBackoff = 1 * time.Second
	DefaultMaxBodyBytes = 6 << 20
)

// defaultRetryStatus list of HTTP status code that will be retried.
var defaultRetryStatus = []int{
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// Options define the options for scanning broken links.
type Options struct {
	// Logger where the progress is written.
	// If its nil, the log written to stderr.
	Logger *logrus.Logger

	// Headers to be sent on each request.
	Headers map[string]string
	header  http.Header

	// The URL to be scanned.
	// If the URL does not have scheme, it will be set to "http".
	Url     string
	scanUrl *url.URL

	// ExcludeDomains list of domain that will not be checked.
	// Any link where its host equal or end with one of the domain
	// will be skipped.
	ExcludeDomains []string
	excludeDomains []string

	// RetryStatus list of HTTP status code that will be retried.
	// Default to 500, 502, 503, and 504.
	RetryStatus []int

	// MaxDepth define how deep the pages will be scanned.
	// Zero means only the links inside the scanned URL will be checked.
	MaxDepth int

	// Concurrency define the number of links checked at the same time.
	// Default to [DefaultConcurrency].
	Concurrency int

	// MaxRetry define the number of retry after the first request for
	// response with one of RetryStatus.
	// Zero means [DefaultMaxRetry], negative value disable retry.
	MaxRetry int

	// Timeout for each request.
	// Default to [DefaultTimeout].
	Timeout time.Duration

	// RetryBackoff define the base for exponential backoff between
	// retries.
	// Default to [DefaultRetryBackoff].
	RetryBackoff time.Duration

	// RateLimit limit the number of request per second for each host.
	// Zero means unlimited.
	RateLimit float64

	// MaxBodyBytes limit the size of page being parsed.
	// Default to [DefaultMaxBodyBytes].
	MaxBodyBytes int64

	IsVerbose bool

	// Insecure do not report error on server with invalid certificates.
	Insecure bool

	// Head check the links using HTTP method HEAD instead of GET.
	Head bool
}

// ParseHeaders parse the JSON object into map of HTTP header.
// Empty string return nil headers.
func ParseHeaders(raw string) (headers map[string]string, err error) {
	var logp = `ParseHeaders`

	raw = strings.TrimSpace(raw)
	if raw == `` {
		return nil, nil
	}
	err = json.Unmarshal([]byte(raw), &headers)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}
	return headers, nil
}

// ParseExcludeDomains split the comma separated list of domain.
func ParseExcludeDomains(raw string) (listDomain []string) {
	for _, val := range strings.Split(raw, `,`) {
		val = strings.TrimSpace(val)
		if val == `` {
			continue
		}
		listDomain = append(listDomain, val)
	}
	return listDomain
}

func (opts *Options) init() (err error) {
	var logp = `Options`

	var rawUrl = strings.TrimSpace(opts.Url)
	if rawUrl == `` {
		return fmt.Errorf(`%s: empty URL`, logp)
	}
	if !strings.Contains(rawUrl, `://`) {
		rawUrl = `http://` + rawUrl
	}
	opts.scanUrl, err = url.Parse(rawUrl)
	if err != nil {
		return fmt.Errorf(`%s: invalid URL %q`, logp, opts.Url)
	}
	if opts.scanUrl.Scheme != `http` && opts.scanUrl.Scheme != `https` {
		return fmt.Errorf(`%s: invalid URL scheme %q`, logp,
			opts.scanUrl.Scheme)
	}
	if opts.scanUrl.Host == `` {
		return fmt.Errorf(`%s: invalid URL %q`, logp, opts.Url)
	}
	normalizeUrl(opts.scanUrl)

	if opts.MaxDepth < 0 {
		return fmt.Errorf(`%s: invalid depth %d`, logp, opts.MaxDepth)
	}
	if opts.Concurrency < 0 {
		return fmt.Errorf(`%s: invalid concurrency %d`, logp,
			opts.Concurrency)
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout < 0 {
		return fmt.Errorf(`%s: invalid timeout %s`, logp, opts.Timeout)
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetry == 0 {
		opts.MaxRetry = DefaultMaxRetry
	} else if opts.MaxRetry < 0 {
		opts.MaxRetry = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if len(opts.RetryStatus) == 0 {
		opts.RetryStatus = defaultRetryStatus
	}
	for _, code := range opts.RetryStatus {
		if code < http.StatusContinue || code > 599 {
			return fmt.Errorf(`%s: unknown status code %d`, logp, code)
		}
	}
	if opts.RateLimit < 0 {
		return fmt.Errorf(`%s: invalid rate limit %v`, logp,
			opts.RateLimit)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	opts.excludeDomains = nil
	for _, domain := range opts.ExcludeDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		domain = strings.TrimPrefix(domain, `.`)
		if domain == `` {
			continue
		}
		opts.excludeDomains = append(opts.excludeDomains, domain)
	}

	opts.header = http.Header{}
	for key, val := range opts.Headers {
		key = strings.TrimSpace(key)
		if key == `` {
			return fmt.Errorf(`%s: empty header name`, logp)
		}
		opts.header.Set(key, val)
	}
	if opts.header.Get(`User-Agent`) == `` {
		opts.header.Set(`User-Agent`, DefaultUserAgent)
	}

	if opts.Logger == nil {
		opts.Logger = logrus.New()
		opts.Logger.SetOutput(os.Stderr)
		if opts.IsVerbose {
			opts.Logger.SetLevel(logrus.DebugLevel)
		}
	}
	return nil
}

// isExcluded return true if the host of addr is equal or end with one
// of the excluded domains.
func (opts *Options) isExcluded(addr *url.URL) bool {
	var host = strings.ToLower(addr.Hostname())
	for _, domain := range opts.excludeDomains {
		if strings.HasSuffix(host, domain) {
			return true
		}
	}
	return false
}
