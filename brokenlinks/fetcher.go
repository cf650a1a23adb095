// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// maxBackoff limit the wait between retries.
const maxBackoff = 120 * time.Second

// fetcher send the HTTP request and retry it when the server response
// with one of [Options.RetryStatus].
type fetcher struct {
	httpc *http.Client
	log   *logrus.Logger

	// limiters store the rate limiter for each host.
	limiters map[string]*rate.Limiter

	opts *Options

	mtxLimiter sync.Mutex
}

func newFetcher(opts *Options) (fetch *fetcher) {
	var netDial = &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	var tlsConfig = &tls.Config{
		InsecureSkipVerify: opts.Insecure,
	}

	fetch = &fetcher{
		opts:     opts,
		log:      opts.Logger,
		limiters: map[string]*rate.Limiter{},
		httpc: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext:           netDial.DialContext,
				ExpectContinueTimeout: 1 * time.Second,
				ForceAttemptHTTP2:     true,
				IdleConnTimeout:       90 * time.Second,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   opts.Concurrency,
				TLSClientConfig:       tlsConfig,
				TLSHandshakeTimeout:   10 * time.Second,
			},
		},
	}
	return fetch
}

// do send request with method to addr.
// On response with status code listed in [Options.RetryStatus], the
// request will be retried [Options.MaxRetry] times with exponential backoff.
// If all retries are exhausted, it return the last response.
func (fetch *fetcher) do(ctx context.Context, method, addr string) (
	httpResp *http.Response, err error,
) {
	var (
		maxAttempt = fetch.opts.MaxRetry + 1
		attempt    int
	)
	for attempt = 1; ; attempt++ {
		if attempt > 1 {
			err = sleep(ctx, fetch.backoff(attempt-1))
			if err != nil {
				return nil, err
			}
		}

		httpResp, err = fetch.send(ctx, method, addr)
		if err != nil {
			var errDNS *net.DNSError
			if errors.As(err, &errDNS) && errDNS.Timeout() &&
				attempt < maxAttempt {
				fetch.log.Debugf(`fetch: retry %s %s: %s`, method,
					addr, err)
				continue
			}
			return nil, err
		}
		if attempt >= maxAttempt {
			return httpResp, nil
		}
		if !slices.Contains(fetch.opts.RetryStatus, httpResp.StatusCode) {
			return httpResp, nil
		}

		fetch.log.Debugf(`fetch: retry %s %s: %d`, method, addr,
			httpResp.StatusCode)
		discard(httpResp)
	}
}

func (fetch *fetcher) send(ctx context.Context, method, addr string) (
	httpResp *http.Response, err error,
) {
	var req *http.Request

	req, err = http.NewRequestWithContext(ctx, method, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header = fetch.opts.header.Clone()
	if method == http.MethodGet {
		req.Header.Set(`Accept-Encoding`, `gzip, deflate, br`)
	}

	err = fetch.wait(ctx, req.URL.Host)
	if err != nil {
		return nil, err
	}

	fetch.log.Debugf(`scan: %s %s`, method, addr)

	return fetch.httpc.Do(req)
}

// backoff return the duration to wait before the n-th retry.
// The first retry is immediate, the next one wait for
// RetryBackoff * 2^(n-1).
func (fetch *fetcher) backoff(retry int) (wait time.Duration) {
	if retry <= 1 {
		return 0
	}
	wait = fetch.opts.RetryBackoff << (retry - 1)
	if wait <= 0 || wait > maxBackoff {
		wait = maxBackoff
	}
	return wait
}

// wait block until the rate limiter for host allow the next request.
func (fetch *fetcher) wait(ctx context.Context, host string) (err error) {
	if fetch.opts.RateLimit <= 0 {
		return nil
	}

	fetch.mtxLimiter.Lock()
	var limiter = fetch.limiters[host]
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(fetch.opts.RateLimit), 1)
		fetch.limiters[host] = limiter
	}
	fetch.mtxLimiter.Unlock()

	return limiter.Wait(ctx)
}

// readBody read the response body, decompress it based on
// Content-Encoding, up to [Options.MaxBodyBytes].
func (fetch *fetcher) readBody(httpResp *http.Response) (body []byte, err error) {
	var logp = `readBody`
	var reader io.Reader = httpResp.Body

	var encoding = strings.ToLower(httpResp.Header.Get(`Content-Encoding`))
	switch encoding {
	case ``, `identity`:
	case `gzip`, `x-gzip`:
		var gzr *gzip.Reader
		gzr, err = gzip.NewReader(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf(`%s: %w`, logp, err)
		}
		defer gzr.Close()
		reader = gzr
	case `br`:
		reader = brotli.NewReader(httpResp.Body)
	case `deflate`:
		var flr io.ReadCloser
		flr, err = newDeflateReader(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf(`%s: %w`, logp, err)
		}
		defer flr.Close()
		reader = flr
	default:
		return nil, fmt.Errorf(`%s: unsupported Content-Encoding %q`,
			logp, encoding)
	}

	body, err = io.ReadAll(io.LimitReader(reader, fetch.opts.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}
	return body, nil
}

// newDeflateReader return the reader for body with Content-Encoding
// "deflate".
// The body should be in zlib format, but some servers send the raw
// deflate stream, so the zlib header is checked first.
func newDeflateReader(body io.Reader) (io.ReadCloser, error) {
	var bufr = bufio.NewReader(body)

	var header, err = bufr.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(header) == 0 {
		return io.NopCloser(bufr), nil
	}
	if isZlibHeader(header) {
		return zlib.NewReader(bufr)
	}
	return flate.NewReader(bufr), nil
}

// isZlibHeader return true if the first two bytes is valid zlib header,
// using compression method 8 (deflate) with valid check bits (RFC 1950).
func isZlibHeader(header []byte) bool {
	if len(header) < 2 {
		return false
	}
	if header[0]&0x0f != 8 || header[0]>>4 > 7 {
		return false
	}
	return (uint16(header[0])<<8|uint16(header[1]))%31 == 0
}

// discard read some of the response body and close it, so the connection
// can be reused.
func discard(httpResp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
	httpResp.Body.Close()
}

func sleep(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return ctx.Err()
	}
	var timer = time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return nil
}
