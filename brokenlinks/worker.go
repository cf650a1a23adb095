// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// page contains the fetched document that will be scanned for links.
type page struct {
	url         *url.URL
	contentType string
	body        []byte
	depth       int
}

type worker struct {
	log *logrus.Logger

	fetch *fetcher

	// visited store the links that has been scheduled for checking.
	visited *registry

	// result contains the final result after all of the pages has been
	// scanned.
	result *Result

	opts Options

	connections atomic.Int64
	bytes       atomic.Int64
}

func newWorker(opts Options) (wrk *worker) {
	wrk = &worker{
		opts:    opts,
		log:     opts.Logger,
		visited: newRegistry(),
		result:  &Result{},
	}
	wrk.fetch = newFetcher(&wrk.opts)
	return wrk
}

// run scan the pages level by level, start from [Options.Url] at depth
// 0 until [Options.MaxDepth].
// Each page in the current level is fetched, its links are checked, and
// the valid links become the pages for the next level.
func (wrk *worker) run(ctx context.Context) (result *Result, err error) {
	var seedUrl = wrk.opts.scanUrl
	wrk.visited.tryClaim(seedUrl.String())

	// Fetch the first URL to make sure that the server is reachable.
	var seed *page
	seed, err = wrk.fetchPage(ctx, seedUrl, 0)
	if err != nil {
		return nil, err
	}

	var (
		frontier = []*page{seed}
		depth    int
	)
	for depth = 0; depth <= wrk.opts.MaxDepth; depth++ {
		if len(frontier) == 0 {
			break
		}
		wrk.log.Debugf(`scan: depth %d with %d pages`, depth,
			len(frontier))

		var next []*page
		for _, pg := range frontier {
			if pg.body == nil {
				pg, err = wrk.fetchPage(ctx, pg.url, depth)
				if err != nil {
					if ctx.Err() != nil {
						return nil, ctx.Err()
					}
					wrk.log.Warnf(`Failed to retrieve the webpage: %s (%s)`,
						pg.url, err)
					continue
				}
			}

			var listLink []Link
			listLink, err = wrk.scan(ctx, pg)
			if err != nil {
				return nil, err
			}
			next = wrk.appendNext(next, listLink, depth+1)
		}
		frontier = next
	}

	wrk.log.Debugf(`scan: %d links seen, %d checked`, wrk.visited.len(),
		len(wrk.result.Links))

	wrk.result.TotalConnections = wrk.connections.Load()
	wrk.result.TotalBytes = wrk.bytes.Load()
	wrk.result.sort()
	return wrk.result, nil
}

// fetchPage get the page content.
// Page that response with status code 400 or above is an error.
func (wrk *worker) fetchPage(ctx context.Context, pageUrl *url.URL, depth int) (
	pg *page, err error,
) {
	var httpResp *http.Response

	httpResp, err = wrk.fetch.do(ctx, http.MethodGet, pageUrl.String())
	if err != nil {
		return &page{url: pageUrl, depth: depth}, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= http.StatusBadRequest {
		return &page{url: pageUrl, depth: depth},
			fmt.Errorf(`%s: return HTTP status code %d`, pageUrl,
				httpResp.StatusCode)
	}

	pg = &page{
		url:         pageUrl,
		contentType: httpResp.Header.Get(`Content-Type`),
		depth:       depth,
	}
	if !isParseable(pg.contentType) {
		pg.body = []byte{}
		return pg, nil
	}
	pg.body, err = wrk.fetch.readBody(httpResp)
	if err != nil {
		return pg, err
	}
	return pg, nil
}

// scan extract the links from page, claim the one that has not been seen,
// and check them.
func (wrk *worker) scan(ctx context.Context, pg *page) (listLink []Link, err error) {
	if !isParseable(pg.contentType) {
		wrk.log.Debugf(`scan: skip %s with content type %q`, pg.url,
			pg.contentType)
		return nil, nil
	}

	var (
		listUrl = extractLinks(pg.url, pg.contentType, pg.body)
		claimed []*url.URL
	)
	for _, linkUrl := range listUrl {
		if !isHTTP(linkUrl) {
			wrk.log.Debugf(`Skipping non-HTTP URL: %s`, linkUrl)
			continue
		}
		if !wrk.visited.tryClaim(linkUrl.String()) {
			continue
		}
		claimed = append(claimed, linkUrl)
	}
	if len(claimed) == 0 {
		return nil, nil
	}

	listLink, err = wrk.checkBatch(ctx, pg.url.String(), pg.depth, claimed)
	if err != nil {
		return nil, err
	}
	wrk.result.Links = append(wrk.result.Links, listLink...)
	return listLink, nil
}

// appendNext append the valid links as the pages for the next depth.
// Link with content type that does not contains links is not fetched.
func (wrk *worker) appendNext(next []*page, listLink []Link, depth int) []*page {
	if depth > wrk.opts.MaxDepth {
		return next
	}
	for _, link := range listLink {
		if link.Status != StatusValid {
			continue
		}
		if !isParseable(link.ContentType) {
			continue
		}
		var linkUrl, err = url.Parse(link.Url)
		if err != nil {
			continue
		}
		next = append(next, &page{
			url:   linkUrl,
			depth: depth,
		})
	}
	return next
}
