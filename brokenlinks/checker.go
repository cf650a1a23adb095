// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// checkBatch check the status of each link concurrently, limited by
// [Options.Concurrency], and wait until all of them finished.
// Link with excluded domain is skipped.
// The returned links are in the same order as listUrl, minus the skipped
// one.
func (wrk *worker) checkBatch(
	ctx context.Context, parent string, depth int, listUrl []*url.URL,
) (listLink []Link, err error) {
	var (
		checked = make([]Link, len(listUrl))
		skipped = make([]bool, len(listUrl))
		eg      errgroup.Group
	)
	eg.SetLimit(wrk.opts.Concurrency)

	for x, linkUrl := range listUrl {
		if wrk.opts.isExcluded(linkUrl) {
			wrk.log.Infof(`Skipping excluded domain: %s`, linkUrl)
			skipped[x] = true
			continue
		}
		err = ctx.Err()
		if err != nil {
			break
		}
		eg.Go(func() error {
			checked[x] = wrk.check(ctx, linkUrl.String())
			checked[x].Parent = parent
			checked[x].Depth = depth
			return nil
		})
	}
	_ = eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	for x, link := range checked {
		if skipped[x] {
			continue
		}
		listLink = append(listLink, link)
	}
	return listLink, nil
}

// check fetch the link and classify its status.
func (wrk *worker) check(ctx context.Context, addr string) (link Link) {
	var method = http.MethodGet
	if wrk.opts.Head {
		method = http.MethodHead
	}

	link.Url = addr

	var httpResp, err = wrk.fetch.do(ctx, method, addr)
	wrk.connections.Add(1)
	if err != nil {
		link.Status = StatusError
		link.Error = err.Error()
		wrk.log.Warnf(`error: %s: %s`, addr, err)
		return link
	}
	defer discard(httpResp)

	link.Code = httpResp.StatusCode
	link.Status = Classify(link.Code)
	link.ContentType = httpResp.Header.Get(`Content-Type`)

	var size = contentLength(httpResp)
	wrk.bytes.Add(size)

	if link.Status.IsBroken() {
		wrk.log.Infof(`Broken link: %s (%d %s)`, addr, link.Code,
			link.Status)
	} else {
		wrk.log.Debugf(`Valid link: %s (%d)`, addr, link.Code)
	}
	return link
}

// contentLength return the value of Content-Length header, or 0 if its
// not exist or invalid.
func contentLength(httpResp *http.Response) int64 {
	var val = strings.TrimSpace(httpResp.Header.Get(`Content-Length`))
	if val == `` {
		return 0
	}
	var size, err = strconv.ParseInt(val, 10, 64)
	if err != nil || size < 0 {
		return 0
	}
	return size
}
