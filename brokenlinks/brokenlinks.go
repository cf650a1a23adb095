// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

// Package brokenlinks scan a web site for broken links.
//
// The scan start by fetching the page at [Options.Url], collect all of the
// links in element "a", and check each of them concurrently.
// Each valid link then scanned the same way, until [Options.MaxDepth].
// Each link is checked at most once.
package brokenlinks

import (
	"context"
	"fmt"
)

// Scan the URL for broken links.
func Scan(opts Options) (result *Result, err error) {
	return ScanContext(context.Background(), opts)
}

// ScanContext scan the URL for broken links using the context ctx.
// Cancelling the ctx stop the scan and return the context error.
func ScanContext(ctx context.Context, opts Options) (result *Result, err error) {
	var logp = `Scan`

	err = opts.init()
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}

	var wrk = newWorker(opts)

	result, err = wrk.run(ctx)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}
	return result, nil
}
