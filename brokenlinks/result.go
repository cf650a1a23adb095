// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"slices"
	"strings"
)

// Link store the result of checking one link: the HTTP status code, its
// classification, and the error message when the link cannot be fetched.
type Link struct {
	// Url is the absolute address of the link, without fragment.
	Url string `json:"url"`

	// Parent is the page where the link first found.
	Parent string `json:"parent,omitempty"`

	Status Status `json:"status"`

	// Error contains the reason why the link cannot be fetched.
	// Only set when Status is [StatusError].
	Error string `json:"error,omitempty"`

	// ContentType of the response, if any.
	ContentType string `json:"content_type,omitempty"`

	// Code is the HTTP status code, zero when Status is [StatusError].
	Code int `json:"status_code"`

	// Depth of the Parent page, start from 0 for the scanned URL.
	Depth int `json:"depth"`
}

// Result store the result of scanning links.
type Result struct {
	// Links contains all of the checked links, sorted by Url.
	Links []Link `json:"links"`

	// TotalConnections is the number of link being checked.
	TotalConnections int64 `json:"total_connections"`

	// TotalBytes is the sum of Content-Length from each checked link.
	TotalBytes int64 `json:"total_bytes"`
}

// Broken return only the links that are not [StatusValid].
func (result *Result) Broken() (listBroken []Link) {
	for _, link := range result.Links {
		if link.Status.IsBroken() {
			listBroken = append(listBroken, link)
		}
	}
	return listBroken
}

// Histogram return the number of links for each HTTP status code.
// Links with [StatusError] are counted on code 0.
func (result *Result) Histogram() (hist map[int]int) {
	hist = map[int]int{}
	for _, link := range result.Links {
		hist[link.Code]++
	}
	return hist
}

func (result *Result) sort() {
	slices.SortFunc(result.Links, func(a, b Link) int {
		return strings.Compare(a.Url, b.Url)
	})
}
