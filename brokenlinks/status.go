// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import "net/http"

// Status define the classification of a checked link.
type Status string

// List of link classification.
const (
	// StatusValid for link that response with HTTP status code below
	// 400.
	StatusValid Status = `Valid`

	// StatusClientError for link that response with HTTP status code
	// 400 to 499.
	StatusClientError Status = `Client Error`

	// StatusServerError for link that response with HTTP status code
	// 500 to 599.
	StatusServerError Status = `Server Error`

	// StatusBroken for link that response with HTTP status code 600 or
	// above.
	StatusBroken Status = `Broken`

	// StatusError for link that cannot be fetched at all, either timeout,
	// connection refused, or the domain does not exist.
	StatusError Status = `Error`
)

// Classify return the Status for HTTP status code.
func Classify(code int) Status {
	switch {
	case code < http.StatusBadRequest:
		return StatusValid
	case code < http.StatusInternalServerError:
		return StatusClientError
	case code < 600:
		return StatusServerError
	}
	return StatusBroken
}

// IsBroken return true if the status is not [StatusValid].
func (status Status) IsBroken() bool {
	return status != StatusValid
}
