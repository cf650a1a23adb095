// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

// Package brokenlink provide the version and the usage of brokenlink
// program.
// The scanner itself is in package brokenlinks and the report writer in
// package report.
package brokenlink

import (
	_ "embed"
)

// Version of brokenlink program and module.
var Version = `0.3.0`

// GoEmbedReadme embed the README for showing the usage of program.
//
//go:embed README
var GoEmbedReadme string
