// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package report

import (
	"bufio"
	"fmt"
	"io"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
)

// textWriter write one link per line, "<url> - <status>".
type textWriter struct{}

func (textWriter) Write(w io.Writer, listLink []brokenlinks.Link) (err error) {
	var bw = bufio.NewWriter(w)
	for _, link := range listLink {
		fmt.Fprintf(bw, "%s - %s\n", link.Url, statusText(link))
	}
	return bw.Flush()
}
