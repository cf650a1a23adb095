// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/rodaine/table"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
)

// PrintSummary print the total connections, total bytes, and the number of
// links for each status code.
func PrintSummary(w io.Writer, result *brokenlinks.Result) {
	fmt.Fprintf(w, "Total connections: %d\n", result.TotalConnections)
	fmt.Fprintf(w, "Total bytes transferred: %s\n",
		FormatBytes(result.TotalBytes))

	fmt.Fprintf(w, "\nStatus Code Breakdown:\n")

	var hist = result.Histogram()
	var listCode = make([]int, 0, len(hist))
	for code := range hist {
		listCode = append(listCode, code)
	}
	slices.Sort(listCode)

	var tbl = table.New(`Status Code`, `Count`).WithWriter(w)
	for _, code := range listCode {
		tbl.AddRow(codeText(code), hist[code])
	}
	tbl.Print()
}

// FormatBytes return the size in human readable format, using the
// binary unit.
func FormatBytes(size int64) string {
	const unit = 1024
	switch {
	case size < unit:
		return fmt.Sprintf(`%d bytes`, size)
	case size < unit*unit:
		return fmt.Sprintf(`%.2f KB`, float64(size)/unit)
	case size < unit*unit*unit:
		return fmt.Sprintf(`%.2f MB`, float64(size)/(unit*unit))
	case size < unit*unit*unit*unit:
		return fmt.Sprintf(`%.2f GB`, float64(size)/(unit*unit*unit))
	}
	return fmt.Sprintf(`%.2f TB`, float64(size)/(unit*unit*unit*unit))
}
