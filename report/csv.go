// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
)

// csvHeader is the first row in CSV and XLSX report.
var csvHeader = []string{`url`, `status`, `status_code`}

// csvWriter write the links in CSV with header "url,status,status_code".
// The status_code is empty for link that cannot be fetched.
type csvWriter struct{}

func (csvWriter) Write(w io.Writer, listLink []brokenlinks.Link) (err error) {
	var cw = csv.NewWriter(w)

	err = cw.Write(csvHeader)
	if err != nil {
		return err
	}
	for _, link := range listLink {
		var code string
		if link.Code != 0 {
			code = strconv.Itoa(link.Code)
		}
		err = cw.Write([]string{link.Url, statusText(link), code})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
