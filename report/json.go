// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
)

// record is the link as written in JSON report.
type record struct {
	Url        string             `json:"url"`
	StatusCode *int               `json:"status_code"`
	Status     brokenlinks.Status `json:"status"`
	Error      string             `json:"error,omitempty"`
}

type jsonWriter struct{}

func (jsonWriter) Write(w io.Writer, listLink []brokenlinks.Link) (err error) {
	var listRecord = make([]record, 0, len(listLink))
	for _, link := range listLink {
		var rec = record{
			Url:    link.Url,
			Status: link.Status,
			Error:  link.Error,
		}
		if link.Code != 0 {
			var code = link.Code
			rec.StatusCode = &code
		}
		listRecord = append(listRecord, rec)
	}

	var enc = json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent(``, `    `)
	return enc.Encode(listRecord)
}

// ReadJSON read the JSON report from file.
func ReadJSON(path string) (listLink []brokenlinks.Link, err error) {
	var logp = `ReadJSON`
	var file *os.File

	file, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, logp, err)
	}
	defer file.Close()

	listLink, err = DecodeJSON(file)
	if err != nil {
		return nil, fmt.Errorf(`%s: %s: %w`, logp, path, err)
	}
	return listLink, nil
}

// DecodeJSON decode the JSON report from r.
func DecodeJSON(r io.Reader) (listLink []brokenlinks.Link, err error) {
	var listRecord []record

	err = json.NewDecoder(r).Decode(&listRecord)
	if err != nil {
		return nil, err
	}
	for _, rec := range listRecord {
		var link = brokenlinks.Link{
			Url:    rec.Url,
			Status: rec.Status,
			Error:  rec.Error,
		}
		if rec.StatusCode != nil {
			link.Code = *rec.StatusCode
		}
		listLink = append(listLink, link)
	}
	return listLink, nil
}
