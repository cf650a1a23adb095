// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

// Package report write the result of scanning broken links into file,
// formatted based on the file extension, and print the summary to
// console.
package report

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
)

// Format of the report file.
type Format int

// List of known report Format.
const (
	FormatText Format = iota
	FormatJSON
	FormatHTML
	FormatCSV
	FormatXLSX
)

// FormatFromPath return the Format based on the file extension.
// Unknown extension return [FormatText].
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case `.json`:
		return FormatJSON
	case `.html`, `.htm`:
		return FormatHTML
	case `.csv`:
		return FormatCSV
	case `.xlsx`:
		return FormatXLSX
	}
	return FormatText
}

func (format Format) String() string {
	switch format {
	case FormatJSON:
		return `json`
	case FormatHTML:
		return `html`
	case FormatCSV:
		return `csv`
	case FormatXLSX:
		return `xlsx`
	}
	return `txt`
}

// Writer write the list of link into w.
type Writer interface {
	Write(w io.Writer, listLink []brokenlinks.Link) error
}

// NewWriter return the Writer for format.
func NewWriter(format Format) Writer {
	switch format {
	case FormatJSON:
		return jsonWriter{}
	case FormatHTML:
		return htmlWriter{}
	case FormatCSV:
		return csvWriter{}
	case FormatXLSX:
		return xlsxWriter{}
	}
	return textWriter{}
}

// OutputPath return the path of report file.
// If output is empty, the file name derived from the host of scanUrl.
// If output does not have extension, the ".txt" is appended.
func OutputPath(output, scanUrl string) (path string, err error) {
	if output == `` {
		return DefaultOutputPath(scanUrl)
	}
	if filepath.Ext(output) == `` {
		output += `.txt`
	}
	return output, nil
}

// DefaultOutputPath return the report file name from the host of scanUrl,
// where each "." and ":" replaced with "_", plus ".txt" extension.
// For example, "https://www.example.com/page" return "www_example_com.txt".
func DefaultOutputPath(scanUrl string) (path string, err error) {
	var logp = `DefaultOutputPath`

	if !strings.Contains(scanUrl, `://`) {
		scanUrl = `http://` + scanUrl
	}

	var u *url.URL
	u, err = url.Parse(scanUrl)
	if err != nil {
		return ``, fmt.Errorf(`%s: %w`, logp, err)
	}
	if u.Host == `` {
		return ``, fmt.Errorf(`%s: empty host in %q`, logp, scanUrl)
	}

	var replacer = strings.NewReplacer(`.`, `_`, `:`, `_`)
	path = replacer.Replace(strings.ToLower(u.Host)) + `.txt`
	return path, nil
}

// WriteFile write the list of link into file at path, using the format
// based on the path extension.
func WriteFile(path string, listLink []brokenlinks.Link) (err error) {
	var logp = `WriteFile`
	var file *os.File

	file, err = os.Create(path)
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}

	var writer = NewWriter(FormatFromPath(path))

	err = writer.Write(file, listLink)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf(`%s: %s: %w`, logp, path, err)
	}
	err = file.Close()
	if err != nil {
		return fmt.Errorf(`%s: %w`, logp, err)
	}
	return nil
}

// statusText return the status of link as written in text and HTML
// report.
// Link with [brokenlinks.StatusError] include the error message.
func statusText(link brokenlinks.Link) string {
	if link.Status == brokenlinks.StatusError && link.Error != `` {
		return fmt.Sprintf(`%s (%s)`, link.Status, link.Error)
	}
	return string(link.Status)
}

// codeText return the status code as string, or "None" if its zero.
func codeText(code int) string {
	if code == 0 {
		return `None`
	}
	return fmt.Sprintf(`%d`, code)
}
