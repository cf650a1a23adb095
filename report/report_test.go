// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package report_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~shulhan/pakakeh.go/lib/test"
	"github.com/xuri/excelize/v2"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
	"git.sr.ht/~shulhan/brokenlink/report"
)

var testLinks = []brokenlinks.Link{{
	Url:    `http://127.0.0.1/a`,
	Status: brokenlinks.StatusValid,
	Code:   200,
}, {
	Url:    `http://127.0.0.1/b?q=<script>`,
	Status: brokenlinks.StatusClientError,
	Code:   404,
}, {
	Url:    `http://127.0.0.1:14595/c`,
	Status: brokenlinks.StatusError,
	Error:  `connection refused`,
}}

func TestFormatFromPath(t *testing.T) {
	type testCase struct {
		path string
		exp  report.Format
	}

	listCase := []testCase{{
		path: `out.txt`,
		exp:  report.FormatText,
	}, {
		path: `dir.v2/out.JSON`,
		exp:  report.FormatJSON,
	}, {
		path: `out.html`,
		exp:  report.FormatHTML,
	}, {
		path: `out.csv`,
		exp:  report.FormatCSV,
	}, {
		path: `out.xlsx`,
		exp:  report.FormatXLSX,
	}, {
		path: `out.pdf`,
		exp:  report.FormatText,
	}, {
		path: `out`,
		exp:  report.FormatText,
	}}

	for _, tcase := range listCase {
		test.Assert(t, tcase.path, tcase.exp,
			report.FormatFromPath(tcase.path))
	}
}

func TestOutputPath(t *testing.T) {
	type testCase struct {
		output   string
		scanUrl  string
		exp      string
		expError string
	}

	listCase := []testCase{{
		scanUrl: `https://www.Example.com/page`,
		exp:     `www_example_com.txt`,
	}, {
		scanUrl: `127.0.0.1:8080`,
		exp:     `127_0_0_1_8080.txt`,
	}, {
		output:  `result`,
		scanUrl: `https://example.com`,
		exp:     `result.txt`,
	}, {
		output:  `result.json`,
		scanUrl: `https://example.com`,
		exp:     `result.json`,
	}, {
		scanUrl:  `http:///path`,
		expError: `DefaultOutputPath: empty host in "http:///path"`,
	}}

	for _, tcase := range listCase {
		var got, err = report.OutputPath(tcase.output, tcase.scanUrl)
		if err != nil {
			test.Assert(t, tcase.scanUrl+` error`, tcase.expError,
				err.Error())
			continue
		}
		test.Assert(t, tcase.scanUrl, tcase.exp, got)
	}
}

func TestWriter_text(t *testing.T) {
	var buf bytes.Buffer
	var err = report.NewWriter(report.FormatText).Write(&buf, testLinks)
	if err != nil {
		t.Fatal(err)
	}

	var exp = "http://127.0.0.1/a - Valid\n" +
		"http://127.0.0.1/b?q=<script> - Client Error\n" +
		"http://127.0.0.1:14595/c - Error (connection refused)\n"
	test.Assert(t, `text`, exp, buf.String())
}

func TestWriter_json(t *testing.T) {
	var buf bytes.Buffer
	var err = report.NewWriter(report.FormatJSON).Write(&buf, testLinks)
	if err != nil {
		t.Fatal(err)
	}

	var exp = `[
    {
        "url": "http://127.0.0.1/a",
        "status_code": 200,
        "status": "Valid"
    },
    {
        "url": "http://127.0.0.1/b?q=<script>",
        "status_code": 404,
        "status": "Client Error"
    },
    {
        "url": "http://127.0.0.1:14595/c",
        "status_code": null,
        "status": "Error",
        "error": "connection refused"
    }
]
`
	test.Assert(t, `json`, exp, buf.String())
}

func TestWriteFile_jsonRoundTrip(t *testing.T) {
	var path = filepath.Join(t.TempDir(), `result.json`)

	var err = report.WriteFile(path, testLinks)
	if err != nil {
		t.Fatal(err)
	}

	var got []brokenlinks.Link
	got, err = report.ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `ReadJSON`, testLinks, got)

	_, err = report.ReadJSON(filepath.Join(t.TempDir(), `none.json`))
	test.Assert(t, `ReadJSON not exist`, true, err != nil)
}

func TestWriter_html(t *testing.T) {
	var buf bytes.Buffer
	var err = report.NewWriter(report.FormatHTML).Write(&buf, testLinks)
	if err != nil {
		t.Fatal(err)
	}

	var got = buf.String()
	var listExp = []string{
		`<title>Broken Links Report</title>`,
		`<th>URL</th>`,
		`<th>Status</th>`,
		`<th>Status Code</th>`,
		`<tr><td>http://127.0.0.1/a</td><td>Valid</td><td>200</td></tr>`,
		`<tr><td>http://127.0.0.1/b?q=&lt;script&gt;</td><td>Client Error</td><td>404</td></tr>`,
		`<tr><td>http://127.0.0.1:14595/c</td><td>Error (connection refused)</td><td>None</td></tr>`,
	}
	for _, exp := range listExp {
		test.Assert(t, exp, true, strings.Contains(got, exp))
	}
	test.Assert(t, `escaped`, false, strings.Contains(got, `<script>`))
}

func TestWriter_csv(t *testing.T) {
	var buf bytes.Buffer
	var err = report.NewWriter(report.FormatCSV).Write(&buf, testLinks)
	if err != nil {
		t.Fatal(err)
	}

	var rows [][]string
	rows, err = csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	var exp = [][]string{
		{`url`, `status`, `status_code`},
		{`http://127.0.0.1/a`, `Valid`, `200`},
		{`http://127.0.0.1/b?q=<script>`, `Client Error`, `404`},
		{`http://127.0.0.1:14595/c`, `Error (connection refused)`, ``},
	}
	test.Assert(t, `csv`, exp, rows)
}

func TestWriteFile_xlsx(t *testing.T) {
	var path = filepath.Join(t.TempDir(), `result.xlsx`)

	var err = report.WriteFile(path, testLinks)
	if err != nil {
		t.Fatal(err)
	}

	var file *os.File
	file, err = os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var xlsx *excelize.File
	xlsx, err = excelize.OpenReader(file)
	if err != nil {
		t.Fatal(err)
	}
	defer xlsx.Close()

	var rows [][]string
	rows, err = xlsx.GetRows(`Results`)
	if err != nil {
		t.Fatal(err)
	}

	test.Assert(t, `number of rows`, 4, len(rows))
	test.Assert(t, `header`, []string{`url`, `status`, `status_code`},
		rows[0])
	test.Assert(t, `row 1`, []string{`http://127.0.0.1/a`, `Valid`, `200`},
		rows[1])
	test.Assert(t, `row 3 url`, `http://127.0.0.1:14595/c`, rows[3][0])
	test.Assert(t, `row 3 status`, `Error (connection refused)`, rows[3][1])
}

func TestWriteFile_unknownExtension(t *testing.T) {
	var path = filepath.Join(t.TempDir(), `result.log`)

	var err = report.WriteFile(path, testLinks[:1])
	if err != nil {
		t.Fatal(err)
	}

	var got []byte
	got, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	test.Assert(t, `text`, "http://127.0.0.1/a - Valid\n", string(got))
}

func TestPrintSummary(t *testing.T) {
	var result = &brokenlinks.Result{
		Links:            testLinks,
		TotalConnections: 3,
		TotalBytes:       2048,
	}

	var buf bytes.Buffer
	report.PrintSummary(&buf, result)

	var got = buf.String()
	var listExp = []string{
		"Total connections: 3\n",
		"Total bytes transferred: 2.00 KB\n",
		"Status Code Breakdown:\n",
		`Status Code`,
		`None`,
		`200`,
		`404`,
	}
	for _, exp := range listExp {
		test.Assert(t, exp, true, strings.Contains(got, exp))
	}
	test.Assert(t, `None before 200`, true,
		strings.Index(got, `None`) < strings.Index(got, `200`))
}

func TestFormatBytes(t *testing.T) {
	type testCase struct {
		exp  string
		size int64
	}

	listCase := []testCase{{
		size: 0,
		exp:  `0 bytes`,
	}, {
		size: 1023,
		exp:  `1023 bytes`,
	}, {
		size: 1024,
		exp:  `1.00 KB`,
	}, {
		size: 1536,
		exp:  `1.50 KB`,
	}, {
		size: 5 << 20,
		exp:  `5.00 MB`,
	}, {
		size: 3 << 30,
		exp:  `3.00 GB`,
	}, {
		size: 2 << 40,
		exp:  `2.00 TB`,
	}}

	for _, tcase := range listCase {
		test.Assert(t, tcase.exp, tcase.exp, report.FormatBytes(tcase.size))
	}
}
