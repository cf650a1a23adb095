// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package report

import (
	"html/template"
	"io"

	"git.sr.ht/~shulhan/brokenlink/brokenlinks"
)

var htmlTemplate = template.Must(template.New(`report`).Funcs(
	template.FuncMap{
		`status`: statusText,
		`code`:   codeText,
	},
).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Broken Links Report</title>
	<style>
		body {
			font-family: Arial, sans-serif;
			margin: 20px;
			color: #333;
		}
		h1 {
			color: #007BFF;
		}
		table {
			width: 100%;
			border-collapse: collapse;
			margin-top: 20px;
		}
		table, th, td {
			border: 1px solid #ddd;
		}
		th, td {
			padding: 12px;
			text-align: left;
		}
		th {
			background-color: #f4f4f4;
		}
	</style>
</head>
<body>
	<h1>Broken Links Report</h1>
	<table>
		<thead>
			<tr>
				<th>URL</th>
				<th>Status</th>
				<th>Status Code</th>
			</tr>
		</thead>
		<tbody>
{{- range .}}
<tr><td>{{.Url}}</td><td>{{status .}}</td><td>{{code .Code}}</td></tr>
{{- end}}
		</tbody>
	</table>
</body>
</html>
`))

// htmlWriter write the links as table in HTML page.
type htmlWriter struct{}

func (htmlWriter) Write(w io.Writer, listLink []brokenlinks.Link) error {
	return htmlTemplate.Execute(w, listLink)
}
