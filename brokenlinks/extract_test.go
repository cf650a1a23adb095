// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"net/url"
	"testing"

	"git.sr.ht/~shulhan/pakakeh.go/lib/test"
)

func TestExtractLinks(t *testing.T) {
	type testCase struct {
		desc        string
		contentType string
		body        string
		exp         []string
	}

	var pageUrl, _ = url.Parse(`http://127.0.0.1/dir/page.html`)

	listCase := []testCase{{
		desc:        `HTML with relative and absolute links`,
		contentType: `text/html; charset=utf-8`,
		body: `<html><body>
			<a href="/root">root</a>
			<a href="sibling.html">sibling</a>
			<a href="../up">up</a>
			<a href="https://Example.COM/x#frag">external</a>
			<a href="#local">local</a>
			<a href="">empty</a>
			<a>no href</a>
			<a href="mailto:a@example.com">mail</a>
			<a href="http://127.0.0.1:abc">bad port</a>
			<a href="/root">duplicate</a>
			</body></html>`,
		exp: []string{
			`http://127.0.0.1/root`,
			`http://127.0.0.1/dir/sibling.html`,
			`http://127.0.0.1/up`,
			`https://example.com/x`,
			`mailto:a@example.com`,
			`http://127.0.0.1/root`,
		},
	}, {
		desc:        `HTML with base`,
		contentType: `text/html`,
		body: `<html><head><base href="http://127.0.0.1/base/"></head>
			<body><a href="child">child</a></body></html>`,
		exp: []string{
			`http://127.0.0.1/base/child`,
		},
	}, {
		desc:        `Broken HTML`,
		contentType: ``,
		body:        `<p><a href="/a">a<div><a href='/b'>b`,
		exp: []string{
			`http://127.0.0.1/a`,
			`http://127.0.0.1/b`,
		},
	}, {
		desc:        `XHTML`,
		contentType: `application/xhtml+xml`,
		body: `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><body>
<p><a href="/x1">x1</a></p>
<a href="x2">x2</a>
</body></html>`,
		exp: []string{
			`http://127.0.0.1/x1`,
			`http://127.0.0.1/dir/x2`,
		},
	}, {
		desc:        `XML without anchor`,
		contentType: `application/xml`,
		body: `<?xml version="1.0"?>
<urlset><url><loc>http://127.0.0.1/loc</loc></url></urlset>`,
	}, {
		desc:        `Invalid XML fallback to HTML`,
		contentType: `text/xml`,
		body:        `<html><a href="/fallback">fallback`,
		exp: []string{
			`http://127.0.0.1/fallback`,
		},
	}, {
		desc:        `HTML with tab and new line inside href`,
		contentType: `text/html`,
		body: "<a href=\"/bro\nken\">1</a>" +
			"<a href=\"/tab\tbed\">2</a>" +
			"<a href=\"/cr\r\nlf\">3</a>" +
			"<a href=\"\n\t#top\">4</a>",
		exp: []string{
			`http://127.0.0.1/broken`,
			`http://127.0.0.1/tabbed`,
			`http://127.0.0.1/crlf`,
		},
	}, {
		desc:        `HTML in ISO-8859-1`,
		contentType: `text/html; charset=iso-8859-1`,
		body:        "<a href=\"/caf\xe9\">cafe</a>",
		exp: []string{
			`http://127.0.0.1/caf%C3%A9`,
		},
	}}

	for _, tcase := range listCase {
		var (
			listUrl = extractLinks(pageUrl, tcase.contentType,
				[]byte(tcase.body))
			got []string
		)
		for _, linkUrl := range listUrl {
			got = append(got, linkUrl.String())
		}
		test.Assert(t, tcase.desc, tcase.exp, got)
	}
}

func TestIsParseable(t *testing.T) {
	type testCase struct {
		contentType string
		exp         bool
	}

	listCase := []testCase{{
		contentType: ``,
		exp:         true,
	}, {
		contentType: `text/html; charset=utf-8`,
		exp:         true,
	}, {
		contentType: `application/rss+xml`,
		exp:         true,
	}, {
		contentType: `text/plain`,
		exp:         true,
	}, {
		contentType: `image/png`,
		exp:         false,
	}, {
		contentType: `application/pdf`,
		exp:         false,
	}}

	for _, tcase := range listCase {
		test.Assert(t, tcase.contentType, tcase.exp,
			isParseable(tcase.contentType))
	}
}

func TestNormalizeUrl(t *testing.T) {
	type testCase struct {
		in  string
		exp string
	}

	listCase := []testCase{{
		in:  `HTTP://Example.COM`,
		exp: `http://example.com/`,
	}, {
		in:  `http://example.com/a/b?q=1#frag`,
		exp: `http://example.com/a/b?q=1`,
	}, {
		in:  `https://example.com:8443/`,
		exp: `https://example.com:8443/`,
	}}

	for _, tcase := range listCase {
		var addr, err = url.Parse(tcase.in)
		if err != nil {
			t.Fatal(err)
		}
		normalizeUrl(addr)
		test.Assert(t, tcase.in, tcase.exp, addr.String())
	}
}
