// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html/charset"
)

// xpathAnchor select all element "a" with attribute "href", ignoring the
// XML namespace.
const xpathAnchor = `//*[local-name()='a'][@href]`

// isXML return true if the document with content type should be parsed
// as XML.
func isXML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), `xml`)
}

// isParseable return true if the content type may contains links.
// Empty content type is assumed as HTML.
func isParseable(contentType string) bool {
	if contentType == `` {
		return true
	}
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, `html`) ||
		strings.Contains(contentType, `xml`) ||
		strings.HasPrefix(contentType, `text/`)
}

// extractLinks parse the body and return all of the links in element "a"
// with attribute "href", resolved against pageUrl, in the order they
// appear in the document.
// The parsing is best-effort; a broken document return whatever links
// found before the error.
func extractLinks(pageUrl *url.URL, contentType string, body []byte) (
	listUrl []*url.URL,
) {
	var listHref []string
	var base = pageUrl

	if isXML(contentType) {
		var ok bool
		listHref, ok = extractXML(contentType, body)
		if !ok {
			listHref, base = extractHTML(pageUrl, contentType, body)
		}
	} else {
		listHref, base = extractHTML(pageUrl, contentType, body)
	}

	for _, href := range listHref {
		var linkUrl = resolveLink(base, href)
		if linkUrl == nil {
			continue
		}
		listUrl = append(listUrl, linkUrl)
	}
	return listUrl
}

// extractHTML return the value of attribute href and the base URL, where
// links should be resolved, from HTML document.
func extractHTML(pageUrl *url.URL, contentType string, body []byte) (
	listHref []string, base *url.URL,
) {
	base = pageUrl

	var (
		reader io.Reader
		err    error
	)
	reader, err = charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		reader = bytes.NewReader(body)
	}

	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, base
	}

	var baseHref, ok = doc.Find(`base[href]`).First().Attr(`href`)
	if ok {
		var baseUrl = resolveLink(pageUrl, baseHref)
		if baseUrl != nil {
			base = baseUrl
		}
	}

	doc.Find(`a[href]`).Each(func(_ int, sel *goquery.Selection) {
		var href, _ = sel.Attr(`href`)
		listHref = append(listHref, href)
	})
	return listHref, base
}

// extractXML return the value of attribute href from XML document.
// It return false if the document is not a valid XML.
func extractXML(contentType string, body []byte) (listHref []string, ok bool) {
	var opts = xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        false,
			CharsetReader: charset.NewReaderLabel,
		},
	}

	var (
		doc *xmlquery.Node
		err error
	)
	doc, err = xmlquery.ParseWithOptions(bytes.NewReader(body), opts)
	if err != nil {
		return nil, false
	}

	for _, node := range xmlquery.Find(doc, xpathAnchor) {
		listHref = append(listHref, node.SelectAttr(`href`))
	}
	return listHref, true
}

// hrefCleaner remove the tab and new line inside the href, the same way
// browsers do.
var hrefCleaner = strings.NewReplacer("\t", ``, "\n", ``, "\r", ``)

// resolveLink parse the href and resolve it against base.
// It return nil if href is empty, link to fragment only, or not a valid
// URL.
func resolveLink(base *url.URL, href string) (linkUrl *url.URL) {
	href = hrefCleaner.Replace(strings.TrimSpace(href))
	if href == `` || href[0] == '#' {
		return nil
	}

	var err error
	linkUrl, err = url.Parse(href)
	if err != nil {
		return nil
	}
	linkUrl = base.ResolveReference(linkUrl)
	normalizeUrl(linkUrl)
	return linkUrl
}

// normalizeUrl remove the fragment, lower case the scheme and host, and set
// the empty path to "/".
func normalizeUrl(addr *url.URL) {
	addr.Fragment = ``
	addr.RawFragment = ``
	addr.Scheme = strings.ToLower(addr.Scheme)
	addr.Host = strings.ToLower(addr.Host)
	if addr.Opaque == `` && addr.Path == `` && addr.Host != `` {
		addr.Path = `/`
		addr.RawPath = ``
	}
}

// isHTTP return true if the URL scheme is "http" or "https".
func isHTTP(addr *url.URL) bool {
	return addr.Scheme == `http` || addr.Scheme == `https`
}
