package lsp

import (
	"net/url"
	"path/filepath"
)

func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// canonicalURI normalizes file URIs so that differently escaped spellings of
// the same path share one document. Other schemes (untitled:, inmemory:) are
// kept as sent.
func canonicalURI(uri string) string {
	if path := uriToPath(uri); path != "" {
		return pathToURI(path)
	}
	return uri
}

// bufferName picks the store name for a document: the file's base name, or
// the opaque part of a non-file URI.
func bufferName(uri string) string {
	if path := uriToPath(uri); path != "" {
		return filepath.Base(path)
	}
	if parsed, err := url.Parse(uri); err == nil && parsed.Opaque != "" {
		return parsed.Opaque
	}
	return uri
}
