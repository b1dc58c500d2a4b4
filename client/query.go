package client

import (
	"net/url"
	"strings"
)

// NormalizeURI merges the query string embedded in uri with query and
// re-encodes it. Explicit query entries override embedded ones; repeated
// embedded keys keep their last value.
func NormalizeURI(uri string, query Query) string {
	path, rawQuery, hasQuery := strings.Cut(uri, "?")
	if !hasQuery && len(query) == 0 {
		return uri
	}

	merged := url.Values{}
	if hasQuery {
		// parse errors leave the well-formed pairs in place
		embedded, _ := url.ParseQuery(rawQuery)
		for k, v := range embedded {
			if len(v) > 0 {
				merged.Set(k, v[len(v)-1])
			}
		}
	}
	for k, v := range query {
		merged.Set(k, v)
	}

	if len(merged) == 0 {
		return path
	}
	return path + "?" + merged.Encode()
}
