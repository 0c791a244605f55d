package bsky

import (
	"fmt"
	"strings"
)

const siteRoot = "https://bsky.app"

// PostURL derives the canonical web URL for a post from its owner's handle
// and its at-uri. The record key is the final path segment of the uri. An
// empty uri produces an empty record key; the caller decides whether that
// is worth surfacing.
func PostURL(handle, uri string) string {
	rkey := uri
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		rkey = uri[i+1:]
	}
	return fmt.Sprintf("%s/profile/%s/post/%s", siteRoot, handle, rkey)
}

// PostURI assembles the at-uri of a post record.
func PostURI(did, rkey string) string {
	return fmt.Sprintf("at://%s/app.bsky.feed.post/%s", did, rkey)
}
