// Package probe answers URL existence checks for remote wheel candidates.
package probe

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

// Client probes URLs with a HEAD request. A nil HTTP client falls back to
// http.DefaultClient; a single failed attempt means unreachable, there are
// no retries.
type Client struct {
	HTTP *http.Client
}

// Reachable reports whether the URL answers a HEAD request with a
// non-error status. The path is percent-encoded first, since wheel names
// carry characters like "+" that servers expect escaped.
func (c *Client) Reachable(rawURL string) bool {
	url := EncodeURL(rawURL)
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		log.Debug("probe: bad url", "url", url, "err", err)
		return false
	}
	cli := c.HTTP
	if cli == nil {
		cli = http.DefaultClient
	}
	resp, err := cli.Do(req)
	if err != nil {
		log.Debug("probe: request failed", "url", url, "err", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		log.Debug("probe: not available", "url", url, "status", resp.Status)
		return false
	}
	return true
}

// EncodeURL percent-encodes the path portion of a URL, leaving scheme and
// host untouched. Unreserved characters and "/" stay literal.
func EncodeURL(rawURL string) string {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return quote(rawURL)
	}
	host, path, ok := strings.Cut(rest, "/")
	if !ok {
		return rawURL
	}
	return scheme + "://" + host + "/" + quote(path)
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '.' || c == '_' || c == '~' || c == '/':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
