package llm

import (
	"errors"
	"net/http"
)

var (
	errNoChoices    = errors.New("response has no choices")
	errEmptyContent = errors.New("response content is empty")
)

// buildHeaders returns the headers every request carries. Authorization is set
// only with a key; HTTP-Referer and X-Title only when site metadata is configured.
func buildHeaders(opts Options) http.Header {
	h := http.Header{}
	if opts.APIKey != "" {
		h.Set("Authorization", "Bearer "+opts.APIKey)
	}
	if opts.SiteURL != "" {
		h.Set("HTTP-Referer", opts.SiteURL)
	}
	if opts.SiteName != "" {
		h.Set("X-Title", opts.SiteName)
	}
	return h
}

// headerTransport stamps the configured headers onto a clone of each request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.headers.Get("Authorization") == "" {
		r.Header.Del("Authorization")
	}
	for key, values := range t.headers {
		r.Header.Del(key)
		for _, v := range values {
			r.Header.Add(key, v)
		}
	}
	return t.base.RoundTrip(r)
}
