package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the transport proxy function. An explicitly configured
// proxy wins; otherwise the standard environment variables apply.
func NewProxyFunc(proxy string) func(*http.Request) (*url.URL, error) {
	if proxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		return url.Parse(proxy)
	}
}
