package easyyomi

import (
	"io"
	"net"
	"net/http"
	"time"
)

// newClient derives the source's client from the host's generic one. It keeps
// the host's timeout, cookie jar and redirect policy, resolves names through
// the operating system (servers are usually raw IPs or intranet hostnames),
// sends userAgent on requests that have none and answers the first 401 with
// Basic credentials.
func newClient(base *http.Client, userAgent, username, password string) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	client := *base
	client.Transport = &authTransport{
		base:      systemDNSTransport(base.Transport),
		userAgent: userAgent,
		username:  username,
		password:  password,
	}
	return &client
}

// systemDNSTransport clones rt when it is an *http.Transport and swaps its
// dialer for one bound to the system resolver. Other round trippers are
// assumed to manage their own connections and are used as-is.
func systemDNSTransport(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}
	t, ok := rt.(*http.Transport)
	if !ok {
		return rt
	}
	t = t.Clone()
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
		Resolver:  &net.Resolver{PreferGo: false},
	}
	t.DialContext = dialer.DialContext
	return t
}

// authTransport retries a request once with Basic credentials when the server
// challenges it. A request that already carried Authorization is never
// retried, which bounds every logical request to two round trips.
type authTransport struct {
	base      http.RoundTripper
	userAgent string
	username  string
	password  string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || req.Header.Get("Authorization") != "" {
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			// The body was consumed by the first attempt and cannot be replayed.
			return resp, nil
		}
		body, err := req.GetBody()
		if err != nil {
			return resp, nil
		}
		retry.Body = body
	}
	retry.SetBasicAuth(t.username, t.password)

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return t.base.RoundTrip(retry)
}
