package network

import (
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

const defaultTimeout = 30 * time.Second

// UserAgent identifies ingestion traffic to upstream boards.
const UserAgent = "jobsink/1.0"

type Client struct {
	http    tls_client.HttpClient
	rotator *Rotator
}

// NewClient builds an HTTP client with a fixed per-request timeout and an
// optional proxy rotator. Every adapter gets its own client so cookie
// state never leaks between upstreams.
func NewClient(rotator *Rotator) (*Client, error) {
	return NewClientWithTimeout(rotator, defaultTimeout)
}

func NewClientWithTimeout(rotator *Rotator, timeout time.Duration) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout/time.Second)),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	return &Client{http: client, rotator: rotator}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy := c.rotateProxy()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != "" {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) rotateProxy() string {
	if c.rotator == nil {
		return ""
	}
	proxy, err := c.rotator.Next()
	if err != nil || proxy == "" {
		return ""
	}
	_ = c.http.SetProxy(proxy)
	return proxy
}
