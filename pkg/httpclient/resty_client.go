package httpclient

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout. Relative
// urls passed to Do are appended to baseURL; an empty baseURL leaves
// them untouched. A zero timeout keeps the transport default.
func NewRestyClient(baseURL string, timeout time.Duration) *RestyClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		c.SetBaseURL(baseURL)
	}
	c.SetHeader("Accept", "application/json")
	return &RestyClient{client: c}
}

// Do performs a request with an arbitrary verb. body is serialized as JSON
// when non-nil.
func (r *RestyClient) Do(ctx context.Context, method, url string, body any, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}
	resp, err := req.Execute(strings.ToUpper(method), url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
