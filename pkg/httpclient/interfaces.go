package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// A non-nil error means no response was received at all (DNS, refused
// connection, timeout, cancelled context); HTTP error statuses come back as a
// Response.
type Client interface {
	Do(ctx context.Context, method, url string, body any, headers map[string]string) (Response, error)
}
