package clients

import (
	"net/http"
	"time"
)

const timeout = time.Second * 15

// HTTPClientI is the outbound HTTP surface notification delivery depends on.
type HTTPClientI interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPClient struct {
	client HTTPClientI
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

// SetClient swaps the underlying transport, used by tests.
func (h *HTTPClient) SetClient(mock HTTPClientI) {
	h.client = mock
}
