package core

import "context"

// Requests is a util interface for making API Requests
type Requests interface {
	// MakeAPIRequest performs the request and returns the body of a 2xx response.
	MakeAPIRequest(ctx context.Context, httpMethod, endpoint string, body []byte, token string,
		headers map[string]string) ([]byte, error)
}
