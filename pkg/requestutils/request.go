package requestutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ansible-network/github-actions/pkg/core"
	errs "github.com/ansible-network/github-actions/pkg/errors"
	"github.com/ansible-network/github-actions/pkg/lumber"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
)

type requests struct {
	logger lumber.Logger
	client *http.Client
}

// New returns a Requests helper whose calls time out after timeout.
func New(timeout time.Duration, logger lumber.Logger) core.Requests {
	client := cleanhttp.DefaultClient()
	client.Timeout = timeout
	return &requests{
		logger: logger,
		client: client,
	}
}

func (r *requests) MakeAPIRequest(ctx context.Context,
	httpMethod, endpoint string,
	body []byte,
	token string,
	headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, httpMethod, endpoint, bytes.NewBuffer(body))
	if err != nil {
		r.logger.Errorf("error while creating http request %v", err)
		return nil, err
	}

	if token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Errorf("error while sending http request %v", err)
		return nil, err
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		r.logger.Errorf("error while reading http response body %v", err)
		return respBody, err
	}

	//nolint:gomnd
	if resp.StatusCode >= 300 {
		r.logger.Errorf("non 2xx status code %d from %s: %s", resp.StatusCode, endpoint, string(respBody))
		return respBody, errors.Wrapf(errs.ErrNon2xxStatus, "%s %s returned %d", httpMethod, endpoint, resp.StatusCode)
	}

	return respBody, nil
}
