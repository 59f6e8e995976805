package nequi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/httpclient"
)

type Client interface {
	Send(ctx context.Context, url string, envelope *Envelope, headers map[string]string, timeout time.Duration) (*Response, error)
}

type client struct {
	http httpclient.HTTPClient
}

func NewClient(http httpclient.HTTPClient) Client {
	return &client{http: http}
}

func (c *client) Send(ctx context.Context, url string, envelope *Envelope, headers map[string]string, timeout time.Duration) (*Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(envelope); err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.http.Post(ctx, url, &buf, headers)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}

		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http status %d", ErrUnavailable, resp.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: decoding error: %s", ErrUnavailable, err)
	}

	return &response, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
