package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/voidshard/logogen/pkg/errors"
)

// do is a helper to send (optional) JSON data to a given URL and unmarshal the response
func (c *Client) do(ctx context.Context, method string, addr *url.URL, in interface{}, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, addr.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	} else if resp.Body == nil {
		if resp.StatusCode >= 400 {
			return statusError(resp.StatusCode, nil)
		}
		return nil
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume message is error message
		return statusError(resp.StatusCode, data)
	}

	return json.Unmarshal(data, out)
}

// statusError maps server status codes back to our error types where we can
func statusError(code int, body []byte) error {
	msg := string(bytes.TrimSpace(body))
	switch code {
	case http.StatusNotFound:
		return fmt.Errorf("%w %s", errors.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w %s", errors.ErrAlreadyExists, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w %s", errors.ErrInvalidArg, msg)
	}
	return fmt.Errorf("bad status code %d, returned %s", code, msg)
}
