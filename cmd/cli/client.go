package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

type apiError struct {
	Error string `json:"error"`
}

// call sends a request to the server and returns the raw response body.
// Non-2xx answers are turned into errors carrying the server's message.
func call(method, endpoint string, payload any) ([]byte, error) {
	target := host + endpoint
	if dryRun {
		u, err := url.Parse(target)
		if err != nil {
			return nil, errors.Wrap(err, "parse url")
		}
		q := u.Query()
		q.Set("dry_run", "true")
		u.RawQuery = q.Encode()
		target = u.String()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to make request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, errors.Newf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return nil, errors.Newf("unexpected status %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

// fetch decodes the response into v unless --json was given, in which case
// the body is printed as is and ok is false.
func fetch(method, endpoint string, payload, v any) (ok bool, err error) {
	body, err := call(method, endpoint, payload)
	if err != nil {
		return false, err
	}
	if rawJSON {
		fmt.Println(string(body))
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, errors.Wrap(err, "decode response")
	}
	return true, nil
}
