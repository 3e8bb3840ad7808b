package foliosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File is an image attached to a multipart request.
type File struct {
	Name string
	Data []byte
}

type body struct {
	reader      io.Reader
	contentType string
	err         error
}

func jsonBody(v any) body {
	if v == nil {
		return body{}
	}
	b, err := json.Marshal(v)
	return body{reader: bytes.NewReader(b), contentType: "application/json", err: err}
}

// multipartBody encodes fields plus an optional file under fileField.
func multipartBody(fields map[string][]string, fileField string, f *File) body {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(name, v); err != nil {
				return body{err: err}
			}
		}
	}
	if f != nil {
		part, err := mw.CreateFormFile(fileField, f.Name)
		if err != nil {
			return body{err: err}
		}
		if _, err := part.Write(f.Data); err != nil {
			return body{err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return body{err: err}
	}
	return body{reader: &buf, contentType: mw.FormDataContentType()}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) doJSON(ctx context.Context, token, method, path string, in, out any, expected int) error {
	return c.do(ctx, token, method, path, jsonBody(in), nil, out, expected)
}

// do sends a request and decodes the response into out when the status is
// expected. Any other status is returned as an *APIError.
func (c *Client) do(
	ctx context.Context,
	token, method, path string,
	b body,
	headers map[string]string,
	out any,
	expected int,
) error {
	if b.err != nil {
		return fmt.Errorf("failed to encode request: %w", b.err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), b.reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if b.contentType != "" {
		req.Header.Set("Content-Type", b.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, out, expected)
}

// decodeJSON reads the body once and either decodes it into target or turns
// it into an *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
