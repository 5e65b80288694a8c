package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gogpu/fontmap/resolve"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// resultKeys are the JSON fields searched, in order, for the recognized
// text.
var resultKeys = []string{"result", "text", "data"}

// HTTP posts each image to an OCR web service.
//
// With Field empty the PNG is sent raw as image/png. Otherwise the body is
// a JSON object {Field: base64(png)}. The response may be plain text or a
// JSON object carrying the text under "result", "text" or "data".
type HTTP struct {
	URL    string
	Client *http.Client
	Field  string

	// Header is added to every request.
	Header http.Header
}

var _ resolve.Recognizer = (*HTTP)(nil)

// Classify implements resolve.Recognizer.
func (h *HTTP) Classify(ctx context.Context, png []byte) (string, error) {
	body, contentType, err := h.body(png)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, body)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	for k, vs := range h.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", contentType)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("ocr: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("ocr: %s: %s: %s", h.URL, resp.Status, strings.TrimSpace(string(data)))
	}
	return parseResponse(data, resp.Header.Get("Content-Type"))
}

func (h *HTTP) body(png []byte) (io.Reader, string, error) {
	if h.Field == "" {
		return bytes.NewReader(png), "image/png", nil
	}
	data, err := json.Marshal(map[string]string{h.Field: base64.StdEncoding.EncodeToString(png)})
	if err != nil {
		return nil, "", fmt.Errorf("ocr: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func parseResponse(data []byte, contentType string) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if !strings.Contains(contentType, "json") && !bytes.HasPrefix(trimmed, []byte("{")) {
		return strings.TrimSpace(string(data)), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		var s string
		if err2 := json.Unmarshal(trimmed, &s); err2 == nil {
			return strings.TrimSpace(s), nil
		}
		return "", fmt.Errorf("ocr: decode response: %w", err)
	}
	for _, k := range resultKeys {
		raw, ok := obj[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s), nil
		}
	}
	return "", nil
}
