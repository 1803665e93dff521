package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"riskboard/internal/model"
)

const (
	ModeJSON = "json"
	ModeHTML = "html"

	JSONPath = "/upload"
	HTMLPath = "/"
)

// ErrUploadFailed is matched by every error returned from an upload.
var ErrUploadFailed = errors.New("Upload failed!")

// UploadError hides the cause of a failed upload behind a static message.
// The cause stays available through Unwrap for logging.
type UploadError struct {
	Cause error
}

func (e *UploadError) Error() string { return ErrUploadFailed.Error() }

func (e *UploadError) Unwrap() error { return e.Cause }

func (e *UploadError) Is(target error) bool { return target == ErrUploadFailed }

// Client sends upload forms to the external scoring service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the service at baseURL. A zero timeout
// means requests never time out.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UploadJSON posts the form to the JSON endpoint and decodes the ordered
// student records it returns.
func (c *Client) UploadJSON(ctx context.Context, form *Form) ([]model.Student, error) {
	resp, err := c.post(ctx, JSONPath, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var students []model.Student
	if err := json.NewDecoder(resp.Body).Decode(&students); err != nil {
		return nil, &UploadError{Cause: fmt.Errorf("decode response: %w", err)}
	}
	if students == nil {
		return nil, &UploadError{Cause: errors.New("response is not a list of students")}
	}
	return students, nil
}

// UploadHTML posts the form to the page endpoint and returns the page the
// service rendered, unmodified.
func (c *Client) UploadHTML(ctx context.Context, form *Form) ([]byte, error) {
	resp, err := c.post(ctx, HTMLPath, form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UploadError{Cause: fmt.Errorf("read response: %w", err)}
	}
	return page, nil
}

func (c *Client) post(ctx context.Context, path string, form *Form) (*http.Response, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, &UploadError{Cause: fmt.Errorf("encode form: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, &UploadError{Cause: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UploadError{Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &UploadError{Cause: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return resp, nil
}
