// Package notify delivers exported files to chat recipients.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoRecipient is returned when a document is sent without a chat ID
var ErrNoRecipient = errors.New("no chat id provided")

// ErrNoToken is returned when the bot token is not configured
var ErrNoToken = errors.New("telegram bot token not configured")

// Sender delivers a file to a recipient
type Sender interface {
	SendDocument(ctx context.Context, chatID, path string) error
}

// Telegram sends documents through the Telegram Bot API
type Telegram struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewTelegram builds a Bot API client. apiURL is the API root, usually
// https://api.telegram.org.
func NewTelegram(apiURL, token string, timeout time.Duration) *Telegram {
	return &Telegram{
		baseURL:    strings.TrimRight(apiURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendDocument uploads the file at path to chatID
func (t *Telegram) SendDocument(ctx context.Context, chatID, path string) error {
	if chatID == "" {
		return ErrNoRecipient
	}
	if t.token == "" {
		return ErrNoToken
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	body, contentType, err := multipartBody(chatID, filepath.Base(path), f)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendDocument", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		// the URL carries the token, keep it out of logs
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if resp.StatusCode >= 300 {
			return fmt.Errorf("telegram send failed: %s", resp.Status)
		}
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if resp.StatusCode >= 300 || !payload.OK {
		return fmt.Errorf("telegram send failed: %s: %s", resp.Status, payload.Description)
	}
	return nil
}

func multipartBody(chatID, filename string, r io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("chat_id", chatID); err != nil {
		return nil, "", fmt.Errorf("failed to write chat_id: %w", err)
	}
	part, err := mw.CreateFormFile("document", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create document part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("failed to read document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
