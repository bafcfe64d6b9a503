// Package telegram posts human-readable event summaries to a Telegram bot
// chat. It is deliberately dumb transport: one POST with a short timeout,
// non-2xx is an error. Retry policy belongs to the queue jobs that call it.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Wege0921/prodev-be-ecommerce/config"
)

// sendTimeout bounds the outbound call so a stalled webhook cannot block a
// queue worker indefinitely.
const sendTimeout = 5 * time.Second

var client = &http.Client{Timeout: sendTimeout}

// baseURL is a var so tests can point the client at an httptest server.
var baseURL = "https://api.telegram.org"

// message is the sendMessage payload.
type message struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Configured reports whether bot credentials are present. When they are not
// the jobs skip sending instead of erroring, matching a store deployed
// without a Telegram channel.
func Configured() bool {
	return config.TelegramBotToken() != "" && config.TelegramChatID() != ""
}

// Send posts text to the configured chat. A non-2xx response is returned as
// an error so the calling job is retried by the queue.
func Send(text string) error {
	return SendTo(config.TelegramChatID(), text)
}

// SendTo posts text to a specific chat id.
func SendTo(chatID, text string) error {
	token := config.TelegramBotToken()
	if token == "" || chatID == "" {
		return fmt.Errorf("telegram: bot token or chat id not configured")
	}

	raw, err := json.Marshal(message{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("telegram: marshal: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", baseURL, token)
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("telegram: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram: sendMessage returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// SetBaseURL overrides the Telegram API host. Tests only.
func SetBaseURL(u string) { baseURL = u }
