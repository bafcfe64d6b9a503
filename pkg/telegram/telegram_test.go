package telegram_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Wege0921/prodev-be-ecommerce/pkg/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCreds(t *testing.T) {
	t.Helper()
	os.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	os.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Cleanup(func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("TELEGRAM_CHAT_ID")
	})
}

func TestSend_PostsChatIDAndText(t *testing.T) {
	withCreds(t)

	var got struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	telegram.SetBaseURL(srv.URL)
	defer telegram.SetBaseURL("https://api.telegram.org")

	err := telegram.Send("New Order #7")
	require.NoError(t, err)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "New Order #7", got.Text)
}

func TestSend_Non2xxIsError(t *testing.T) {
	withCreds(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	telegram.SetBaseURL(srv.URL)
	defer telegram.SetBaseURL("https://api.telegram.org")

	err := telegram.Send("should fail")
	assert.Error(t, err)
}

func TestSend_MissingCredentials(t *testing.T) {
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	os.Unsetenv("TELEGRAM_CHAT_ID")

	assert.False(t, telegram.Configured())
	assert.Error(t, telegram.Send("no creds"))
}
