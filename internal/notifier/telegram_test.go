package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestTelegramNotifier() *TelegramNotifier {
	return &TelegramNotifier{
		botToken:   "test-token",
		chatID:     "12345",
		httpClient: &http.Client{},
	}
}

// TestTelegramNotify_Success tests successful message sending
func TestTelegramNotify_Success(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))
	defer server.Close()

	originalURL := telegramAPIBaseURL
	telegramAPIBaseURL = server.URL + "/"
	defer func() { telegramAPIBaseURL = originalURL }()

	n := newTestTelegramNotifier()
	if err := n.Notify(sampleResult()); err != nil {
		t.Errorf("Notify() unexpected error: %v", err)
	}

	if gotBody["chat_id"] != "12345" {
		t.Errorf("chat_id = %v, want 12345", gotBody["chat_id"])
	}
	text, _ := gotBody["text"].(string)
	if !strings.Contains(text, "Wednesday August 27, 2025") {
		t.Errorf("message text %q missing availability summary", text)
	}
}

// TestTelegramNotify_APIError tests API error handling
func TestTelegramNotify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":          false,
			"description": "Bad Request: chat not found",
		})
	}))
	defer server.Close()

	originalURL := telegramAPIBaseURL
	telegramAPIBaseURL = server.URL + "/"
	defer func() { telegramAPIBaseURL = originalURL }()

	n := newTestTelegramNotifier()
	err := n.Notify(sampleResult())
	if err == nil {
		t.Error("Notify() expected error for API failure, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "Bad Request") {
		t.Errorf("Notify() error = %v, want error containing 'Bad Request'", err)
	}
}

// TestTelegramNotify_HTTPError tests HTTP error handling
func TestTelegramNotify_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	originalURL := telegramAPIBaseURL
	telegramAPIBaseURL = server.URL + "/"
	defer func() { telegramAPIBaseURL = originalURL }()

	n := newTestTelegramNotifier()
	err := n.Notify(sampleResult())
	if err == nil {
		t.Error("Notify() expected error for HTTP error, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Notify() error = %v, want error containing 'status 500'", err)
	}
}

func TestNewTelegramNotifier_MissingCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	if _, err := NewTelegramNotifier(); err == nil {
		t.Error("expected error when credentials are absent")
	}
}

func TestNewTelegramNotifier_FromEnvironment(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	n, err := NewTelegramNotifier()
	if err != nil {
		t.Fatalf("NewTelegramNotifier failed: %v", err)
	}
	if n.Name() != "telegram" {
		t.Errorf("Name() = %q", n.Name())
	}
}
