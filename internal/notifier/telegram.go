package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pfrederiksen/frontdesk-watch/internal/appointment"
)

const telegramTimeout = 10 * time.Second

// telegramAPIBaseURL is a variable so tests can point the client at a
// local server.
var telegramAPIBaseURL = "https://api.telegram.org/bot"

// TelegramNotifier sends availability summaries through the Telegram Bot API.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegramNotifier creates a Telegram notifier using environment variables
// Required environment variables:
// - TELEGRAM_BOT_TOKEN
// - TELEGRAM_CHAT_ID
func NewTelegramNotifier() (*TelegramNotifier, error) {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	if botToken == "" || chatID == "" {
		return nil, fmt.Errorf("missing required Telegram credentials in environment variables")
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// Name implements Notifier.
func (n *TelegramNotifier) Name() string {
	return "telegram"
}

// Notify sends one message summarizing the check result.
func (n *TelegramNotifier) Notify(res *appointment.CheckResult) error {
	return n.sendMessage(Summary(res))
}

// sendMessage posts a text message to the configured chat.
func (n *TelegramNotifier) sendMessage(text string) error {
	url := fmt.Sprintf("%s%s/sendMessage", telegramAPIBaseURL, n.botToken)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}
