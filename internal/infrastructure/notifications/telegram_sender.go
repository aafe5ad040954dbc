package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tricoghealth/intake-assistant/pkg/config"
)

// TelegramSender delivers one-way messages to the on-call doctor's chat
// via the Telegram Bot API
type TelegramSender struct {
	botToken   string
	chatID     string
	httpClient *http.Client
	baseURL    string
}

// NewTelegramSender creates a new Telegram sender
func NewTelegramSender(cfg *config.TelegramConfig) (*TelegramSender, error) {
	if cfg == nil || cfg.BotToken == "" || cfg.DoctorChatID == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN and DOCTOR_TELEGRAM_ID must be set")
	}

	return &TelegramSender{
		botToken: cfg.BotToken,
		chatID:   cfg.DoctorChatID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.telegram.org",
	}, nil
}

// telegramSendMessageRequest is the sendMessage request body
type telegramSendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// telegramResponse is the Bot API response envelope
type telegramResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
	Description string `json:"description"`
}

// SendText sends a plain-text message to the configured doctor chat and
// returns the Telegram message ID
func (t *TelegramSender) SendText(ctx context.Context, text string) (string, error) {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)

	jsonData, err := json.Marshal(telegramSendMessageRequest{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("telegram api error (status %d): %s", resp.StatusCode, string(body))
	}

	var tgResp telegramResponse
	if err := json.Unmarshal(body, &tgResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !tgResp.OK {
		return "", fmt.Errorf("telegram api rejected message: %s", tgResp.Description)
	}

	return fmt.Sprintf("%d", tgResp.Result.MessageID), nil
}
