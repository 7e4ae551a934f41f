package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"

	"devflow/internal/models"
)

// TelegramService posts task notifications to a team channel. All
// methods are nil-safe no-ops when the bot token or chat is missing.
type TelegramService struct {
	token   string
	chatID  int64
	baseURL string
	client  *http.Client
}

func NewTelegramService(botToken string, chatID int64) *TelegramService {
	return &TelegramService{
		token:   botToken,
		chatID:  chatID,
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", botToken),
		client:  &http.Client{},
	}
}

type tgResp struct {
	Ok          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// NotifyAssignment announces that a task was handed to a developer.
func (t *TelegramService) NotifyAssignment(task *models.Task, developerName string) error {
	if t == nil || task == nil {
		return nil
	}
	msg := "👤 Task assigned to " + html.EscapeString(developerName) + "\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• Status: <code>" + string(task.Status) + "</code>\n" +
		"• Priority: <code>" + string(task.Priority) + "</code>"
	return t.SendMessage(msg)
}

func (t *TelegramService) SendMessage(text string) error {
	if t == nil || t.token == "" || t.chatID == 0 {
		log.Printf("[tg][skip] token or chatID empty (token? %v chatID=%d)", t != nil && t.token != "", t.chatID)
		return nil
	}
	body := map[string]any{
		"chat_id":                  t.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	b, _ := json.Marshal(body)
	url := t.baseURL + "/sendMessage"
	req, _ := http.NewRequest("POST", url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		log.Printf("[tg][send][err] http: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var api tgResp
	_ = json.Unmarshal(respBody, &api)
	if resp.StatusCode != 200 || !api.Ok {
		return fmt.Errorf("telegram sendMessage failed: status=%d ok=%v desc=%s", resp.StatusCode, api.Ok, api.Description)
	}
	return nil
}
