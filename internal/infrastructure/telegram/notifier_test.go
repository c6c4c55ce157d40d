package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"HomeworkWatcher/internal/config"
	"HomeworkWatcher/internal/domain"
)

const testBotToken = "123456:bot-secret"

func newTestNotifier(apiURL string) *Notifier {
	return NewNotifier(config.TelegramConfig{
		APIURL:         apiURL,
		BotToken:       testBotToken,
		ChatID:         "987",
		RequestTimeout: 5 * time.Second,
	}, nil)
}

func TestSendPostsMessage(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText, gotParseMode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotPath = r.URL.Path
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		gotParseMode = r.PostForm.Get("parse_mode")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	message := `Изменился статус проверки работы "proj1". Работа проверена: ревьюеру всё понравилось. Ура!`
	if err := newTestNotifier(server.URL + "/").Send(context.Background(), message); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if gotPath != "/bot"+testBotToken+"/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotChat != "987" {
		t.Fatalf("unexpected chat: %s", gotChat)
	}
	if gotText != message {
		t.Fatalf("unexpected text: %s", gotText)
	}
	if gotParseMode != "" {
		t.Fatalf("messages must be sent as plain text, got parse_mode=%s", gotParseMode)
	}
}

func TestSendFailuresAreDeliveryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
	}{
		{"api refused", http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, "chat not found"},
		{"ok flag false", http.StatusOK, `{"ok":false,"description":"Forbidden: bot was blocked by the user"}`, "bot was blocked"},
		{"gateway without json", http.StatusBadGateway, `<html>bad gateway</html>`, "502"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			err := newTestNotifier(server.URL).Send(context.Background(), "hello")
			if !errors.Is(err, domain.ErrDelivery) {
				t.Fatalf("expected delivery error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantText) {
				t.Fatalf("expected %q in %v", tc.wantText, err)
			}
		})
	}
}

func TestSendTransportFailureHidesToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := newTestNotifier(url).Send(context.Background(), "hello")
	if !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if strings.Contains(err.Error(), testBotToken) {
		t.Fatalf("bot token leaked: %v", err)
	}
}

func TestSendMisconfigured(t *testing.T) {
	t.Parallel()

	n := NewNotifier(config.TelegramConfig{APIURL: "http://127.0.0.1"}, nil)
	if err := n.Send(context.Background(), "hello"); !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
}
