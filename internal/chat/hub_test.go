package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBotResponse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "greeting", text: "Hello there", want: "Hello! How can I assist you today?"},
		{name: "greeting case insensitive", text: "HELLO", want: "Hello! How can I assist you today?"},
		{name: "order question", text: "where is my order?", want: "You can track your order in the Orders section."},
		{name: "refund question", text: "I want a refund", want: "For refunds, please visit the support section."},
		{name: "help request", text: "help me please", want: "I'm here to help! Please describe your issue."},
		{name: "unknown", text: "quantum entanglement", want: "I'm not sure I understand. Can you clarify?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := botResponse(tt.text); got != tt.want {
				t.Fatalf("botResponse(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHub_PostAppendsToHistory(t *testing.T) {
	hub := NewHub(nil)

	hub.Post(Message{Sender: "user", Text: "first"})
	hub.Post(Message{Sender: "bot", Text: "second"})

	history := hub.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Text != "first" || history[1].Text != "second" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestHub_HistoryIsCopy(t *testing.T) {
	hub := NewHub(nil)
	hub.Post(Message{Sender: "user", Text: "original"})

	history := hub.History()
	history[0].Text = "mutated"

	if got := hub.History()[0].Text; got != "original" {
		t.Fatalf("history was mutated through returned slice: %q", got)
	}
}

func TestHub_HistoryPrecedesBroadcasts(t *testing.T) {
	hub := NewHub(nil)
	hub.responseDelay = time.Millisecond

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	// Постоянный поток сообщений во время подключений: до отправки истории
	// соединение не должно быть видно рассылке.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				hub.Post(Message{Sender: "user", Text: "background"})
				time.Sleep(100 * time.Microsecond)
			}
		}
	}()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	for i := 0; i < 5; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))

		var first struct {
			Event string `json:"event"`
		}
		if err := conn.ReadJSON(&first); err != nil {
			conn.Close()
			t.Fatalf("read first frame: %v", err)
		}
		if first.Event != "chatHistory" {
			conn.Close()
			t.Fatalf("first frame event = %q, want chatHistory", first.Event)
		}
		conn.Close()
	}
}

func TestHub_ClientReceivesHistoryAndReply(t *testing.T) {
	hub := NewHub(nil)
	hub.responseDelay = 10 * time.Millisecond
	hub.Post(Message{Sender: "user", Text: "earlier message"})

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var historyEvent struct {
		Event    string    `json:"event"`
		Messages []Message `json:"messages"`
	}
	if err := conn.ReadJSON(&historyEvent); err != nil {
		t.Fatalf("read history: %v", err)
	}
	if historyEvent.Event != "chatHistory" {
		t.Fatalf("event = %q, want chatHistory", historyEvent.Event)
	}
	if len(historyEvent.Messages) != 1 || historyEvent.Messages[0].Text != "earlier message" {
		t.Fatalf("unexpected history payload: %+v", historyEvent.Messages)
	}

	if err := conn.WriteJSON(Message{Sender: "user", Text: "hello"}); err != nil {
		t.Fatalf("write message: %v", err)
	}

	var echo struct {
		Event   string   `json:"event"`
		Message *Message `json:"message"`
	}
	if err := conn.ReadJSON(&echo); err != nil {
		t.Fatalf("read echo: %v", err)
	}
	if echo.Event != "receiveMessage" || echo.Message == nil || echo.Message.Text != "hello" {
		t.Fatalf("unexpected echo: %+v", echo)
	}

	var reply struct {
		Event   string   `json:"event"`
		Message *Message `json:"message"`
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read bot reply: %v", err)
	}
	if reply.Message == nil || reply.Message.Sender != "bot" {
		t.Fatalf("expected bot reply, got %+v", reply)
	}
	if reply.Message.Text != "Hello! How can I assist you today?" {
		t.Fatalf("bot reply = %q", reply.Message.Text)
	}
}
