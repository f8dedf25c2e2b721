// Package chat реализует общий канал поддержки: широковещательную рассылку
// сообщений подключённым клиентам с автоответчиком по ключевым словам.
package chat

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const defaultResponseDelay = time.Second

// Message описывает одно сообщение чата.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type event struct {
	Event    string    `json:"event"`
	Message  *Message  `json:"message,omitempty"`
	Messages []Message `json:"messages,omitempty"`
}

// Hub владеет состоянием чата: историей сообщений и набором подключённых
// клиентов. Состояние живёт только в памяти процесса и теряется при рестарте.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	history []Message

	logger        *zap.Logger
	upgrader      websocket.Upgrader
	responseDelay time.Duration
}

// NewHub создаёт новый пустой хаб чата.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		responseDelay: defaultResponseDelay,
	}
}

// HandleWS переводит соединение в websocket, отдаёт новому клиенту историю
// и транслирует его сообщения остальным. Аутентификация не выполняется.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// История уходит до регистрации клиента: после попадания в h.clients
	// в соединение пишет только Post под мьютексом, второго писателя нет.
	if err := conn.WriteJSON(event{Event: "chatHistory", Messages: h.History()}); err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			h.remove(conn)
			return
		}

		h.Post(msg)

		// Автоответ приходит с задержкой, имитируя оператора.
		reply := Message{Sender: "bot", Text: botResponse(msg.Text)}
		time.AfterFunc(h.responseDelay, func() {
			h.Post(reply)
		})
	}
}

// Post добавляет сообщение в историю и рассылает его всем подключённым клиентам.
func (h *Hub) Post(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.history = append(h.history, msg)

	for conn := range h.clients {
		if err := conn.WriteJSON(event{Event: "receiveMessage", Message: &msg}); err != nil {
			h.logger.Debug("chat write error", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// History возвращает копию истории сообщений.
func (h *Hub) History() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	history := make([]Message, len(h.history))
	copy(history, h.history)
	return history
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// botResponse подбирает готовый ответ по вхождению ключевого слова без учёта регистра.
func botResponse(text string) string {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "hello"):
		return "Hello! How can I assist you today?"
	case strings.Contains(lower, "order"):
		return "You can track your order in the Orders section."
	case strings.Contains(lower, "refund"):
		return "For refunds, please visit the support section."
	case strings.Contains(lower, "help"):
		return "I'm here to help! Please describe your issue."
	default:
		return "I'm not sure I understand. Can you clarify?"
	}
}
