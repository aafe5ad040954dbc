package entities

import "time"

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is an outbound message delivered over the chat transport
type ChatMessage struct {
	Message   string    `json:"message"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBotMessage builds an assistant message stamped with the current time
func NewBotMessage(text string) ChatMessage {
	return ChatMessage{Message: text, Sender: SenderBot, Timestamp: time.Now()}
}

// NewUserMessage builds a user echo message stamped with the current time
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{Message: text, Sender: SenderUser, Timestamp: time.Now()}
}

// InboundType is the kind of an inbound transport frame
type InboundType string

const (
	// InboundStart opens a new conversation
	InboundStart InboundType = "start"
	// InboundText carries free-text user input
	InboundText InboundType = "message"
)

// InboundMessage is a frame received from the chat transport
type InboundMessage struct {
	Type    InboundType `json:"type"`
	Message string      `json:"message,omitempty"`
}
