package gateway

// Message is one inbound chat command frame.
type Message struct {
	Channel string `json:"channel"`
	Sender  string `json:"sender"`
	Msg     string `json:"msg"`
}

type MessageCallback func(message *Message)

type StateCallback func(state WebSocketState)

// WebSocketState tracks the inbound stream's connection lifecycle.
type WebSocketState string

const (
	WSStateDisconnected WebSocketState = "DISCONNECTED"
	WSStateConnecting   WebSocketState = "CONNECTING"
	WSStateConnected    WebSocketState = "CONNECTED"
	WSStateReconnecting WebSocketState = "RECONNECTING"
	WSStateFailed       WebSocketState = "FAILED"
)

// Wire payloads

type ReplyRequest struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Data    string `json:"data"`
}

type FileReplyRequest struct {
	Type     string `json:"type"`
	Channel  string `json:"channel"`
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

type ProposeRequest struct {
	Channel   string   `json:"channel"`
	Text      string   `json:"text"`
	Reactions []string `json:"reactions"`
}

type ProposeResponse struct {
	MessageID string `json:"message_id"`
}

// ReactionGroup is one emoji's reactors on a proposal message.
type ReactionGroup struct {
	Emoji string   `json:"emoji"`
	Users []string `json:"users"`
}

type ReactionsResponse struct {
	Reactions []ReactionGroup `json:"reactions"`
}

type RoleRequest struct {
	User string `json:"user"`
	Role string `json:"role"`
}

type RolesResponse struct {
	Roles []string `json:"roles"`
}
