package ws

// Типы событий, которые поступают в WS
const (
	TypeNewUser   = "newuser"   // первая регистрация присутствия (с join-нотисом)
	TypeUserLogin = "userlogin" // повторный вход, без join-нотиса
	TypeExitUser  = "exituser"  // явный выход
	TypeChat      = "chat"      // чат-сообщение
)

// Типы событий, которые уходят клиентам
const (
	TypeUpdate       = "update"               // человекочитаемый системный нотис
	TypeOnlineStatus = "online-status-update" // полный снапшот presence
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type ChatPayload struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

func updateMessage(text string) Message {
	return Message{Type: TypeUpdate, Payload: text}
}

func chatMessage(username, text string) Message {
	return Message{Type: TypeChat, Payload: ChatPayload{Username: username, Text: text}}
}

func onlineStatusMessage(online []string) Message {
	return Message{Type: TypeOnlineStatus, Payload: online}
}
