package websocket

import "encoding/json"

// Типы событий, которые сервер рассылает клиентам
const (
	EventRecordsUpdated  = "records:updated"
	EventSectionsUpdated = "sections:updated"
	EventErrorsUpdated   = "errors:updated"
)

// Event представляет сообщение, отправляемое клиенту
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Marshal сериализует событие для отправки в сокет
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
