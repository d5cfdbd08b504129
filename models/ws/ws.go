package wsmodels

import "time"

const (
	CodeNewRequest  = "new_maintenance_request"
	CodeUnreadCount = "unread_count"
)

type ServerMessage struct {
	ToUserID        string `json:"-"`
	Time            string `json:"time"`                        // время события
	Code            string `json:"code"`                        // код события
	Msg             string `json:"msg"`                         // текст события
	RequestID       string `json:"request_id,omitempty"`        // заявка, к которой относится событие
	WorkOrderNumber string `json:"work_order_number,omitempty"` // номер заявки
	IsEmergency     bool   `json:"is_emergency,omitempty"`
	UnreadCount     int64  `json:"unread_count"`
}

func FormatTime(t time.Time) string {
	return t.Format("01/02/2006 15:04:05")
}
