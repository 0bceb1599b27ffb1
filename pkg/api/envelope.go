package api

import "encoding/json"

// CodeSuccess код успешного ответа в конверте
const CodeSuccess = 200

// Envelope представляет общий конверт ответа backend API.
// Code == 200 означает успех, любое другое значение - ошибку с текстом в Message.
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Code    int             `json:"code"`
}

// HasData сообщает, содержит ли конверт полезную нагрузку
func (e *Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

// PageParams параметры пагинации списка
type PageParams struct {
	Page     int `url:"page,omitempty" json:"page,omitempty"`
	PageSize int `url:"page_size,omitempty" json:"page_size,omitempty"`
}

// PageResponse представляет страницу списка
type PageResponse[T any] struct {
	List  []T `json:"list"`
	Total int `json:"total"`
}

// MessageResponse ответ, в котором полезна только строка сообщения
type MessageResponse struct {
	Message string `json:"message"`
}
