package handler

import "github.com/projecthub/backend/internal/interfaces/http/dto"

// APIResponse is a generic response wrapper with a typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// CountData carries a single count value, used by the unread-notification
// counter endpoint.
type CountData struct {
	Count int64 `json:"count"`
}
