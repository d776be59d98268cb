package dto

import "github.com/leanlee/shopchat/internal/dialog"

// ChatRequest is one inbound turn. Context is whatever blob the client got
// back on the previous turn; nil means a fresh session.
type ChatRequest struct {
	Message string          `json:"message"`
	Context *dialog.Context `json:"context"`
}

type ChatResponse struct {
	Reply   string          `json:"reply"`
	Context *dialog.Context `json:"context"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
