package models

import "time"

// ChatRequest is the body of POST /chat and of websocket chat frames.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is what both transports return for a processed message.
type ChatResponse struct {
	Message      string      `json:"message"`
	Intent       Intent      `json:"intent"`
	Confidence   float64     `json:"confidence"`
	SessionID    string      `json:"session_id"`
	MessageCount int         `json:"message_count"`
	Products     []Product   `json:"products,omitempty"`
	Outlets      []Outlet    `json:"outlets,omitempty"`
	Calculation  *CalcResult `json:"calculation,omitempty"`
}

// ErrorResponse is the uniform error body for HTTP handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ProductsResponse is the body of GET /products.
type ProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// OutletsResponse is the body of GET /outlets.
type OutletsResponse struct {
	Outlets []Outlet `json:"outlets"`
	Total   int      `json:"total"`
}

// SessionResponse is the body of GET /sessions/:id.
type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	Messages     []Message `json:"messages"`
	MessageCount int       `json:"message_count"`
	LastIntent   Intent    `json:"last_intent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Catalog  string `json:"catalog"`
	Sessions int    `json:"sessions"`
	Version  string `json:"version,omitempty"`
}
