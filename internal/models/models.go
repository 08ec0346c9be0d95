package models

import "time"

// Intent is the resolved category of a user message.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentProductQuery Intent = "product_query"
	IntentPriceQuery   Intent = "price_query"
	IntentOutletQuery  Intent = "outlet_query"
	IntentCalculation  Intent = "calculation"
	IntentThanks       Intent = "thanks"
	IntentFarewell     Intent = "farewell"
	IntentOffTopic     Intent = "off_topic"
	IntentUnknown      Intent = "unknown"
)

// Valid reports whether i is one of the known intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentGreeting, IntentProductQuery, IntentPriceQuery, IntentOutletQuery,
		IntentCalculation, IntentThanks, IntentFarewell, IntentOffTopic, IntentUnknown:
		return true
	}
	return false
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a session transcript.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Intent    Intent    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session holds the per-conversation state keyed by session id.
// LastProducts carries the products mentioned in the previous answer so
// follow-up questions ("how much is it?") can resolve without a new search.
type Session struct {
	ID           string    `json:"id"`
	Messages     []Message `json:"messages"`
	LastIntent   Intent    `json:"last_intent,omitempty"`
	LastProducts []Product `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// Response is the complete answer to one processed message.
type Response struct {
	Message     string      `json:"message"`
	Intent      Intent      `json:"intent"`
	Confidence  float64     `json:"confidence"`
	Products    []Product   `json:"products,omitempty"`
	Outlets     []Outlet    `json:"outlets,omitempty"`
	Calculation *CalcResult `json:"calculation,omitempty"`
}

// CalcResult is the evaluated arithmetic attached to a calculation response.
type CalcResult struct {
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
}
