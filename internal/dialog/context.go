// Package dialog defines the conversation context blob that callers thread
// between turns. The context travels as JSON through the HTTP boundary, so
// field names are part of the wire contract.
package dialog

// Waiting names the pending sub-dialogue the next input is interpreted
// against. At most one value is active per context.
type Waiting string

const (
	WaitingNone           Waiting = ""
	WaitingProductSection Waiting = "choose_product_section"
	WaitingProductItem    Waiting = "choose_product_item"
	WaitingFallbackMenu   Waiting = "fallback_menu_choice"
	WaitingOrderChoice    Waiting = "choose_order_to_track"
	WaitingProvideEmail   Waiting = "provide_email"
	WaitingConfirmEnd     Waiting = "confirm_end"
	WaitingFeedbackChoice Waiting = "feedback_choice"
	WaitingFeedbackOther  Waiting = "feedback_other_pending"
)

// Valid reports whether w is one of the defined pending states.
func (w Waiting) Valid() bool {
	switch w {
	case WaitingNone, WaitingProductSection, WaitingProductItem,
		WaitingFallbackMenu, WaitingOrderChoice, WaitingProvideEmail,
		WaitingConfirmEnd, WaitingFeedbackChoice, WaitingFeedbackOther:
		return true
	}
	return false
}

// User identifies the person behind the conversation once known.
type User struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Context is the caller-held state threaded between turns. The core never
// persists it; the console loop keeps it in memory and the web frontend
// round-trips it through session storage.
type Context struct {
	User             *User   `json:"user,omitempty"`
	WaitingFor       Waiting `json:"waiting_for,omitempty"`
	OrderChoiceIDs   []int64 `json:"order_choice_ids,omitempty"`
	ProductChoiceIDs []int64 `json:"product_choice_ids,omitempty"`
	LastChoice       int     `json:"last_choice,omitempty"`
	EndSession       bool    `json:"end_session,omitempty"`
}

// KeepUser returns a fresh context carrying only the user identity. Every
// transition that clears scratch state goes through here so the user field
// survives the whole session.
func (c *Context) KeepUser() *Context {
	if c == nil {
		return &Context{}
	}
	return &Context{User: c.User}
}
