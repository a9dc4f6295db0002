package models

// ChatRule matches visitor questions by keyword and answers from a fixed
// reply table. The chatbot is a fallback for out-of-hours counselling only.
type ChatRule struct {
	Keywords []string `json:"keywords"`
	Reply    string   `json:"reply"`
}

// ChatReply is the chatbot answer returned to the dashboard.
type ChatReply struct {
	Reply    string `json:"reply"`
	Matched  bool   `json:"matched"`
	RuleHint string `json:"rule_hint,omitempty"`
}
