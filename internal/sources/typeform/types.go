package typeform

import "github.com/agentstation/utc"

// responsesPage is one page of the form responses endpoint.
type responsesPage struct {
	TotalItems int            `json:"total_items"`
	PageCount  int            `json:"page_count"`
	Items      []responseItem `json:"items"`
}

// responseItem is a single submitted response.
type responseItem struct {
	ResponseID  string       `json:"response_id"`
	Token       string       `json:"token"`
	LandedAt    utc.Time     `json:"landed_at"`
	SubmittedAt utc.Time     `json:"submitted_at"`
	Answers     []answerItem `json:"answers"`
}

// answerItem is one answer within a response. The populated value field
// depends on Type.
type answerItem struct {
	Field       fieldRef    `json:"field"`
	Type        string      `json:"type"`
	Text        string      `json:"text,omitempty"`
	Email       string      `json:"email,omitempty"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	URL         string      `json:"url,omitempty"`
	Number      *float64    `json:"number,omitempty"`
	Choice      *choiceRef  `json:"choice,omitempty"`
	Choices     *choicesRef `json:"choices,omitempty"`
}

// fieldRef identifies the question an answer belongs to.
type fieldRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Ref  string `json:"ref"`
}

// choiceRef is a single selected choice.
type choiceRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// choicesRef is a multiple-selection answer.
type choicesRef struct {
	IDs    []string `json:"ids"`
	Labels []string `json:"labels"`
}
