package notion

import "encoding/json"

// queryRequest is the body of a database query call.
type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// queryResponse is one page of database query results.
type queryResponse struct {
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// page is one database row with its raw property map. Properties are kept
// as raw JSON until typed extraction because each carries its own shape.
type page struct {
	ID         string                     `json:"id"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// property is the union of the typed property shapes this client reads.
type property struct {
	Type        string     `json:"type"`
	Title       []richText `json:"title,omitempty"`
	RichText    []richText `json:"rich_text,omitempty"`
	Email       *string    `json:"email,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Select      *selectOpt `json:"select,omitempty"`
}

// richText is a single rich text fragment.
type richText struct {
	Type      string    `json:"type"`
	Text      *textSpan `json:"text,omitempty"`
	PlainText string    `json:"plain_text,omitempty"`
}

// textSpan is the editable content of a rich text fragment.
type textSpan struct {
	Content string `json:"content"`
}

// selectOpt is a select property value.
type selectOpt struct {
	Name string `json:"name"`
}

// updateRequest is the body of a page properties update.
type updateRequest struct {
	Properties map[string]any `json:"properties"`
}
