// Package notion reads and updates client records in a Notion database,
// translating between the reconciliation view of a record and the API's
// typed property payloads.
package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hearthops/intake/internal/transport"
	"github.com/hearthops/intake/pkg/constants"
	"github.com/hearthops/intake/pkg/errors"
	"github.com/hearthops/intake/pkg/logging"
	"github.com/hearthops/intake/pkg/reconcile"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.notion.com/v1"

// apiVersion pins the API behavior this client was written against.
const apiVersion = "2022-06-28"

// titleProperty is the database's title column, which holds the client's
// display name.
const titleProperty = "Task name"

// propertyTypes maps each writable field to its property type in the
// database schema.
var propertyTypes = map[reconcile.Field]string{
	reconcile.FieldEmail:          "email",
	reconcile.FieldPhone:          "phone_number",
	reconcile.FieldAddress:        "rich_text",
	reconcile.FieldCity:           "rich_text",
	reconcile.FieldState:          "rich_text",
	reconcile.FieldSchedulingLink: "url",
	reconcile.FieldCapabilities:   "rich_text",
	reconcile.FieldRelational:     "select",
	reconcile.FieldAutonomy:       "select",
	reconcile.FieldProfile:        "rich_text",
}

// Client reads and writes one client database.
type Client struct {
	transport     *transport.Client
	baseURL       string
	databaseID    string
	pageSize      int
	transportOpts []transport.Option
}

// Option customizes a notion client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, primarily for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithPageSize overrides the query page size.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithTransportOptions forwards options to the underlying transport client.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, opts...)
	}
}

// New creates a client for the given database. The token is required.
func New(token, databaseID string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.ErrTokenRequired
	}
	if databaseID == "" {
		return nil, errors.NewConfigError("notion", "database ID required", errors.ErrInvalidInput)
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		databaseID: databaseID,
		pageSize:   constants.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport = transport.New("notion", transport.BearerAuth{Token: token},
		append([]transport.Option{transport.WithHeader("Notion-Version", apiVersion)}, c.transportOpts...)...)
	return c, nil
}

// Records fetches every row of the client database, paging through the
// query endpoint until exhausted.
func (c *Client) Records(ctx context.Context) ([]reconcile.ClientRecord, error) {
	log := logging.Ctx(ctx)
	endpoint := fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID)

	var records []reconcile.ClientRecord
	cursor := ""
	for {
		req := queryRequest{PageSize: c.pageSize, StartCursor: cursor}
		var resp queryResponse
		if err := c.transport.PostJSON(ctx, endpoint, req, &resp); err != nil {
			return nil, err
		}
		for _, p := range resp.Results {
			records = append(records, convertPage(p))
		}
		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}

	log.Debug().
		Str("database_id", c.databaseID).
		Int("records", len(records)).
		Msg("Fetched client records")
	return records, nil
}

// UpdateRecord applies the planned writes to one record's properties.
func (c *Client) UpdateRecord(ctx context.Context, recordID string, writes []reconcile.Write) error {
	if len(writes) == 0 {
		return nil
	}

	props := make(map[string]any, len(writes))
	for _, w := range writes {
		payload, err := propertyPayload(w.Field, w.Value)
		if err != nil {
			return err
		}
		props[string(w.Field)] = payload
	}

	endpoint := fmt.Sprintf("%s/pages/%s", c.baseURL, recordID)
	return c.transport.PatchJSON(ctx, endpoint, updateRequest{Properties: props}, nil)
}

// convertPage maps one database row to the reconciliation view of a record.
// Unknown or unreadable properties read as empty.
func convertPage(p page) reconcile.ClientRecord {
	rec := reconcile.ClientRecord{
		ID:     p.ID,
		Fields: make(map[reconcile.Field]string, len(reconcile.Fields)),
	}

	if raw, ok := p.Properties[titleProperty]; ok {
		var prop property
		if err := json.Unmarshal(raw, &prop); err == nil {
			rec.Name = joinRichText(prop.Title)
		}
	}

	for _, field := range reconcile.Fields {
		raw, ok := p.Properties[string(field)]
		if !ok {
			continue
		}
		var prop property
		if err := json.Unmarshal(raw, &prop); err != nil {
			continue
		}
		if v := propertyValue(prop); v != "" {
			rec.Fields[field] = v
		}
	}
	return rec
}

// propertyValue extracts the plain value from a typed property.
func propertyValue(prop property) string {
	switch prop.Type {
	case "title":
		return joinRichText(prop.Title)
	case "rich_text":
		return joinRichText(prop.RichText)
	case "email":
		return deref(prop.Email)
	case "phone_number":
		return deref(prop.PhoneNumber)
	case "url":
		return deref(prop.URL)
	case "select":
		if prop.Select != nil {
			return prop.Select.Name
		}
	}
	return ""
}

// propertyPayload builds the typed update payload for one field write.
func propertyPayload(field reconcile.Field, value string) (any, error) {
	switch propertyTypes[field] {
	case "email":
		return map[string]any{"email": value}, nil
	case "phone_number":
		return map[string]any{"phone_number": value}, nil
	case "url":
		return map[string]any{"url": value}, nil
	case "select":
		return map[string]any{"select": map[string]any{"name": value}}, nil
	case "rich_text":
		return map[string]any{
			"rich_text": []map[string]any{
				{"type": "text", "text": map[string]any{"content": value}},
			},
		}, nil
	default:
		return nil, errors.NewValidationError(string(field), value, "no property type mapping")
	}
}

func joinRichText(fragments []richText) string {
	if len(fragments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fragments {
		if f.PlainText != "" {
			b.WriteString(f.PlainText)
		} else if f.Text != nil {
			b.WriteString(f.Text.Content)
		}
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
