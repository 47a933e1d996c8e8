// Package typeform fetches survey responses from the Typeform responses
// API and converts them into raw submissions for the intake pipeline.
package typeform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hearthops/intake/internal/transport"
	"github.com/hearthops/intake/pkg/constants"
	"github.com/hearthops/intake/pkg/errors"
	"github.com/hearthops/intake/pkg/logging"
	"github.com/hearthops/intake/pkg/survey"
)

// DefaultBaseURL is the production responses API endpoint.
const DefaultBaseURL = "https://api.typeform.com"

// Client fetches responses for a single form.
type Client struct {
	transport     *transport.Client
	baseURL       string
	formID        string
	pageSize      int
	transportOpts []transport.Option
}

// Option customizes a typeform client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, primarily for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithPageSize overrides the responses page size.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithTransportOptions forwards options to the underlying transport client.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, opts...)
	}
}

// New creates a client for the given form. The token is required.
func New(token, formID string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.ErrTokenRequired
	}
	if formID == "" {
		return nil, errors.NewConfigError("typeform", "form ID required", errors.ErrInvalidInput)
	}

	c := &Client{
		baseURL:  DefaultBaseURL,
		formID:   formID,
		pageSize: constants.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport = transport.New("typeform", transport.BearerAuth{Token: token}, c.transportOpts...)
	return c, nil
}

// Responses fetches all responses for the form, completed and partial,
// oldest first, paging backward through the API until every item has been
// seen. On a mid-pagination failure the pages fetched so far are returned
// alongside the error.
func (c *Client) Responses(ctx context.Context) ([]survey.RawSubmission, error) {
	log := logging.Ctx(ctx)

	var subs []survey.RawSubmission
	before := ""
	for {
		page, err := c.fetchPage(ctx, before)
		if err != nil {
			reverse(subs)
			return subs, err
		}
		if len(page.Items) == 0 {
			break
		}
		for _, item := range page.Items {
			subs = append(subs, convertResponse(item))
		}
		before = page.Items[len(page.Items)-1].Token
		if len(page.Items) < c.pageSize {
			break
		}
	}

	// The API returns newest first; the pipeline wants source order.
	reverse(subs)

	log.Debug().
		Str("form_id", c.formID).
		Int("responses", len(subs)).
		Msg("Fetched form responses")
	return subs, nil
}

// fetchPage fetches one page of responses before the given token. Partial
// responses are listed too; completeness is carried per item.
func (c *Client) fetchPage(ctx context.Context, before string) (*responsesPage, error) {
	q := url.Values{}
	q.Set("page_size", fmt.Sprintf("%d", c.pageSize))
	if before != "" {
		q.Set("before", before)
	}
	endpoint := fmt.Sprintf("%s/forms/%s/responses?%s", c.baseURL, url.PathEscape(c.formID), q.Encode())

	var page responsesPage
	if err := c.transport.GetJSON(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// convertResponse maps one API response item to a raw submission. The
// respondent email is lifted from the first email-typed answer.
func convertResponse(item responseItem) survey.RawSubmission {
	sub := survey.RawSubmission{
		ResponseID:  responseID(item),
		SubmittedAt: item.SubmittedAt,
		Complete:    !item.SubmittedAt.IsZero(),
		Answers:     make([]survey.Answer, 0, len(item.Answers)),
	}

	for _, a := range item.Answers {
		ans := survey.Answer{
			FieldID:    a.Field.ID,
			FieldLabel: fieldLabel(a.Field),
			Type:       a.Type,
			Text:       a.Text,
			Email:      a.Email,
			Phone:      a.PhoneNumber,
			URL:        a.URL,
		}
		switch {
		case a.Choice != nil:
			ans.Choice = a.Choice.Label
		case a.Choices != nil:
			ans.Choice = strings.Join(a.Choices.Labels, ", ")
		case a.Number != nil:
			ans.Number = strconv.FormatFloat(*a.Number, 'f', -1, 64)
		}
		if a.Type == "email" && sub.Email == "" {
			sub.Email = a.Email
		}
		sub.Answers = append(sub.Answers, ans)
	}
	return sub
}

// responseID prefers the stable response_id, falling back to the legacy
// token identifier.
func responseID(item responseItem) string {
	if item.ResponseID != "" {
		return item.ResponseID
	}
	return item.Token
}

// fieldLabel derives a human-readable label for catch-all capture. The
// responses API carries only the field ref, which form builders name.
func fieldLabel(f fieldRef) string {
	if f.Ref != "" {
		return f.Ref
	}
	return f.ID
}

func reverse(subs []survey.RawSubmission) {
	for i, j := 0, len(subs)-1; i < j; i, j = i+1, j-1 {
		subs[i], subs[j] = subs[j], subs[i]
	}
}
