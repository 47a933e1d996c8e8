package typeform

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthops/intake/internal/transport"
	"github.com/hearthops/intake/pkg/errors"
)

func TestNewRequiresToken(t *testing.T) {
	_, err := New("", "form123")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTokenRequired)
}

func TestNewRequiresFormID(t *testing.T) {
	_, err := New("token", "")
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestResponsesSinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tf-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/forms/form123/responses", r.URL.Path)
		// No completed filter: partials must be listed too.
		assert.False(t, r.URL.Query().Has("completed"))

		fmt.Fprint(w, `{
			"total_items": 2,
			"page_count": 1,
			"items": [
				{
					"response_id": "resp-2",
					"token": "tok-2",
					"submitted_at": "2025-03-02T10:00:00Z",
					"answers": [
						{"field": {"id": "wPikONTZh8zZ", "type": "email", "ref": "client_email"}, "type": "email", "email": "Beth@Example.com"},
						{"field": {"id": "o1y3GX8jj48E", "type": "short_text", "ref": "first_name"}, "type": "text", "text": "Beth"},
						{"field": {"id": "GrQyr8j5sFPl", "type": "multiple_choice", "ref": "relational_pref"}, "type": "choice", "choice": {"label": "Relational / Engaged"}}
					]
				},
				{
					"response_id": "resp-1",
					"token": "tok-1",
					"submitted_at": "2025-03-01T10:00:00Z",
					"answers": [
						{"field": {"id": "wPikONTZh8zZ", "type": "email", "ref": "client_email"}, "type": "email", "email": "amy@example.com"}
					]
				}
			]
		}`)
	}))
	defer server.Close()

	client, err := New("tf-token", "form123", WithBaseURL(server.URL))
	require.NoError(t, err)

	subs, err := client.Responses(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)

	// Source order: oldest first.
	assert.Equal(t, "resp-1", subs[0].ResponseID)
	assert.Equal(t, "resp-2", subs[1].ResponseID)

	assert.Equal(t, "Beth@Example.com", subs[1].Email)
	assert.Equal(t, "beth@example.com", subs[1].Respondent())
	assert.True(t, subs[1].Complete)

	require.Len(t, subs[1].Answers, 3)
	assert.Equal(t, "o1y3GX8jj48E", subs[1].Answers[1].FieldID)
	assert.Equal(t, "first_name", subs[1].Answers[1].FieldLabel)
	assert.Equal(t, "Beth", subs[1].Answers[1].Value())
	assert.Equal(t, "Relational / Engaged", subs[1].Answers[2].Choice)
}

func TestResponsesPagination(t *testing.T) {
	var befores []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		before := r.URL.Query().Get("before")
		befores = append(befores, before)

		if before == "" {
			fmt.Fprint(w, `{
				"total_items": 3,
				"page_count": 2,
				"items": [
					{"response_id": "resp-3", "token": "tok-3", "submitted_at": "2025-03-03T10:00:00Z", "answers": []},
					{"response_id": "resp-2", "token": "tok-2", "submitted_at": "2025-03-02T10:00:00Z", "answers": []}
				]
			}`)
			return
		}
		fmt.Fprint(w, `{
			"total_items": 3,
			"page_count": 2,
			"items": [
				{"response_id": "resp-1", "token": "tok-1", "submitted_at": "2025-03-01T10:00:00Z", "answers": []}
			]
		}`)
	}))
	defer server.Close()

	client, err := New("tf-token", "form123",
		WithBaseURL(server.URL), WithPageSize(2))
	require.NoError(t, err)

	subs, err := client.Responses(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 3)

	assert.Equal(t, []string{"", "tok-2"}, befores)
	assert.Equal(t, "resp-1", subs[0].ResponseID)
	assert.Equal(t, "resp-3", subs[2].ResponseID)
}

func TestResponsesMultiChoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"total_items": 1,
			"page_count": 1,
			"items": [
				{
					"response_id": "resp-1",
					"token": "tok-1",
					"submitted_at": "2025-03-01T10:00:00Z",
					"answers": [
						{"field": {"id": "multi1", "type": "multiple_choice", "ref": "days"}, "type": "choices", "choices": {"labels": ["Monday", "Wednesday"]}}
					]
				}
			]
		}`)
	}))
	defer server.Close()

	client, err := New("tf-token", "form123", WithBaseURL(server.URL))
	require.NoError(t, err)

	subs, err := client.Responses(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Monday, Wednesday", subs[0].Answers[0].Choice)
}

func TestResponsesIncludesPartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"total_items": 2,
			"page_count": 1,
			"items": [
				{
					"response_id": "resp-2",
					"token": "tok-2",
					"submitted_at": "2025-03-02T10:00:00Z",
					"answers": []
				},
				{
					"response_id": "resp-1",
					"token": "tok-1",
					"landed_at": "2025-03-01T10:00:00Z",
					"answers": [
						{"field": {"id": "wPikONTZh8zZ", "type": "email", "ref": "client_email"}, "type": "email", "email": "amy@example.com"}
					]
				}
			]
		}`)
	}))
	defer server.Close()

	client, err := New("tf-token", "form123", WithBaseURL(server.URL))
	require.NoError(t, err)

	subs, err := client.Responses(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)

	// resp-1 never reached the thank-you screen: kept, marked incomplete.
	assert.Equal(t, "resp-1", subs[0].ResponseID)
	assert.False(t, subs[0].Complete)
	assert.Equal(t, "amy@example.com", subs[0].Email)
	assert.True(t, subs[1].Complete)
}

func TestResponsesNumberAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"total_items": 1,
			"page_count": 1,
			"items": [
				{
					"response_id": "resp-1",
					"token": "tok-1",
					"submitted_at": "2025-03-01T10:00:00Z",
					"answers": [
						{"field": {"id": "num1", "type": "number", "ref": "bedrooms"}, "type": "number", "number": 4},
						{"field": {"id": "num2", "type": "number", "ref": "bathrooms"}, "type": "number", "number": 2.5}
					]
				}
			]
		}`)
	}))
	defer server.Close()

	client, err := New("tf-token", "form123", WithBaseURL(server.URL))
	require.NoError(t, err)

	subs, err := client.Responses(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Len(t, subs[0].Answers, 2)
	assert.Equal(t, "4", subs[0].Answers[0].Value())
	assert.Equal(t, "2.5", subs[0].Answers[1].Value())
}

func TestResponsesPartialOnPageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("before") != "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{
			"total_items": 3,
			"page_count": 2,
			"items": [
				{"response_id": "resp-3", "token": "tok-3", "submitted_at": "2025-03-03T10:00:00Z", "answers": []},
				{"response_id": "resp-2", "token": "tok-2", "submitted_at": "2025-03-02T10:00:00Z", "answers": []}
			]
		}`)
	}))
	defer server.Close()

	client, err := New("tf-token", "form123",
		WithBaseURL(server.URL), WithPageSize(2),
		WithTransportOptions(transport.WithMaxRetries(0)))
	require.NoError(t, err)

	subs, err := client.Responses(context.Background())
	require.Error(t, err)

	// The first page survives the second page's failure, oldest first.
	require.Len(t, subs, 2)
	assert.Equal(t, "resp-2", subs[0].ResponseID)
	assert.Equal(t, "resp-3", subs[1].ResponseID)
}

func TestResponsesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"invalid token"}`)
	}))
	defer server.Close()

	client, err := New("bad-token", "form123", WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Responses(context.Background())
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "typeform", apiErr.Service)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
