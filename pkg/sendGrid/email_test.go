package sendGrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/pkg/sendGrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestEmailService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@storefront.com"
	fromName := "Storefront"
	ctx := t.Context()

	tests := []struct {
		name          string
		req           *models.EmailNotificationRequest
		status        int
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Plain text only",
			req: &models.EmailNotificationRequest{
				To:      "ada@example.com",
				ToName:  "Ada Lovelace",
				Subject: "Your order #42 is confirmed",
				Content: "Thanks for your order",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "ada@example.com", pers.To[0]["email"])
				assert.Equal(t, "Ada Lovelace", pers.To[0]["name"])
				assert.Equal(t, "Your order #42 is confirmed", pers.Subject)
				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])
				require.Len(t, p.Content, 1)
				assert.Equal(t, "text/plain", p.Content[0].Type)
			},
		},
		{
			name: "Success - With HTML",
			req: &models.EmailNotificationRequest{
				To:          "ada@example.com",
				Subject:     "Order confirmed",
				Content:     "Thanks",
				HTMLContent: "<p>Thanks</p>",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/html", p.Content[1].Type)
				assert.Equal(t, "<p>Thanks</p>", p.Content[1].Value)
			},
		},
		{
			name:          "Failure - SendGrid API Error (4xx)",
			req:           &models.EmailNotificationRequest{To: "bad@example.com", Subject: "s", Content: "c"},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
		{
			name:          "Failure - SendGrid API Error (5xx)",
			req:           &models.EmailNotificationRequest{To: "ada@example.com", Subject: "s", Content: "c"},
			status:        http.StatusInternalServerError,
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload sendgridV3Payload

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				if err == nil {
					_ = json.Unmarshal(body, &payload)
				}

				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			svc := sendGrid.NewEmailService(apiKey, fromEmail, fromName)
			svc.GetSendGridClient().Request.BaseURL = server.URL

			// Act
			err := svc.Send(ctx, tc.req)

			// Assert
			if tc.expectedError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		svc := sendGrid.NewEmailService(apiKey, fromEmail, fromName)
		svc.GetSendGridClient().Request.BaseURL = server.URL
		server.Close()

		err := svc.Send(ctx, &models.EmailNotificationRequest{To: "ada@example.com", Subject: "s", Content: "c"})

		assert.Error(t, err)
	})
}
