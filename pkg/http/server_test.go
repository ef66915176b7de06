package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tzrikka/reactranslate/pkg/languages"
	"github.com/tzrikka/reactranslate/pkg/slack"
)

const signingSecret = "secret"

type nopTranslator struct{}

func (nopTranslator) Translate(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

func testServer(oauth *slack.OAuth) *httpServer {
	bot := slack.NewBot(nil, nopTranslator{}, languages.NewResolver(nil), signingSecret)
	return &httpServer{bot: bot, oauth: oauth}
}

func signedRequest(t *testing.T, method, path, contentType, body string) *http.Request {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write(fmt.Appendf(nil, "v0:%s:%s", ts, body))

	r := httptest.NewRequestWithContext(t.Context(), method, path, strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("X-Slack-Request-Timestamp", ts)
	r.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return r
}

func TestHTTPServerMux(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		oauth      *slack.OAuth
		wantStatus int
		wantBody   string
	}{
		{
			name: "url_verification",
			req: func(t *testing.T) *http.Request {
				return signedRequest(t, http.MethodPost, "/slack/events", "application/json",
					`{"type": "url_verification", "challenge": "xyz"}`)
			},
			wantStatus: http.StatusOK,
			wantBody:   "xyz",
		},
		{
			name: "bad_signature",
			req: func(t *testing.T) *http.Request {
				r := signedRequest(t, http.MethodPost, "/slack/events", "application/json",
					`{"type": "url_verification", "challenge": "xyz"}`)
				r.Header.Set("X-Slack-Signature", "v0=1234")
				return r
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "invalid_form",
			req: func(t *testing.T) *http.Request {
				return signedRequest(t, http.MethodPost, "/slack/interactions",
					"application/x-www-form-urlencoded", "payload=%zz")
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown_suffix",
			req: func(t *testing.T) *http.Request {
				return signedRequest(t, http.MethodPost, "/slack/commands", "application/x-www-form-urlencoded", "")
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "wrong_method",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/slack/events", http.NoBody)
			},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name: "oauth_disabled",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/slack/install", http.NoBody)
			},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name: "oauth_enabled",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/slack/install", http.NoBody)
			},
			oauth:      slack.NewOAuth(&slack.Config{ClientID: "id", ClientSecret: "secret", StateSecret: "state"}),
			wantStatus: http.StatusFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			testServer(tt.oauth).mux().ServeHTTP(w, tt.req(t))

			if w.Code != tt.wantStatus {
				t.Errorf("response status code: got %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("response body: got %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
