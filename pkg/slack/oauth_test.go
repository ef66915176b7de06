package slack

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func testOAuth(now time.Time) *OAuth {
	return &OAuth{
		clientID:     "id",
		clientSecret: "secret",
		stateSecret:  "state",
		now:          func() time.Time { return now },
	}
}

func TestOAuthEnabled(t *testing.T) {
	if !testOAuth(time.Now()).Enabled() {
		t.Error("Enabled() = false, want true")
	}
	if NewOAuth(&Config{ClientID: "id", ClientSecret: "secret"}).Enabled() {
		t.Error("Enabled() without state secret = true, want false")
	}
}

func TestOAuthCheckState(t *testing.T) {
	now := time.Unix(1700000000, 0)
	state := testOAuth(now).newState()

	tests := []struct {
		name    string
		o       *OAuth
		state   string
		wantErr bool
	}{
		{
			name:  "fresh",
			o:     testOAuth(now.Add(time.Minute)),
			state: state,
		},
		{
			name:    "expired",
			o:       testOAuth(now.Add(maxStateAge + time.Second)),
			state:   state,
			wantErr: true,
		},
		{
			name:    "from_the_future",
			o:       testOAuth(now.Add(-time.Minute)),
			state:   state,
			wantErr: true,
		},
		{
			name:    "tampered_timestamp",
			o:       testOAuth(now),
			state:   strings.Replace(state, ".1700000000.", ".1700000001.", 1),
			wantErr: true,
		},
		{
			name:    "different_secret",
			o:       &OAuth{stateSecret: "other", now: func() time.Time { return now }},
			state:   state,
			wantErr: true,
		},
		{
			name:    "empty",
			o:       testOAuth(now),
			wantErr: true,
		},
		{
			name:    "no_separators",
			o:       testOAuth(now),
			state:   "abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.o.checkState(tt.state); (err != nil) != tt.wantErr {
				t.Errorf("checkState() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOAuthInstallHandler(t *testing.T) {
	o := testOAuth(time.Now())
	w := httptest.NewRecorder()
	r := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/slack/install", http.NoBody)

	o.InstallHandler(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("response status code = %d, want %d", w.Code, http.StatusFound)
	}

	u, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Scheme + "://" + u.Host + u.Path; got != authorizeURL {
		t.Errorf("redirect URL = %q, want %q", got, authorizeURL)
	}

	q := u.Query()
	if got := q.Get("client_id"); got != "id" {
		t.Errorf("client_id = %q, want %q", got, "id")
	}
	if got := q.Get("scope"); !strings.Contains(got, "reactions:read") || !strings.Contains(got, "chat:write") {
		t.Errorf("scope = %q", got)
	}
	if err := o.checkState(q.Get("state")); err != nil {
		t.Errorf("state = %q, error = %v", q.Get("state"), err)
	}
}

func TestOAuthRedirectHandler(t *testing.T) {
	o := testOAuth(time.Now())
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{
			name:  "user_canceled",
			query: "error=access_denied&state=" + url.QueryEscape(o.newState()),
			want:  http.StatusBadRequest,
		},
		{
			name:  "invalid_state",
			query: "code=123&state=abc",
			want:  http.StatusForbidden,
		},
		{
			name:  "missing_code",
			query: "state=" + url.QueryEscape(o.newState()),
			want:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/slack/oauth_redirect?"+tt.query, http.NoBody)

			o.RedirectHandler(w, r)

			if w.Code != tt.want {
				t.Errorf("response status code = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
