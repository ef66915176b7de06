package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

const (
	authorizeURL = "https://slack.com/oauth/v2/authorize"

	// Maximum duration between starting an installation and completing it.
	maxStateAge = 10 * time.Minute
)

// botScopes are required to read reactions and their messages,
// post replies and direct messages, and receive global shortcuts.
var botScopes = []string{
	"channels:history",
	"chat:write",
	"commands",
	"groups:history",
	"im:write",
	"reactions:read",
}

// OAuth implements Slack's [OAuth v2 installation flow]. The state parameter
// is a signed timestamp, so no server-side state is needed. The resulting
// tokens are not stored: the server keeps using its configured bot token.
//
// [OAuth v2 installation flow]: https://docs.slack.dev/authentication/installing-with-oauth
type OAuth struct {
	clientID     string
	clientSecret string
	stateSecret  string

	now func() time.Time
}

func NewOAuth(c *Config) *OAuth {
	return &OAuth{
		clientID:     c.ClientID,
		clientSecret: c.ClientSecret,
		stateSecret:  c.StateSecret,
		now:          time.Now,
	}
}

// Enabled reports whether all the OAuth credentials are configured.
func (o *OAuth) Enabled() bool {
	return o.clientID != "" && o.clientSecret != "" && o.stateSecret != ""
}

// InstallHandler redirects the user to Slack's authorization page.
func (o *OAuth) InstallHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, o.authorizeURL(o.newState()), http.StatusFound)
}

// RedirectHandler completes the installation flow: it checks the state
// parameter, and exchanges the temporary authorization code for tokens.
func (o *OAuth) RedirectHandler(w http.ResponseWriter, r *http.Request) {
	l := zerolog.Ctx(r.Context())
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		l.Warn().Str("error", e).Msg("Slack app installation canceled")
		http.Error(w, "Installation canceled: "+e, http.StatusBadRequest)
		return
	}

	if err := o.checkState(q.Get("state")); err != nil {
		l.Warn().Err(err).Msg("bad request: invalid OAuth state")
		http.Error(w, "Invalid or expired installation attempt, please try again", http.StatusForbidden)
		return
	}

	code := q.Get("code")
	if code == "" {
		l.Warn().Msg("bad request: missing OAuth code")
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	resp, err := slack.GetOAuthV2ResponseContext(r.Context(), http.DefaultClient, o.clientID, o.clientSecret, code, "")
	if err != nil {
		l.Error().Err(err).Msg("failed to exchange Slack OAuth code")
		http.Error(w, "Installation failed", http.StatusBadGateway)
		return
	}

	l.Info().Str("team_id", resp.Team.ID).Str("team_name", resp.Team.Name).
		Str("bot_user_id", resp.BotUserID).Msg("Slack app installed")
	_, _ = fmt.Fprintf(w, "Installed in %s successfully, you can close this page\n", resp.Team.Name)
}

func (o *OAuth) authorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", o.clientID)
	q.Set("scope", strings.Join(botScopes, ","))
	q.Set("state", state)
	return authorizeURL + "?" + q.Encode()
}

// newState returns a random nonce and the current time, signed with the state secret.
func (o *OAuth) newState() string {
	payload := fmt.Sprintf("%s.%d", shortuuid.New(), o.now().Unix())
	return payload + "." + o.sign(payload)
}

func (o *OAuth) checkState(state string) error {
	i := strings.LastIndex(state, ".")
	if i < 0 {
		return errors.New("malformed state")
	}

	payload, sig := state[:i], state[i+1:]
	if !hmac.Equal([]byte(sig), []byte(o.sign(payload))) {
		return errors.New("state signature mismatch")
	}

	_, ts, ok := strings.Cut(payload, ".")
	if !ok {
		return errors.New("malformed state")
	}

	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid state timestamp: %w", err)
	}

	if d := o.now().Sub(time.Unix(secs, 0)); d < 0 || d > maxStateAge {
		return fmt.Errorf("stale state: %s", d)
	}

	return nil
}

func (o *OAuth) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(o.stateSecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
