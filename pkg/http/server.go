package http

import (
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/reactranslate/pkg/slack"
)

const (
	timeout = 3 * time.Second
	maxSize = 1 << 20 // 1 MiB.
)

type httpServer struct {
	httpPort int
	bot      *slack.Bot
	oauth    *slack.OAuth
}

func newHTTPServer(cmd *cli.Command, bot *slack.Bot, oauth *slack.OAuth) *httpServer {
	return &httpServer{
		httpPort: cmd.Int("port"),
		bot:      bot,
		oauth:    oauth,
	}
}

// run starts an HTTP server to expose webhooks.
// This is blocking, to keep the server running.
func (s *httpServer) run() error {
	server := &http.Server{
		Addr:         net.JoinHostPort("", strconv.Itoa(s.httpPort)),
		Handler:      s.mux(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	log.Info().Msgf("HTTP server listening on port %d", s.httpPort)
	err := server.ListenAndServe()
	if err != nil {
		log.Err(err).Send()
		return err
	}

	return nil
}

func (s *httpServer) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack/{suffix}", s.webhookHandler)

	if s.oauth != nil && s.oauth.Enabled() {
		log.Info().Msg("Slack OAuth installation flow enabled")
		mux.HandleFunc("GET /slack/install", withRequestLogger(s.oauth.InstallHandler))
		mux.HandleFunc("GET /slack/oauth_redirect", withRequestLogger(s.oauth.RedirectHandler))
	}

	return mux
}

// withRequestLogger attaches a request-scoped logger to the request's context.
func withRequestLogger(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := requestLogger(r)
		h(w, r.WithContext(l.WithContext(r.Context())))
	}
}

func requestLogger(r *http.Request) zerolog.Logger {
	l := log.With().Str("request_id", shortuuid.New()).
		Str("http_method", r.Method).Str("url_path", r.URL.EscapedPath()).Logger()
	l.Info().Msg("received HTTP request")
	return l
}

// webhookHandler reads incoming asynchronous event notifications
// and interaction payloads over HTTP from Slack, and passes them to
// [slack.Bot.WebhookHandler] for verification and processing.
func (s *httpServer) webhookHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	l := requestLogger(r)

	suffix := r.PathValue("suffix")
	if suffix != slack.EventsPath && suffix != slack.InteractionsPath {
		l.Warn().Msg("bad request: unexpected path")
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSize))
	if err != nil {
		l.Warn().Err(err).Msg("failed to read HTTP request body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	data := slack.RequestData{
		PathSuffix: suffix,
		Headers:    r.Header,
		RawPayload: body,
	}
	if suffix == slack.InteractionsPath {
		if data.Form, err = url.ParseQuery(string(body)); err != nil {
			l.Warn().Err(err).Msg("bad request: invalid form data")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	if statusCode := s.bot.WebhookHandler(l.WithContext(r.Context()), w, data); statusCode != 0 {
		w.WriteHeader(statusCode)
	}
}
