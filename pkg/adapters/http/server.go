package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/contable/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Server serves the minimal-mode routes. Handlers keep no state between
// requests; AzureConfigured is fixed when the server is built.
type Server struct {
	AzureConfigured bool
	Logger          *slog.Logger
	Metrics         *Metrics
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAzureConfigured sets the value reported in chat traces.
func WithAzureConfigured(ok bool) ServerOption {
	return func(s *Server) {
		s.AzureConfigured = ok
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics records request counts and latencies into m.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) {
		s.Metrics = m
	}
}

// NewServer creates a Server with a discarding logger unless one is given.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler builds the router for the minimal-mode API.
func NewHandler(opts ...ServerOption) http.Handler {
	return NewServer(opts...).Routes()
}

// Routes returns the chi router. Anything outside the three routes, including
// a wrong method on a known path, is a 404 with an empty body.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.middlewares()...)

	r.NotFound(emptyStatus(http.StatusNotFound))
	r.MethodNotAllowed(emptyStatus(http.StatusNotFound))

	r.Get("/", s.handle(s.Status))
	r.With(enableCORS).Post("/process-invoice/", s.handle(s.ProcessInvoice))
	r.With(enableCORS).Post("/chat-json/", s.handle(s.Chat))
	return r
}

// middlewares run outermost first. Metrics wrap the recoverer so a recovered
// panic is counted with its final 500.
func (s *Server) middlewares() []func(http.Handler) http.Handler {
	mw := []func(http.Handler) http.Handler{requestID}
	if s.Metrics != nil {
		mw = append(mw, s.Metrics.Middleware)
	}
	return append(mw, s.recoverer)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

func emptyStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

// handlerFunc returns the payload to encode, or an error that becomes an empty 500.
type handlerFunc func(r *http.Request) (any, error)

func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.Logger.With("request_id", RequestID(r.Context()), "method", r.Method, "path", r.URL.Path)

		payload, err := fn(r)
		if err != nil {
			s.fail(w, logger, err)
			return
		}

		// Encode first so a failure can still be reported as a clean 500.
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			s.fail(w, logger, fmt.Errorf("encode response: %w", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			logger.Debug("Response write failed", "error", err)
		}
	}
}

func (s *Server) fail(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, domain.ErrMalformedBody) {
		logger.Warn("malformed request body", "kind", "malformed", "error", err)
	} else {
		logger.Error("unexpected handler failure", "kind", "internal", "error", err)
	}
	w.WriteHeader(http.StatusInternalServerError)
}

// Status handles GET /.
func (s *Server) Status(r *http.Request) (any, error) {
	return domain.MinimalStatus(), nil
}

// ProcessInvoice handles POST /process-invoice/. The upload is drained and
// ignored; the canned extraction result is returned for any body.
func (s *Server) ProcessInvoice(r *http.Request) (any, error) {
	_, _ = io.Copy(io.Discard, r.Body)
	return domain.NewMinimalInvoiceResponse(), nil
}

// Chat handles POST /chat-json/.
func (s *Server) Chat(r *http.Request) (any, error) {
	question, err := decodeQuestion(r)
	if err != nil {
		return nil, err
	}
	return domain.NewMinimalChatExchange(question, s.AzureConfigured), nil
}

// MaxChatBody is the largest Content-Length accepted on POST /chat-json/.
const MaxChatBody = 1 << 20

// decodeQuestion reads exactly Content-Length bytes and extracts the optional
// "question" string from a JSON object.
func decodeQuestion(r *http.Request) (string, error) {
	if r.ContentLength < 0 {
		return "", fmt.Errorf("%w: missing Content-Length", domain.ErrMalformedBody)
	}
	if r.ContentLength > MaxChatBody {
		return "", fmt.Errorf("%w: Content-Length %d exceeds %d", domain.ErrMalformedBody, r.ContentLength, MaxChatBody)
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, r.ContentLength))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrMalformedBody, err)
	}
	if int64(len(body)) != r.ContentLength {
		return "", fmt.Errorf("%w: short body: got %d of %d bytes", domain.ErrMalformedBody, len(body), r.ContentLength)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedBody, err)
	}
	if fields == nil {
		return "", fmt.Errorf("%w: body is not a JSON object", domain.ErrMalformedBody)
	}

	raw, ok := fields["question"]
	if !ok || string(raw) == "null" {
		return "", nil
	}
	var question string
	if err := json.Unmarshal(raw, &question); err != nil {
		return "", fmt.Errorf("%w: question must be a string", domain.ErrMalformedBody)
	}
	return question, nil
}
