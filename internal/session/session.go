package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Ubaid1192/authload/internal/httpclient"
	"github.com/Ubaid1192/authload/internal/metrics"
	"github.com/Ubaid1192/authload/internal/runner"
	"github.com/Ubaid1192/authload/internal/scenario"
	"github.com/Ubaid1192/authload/internal/tracing"
	"github.com/Ubaid1192/authload/internal/userdata"
)

// Scenario names used for log lines and per-scenario aggregation.
const (
	ScenarioRegister      = "Registration"
	ScenarioLoginEmail    = "Login with Email"
	ScenarioLoginUsername = "Login with Username"
)

// Request names keep the original numbering for the aggregate collector.
const (
	requestRegister      = "1. Register New User"
	requestLoginEmail    = "2. Login with Email"
	requestLoginUsername = "3. Login with Username"
)

const (
	registerPath = "/client_registeration" // path typo matches the application under test
	loginPath    = "/client_login"

	msgRegistered = "User Registered"

	detailNoUsers = "No registered users available"

	// The log detail and the collector reason fall back to different
	// defaults when a failed login carries no msg field.
	defaultLoginDetail = "Unknown error"
	defaultLoginReason = "Login failed"

	maxBodyBytes = 1 << 20
)

// Options wire a Session's dependencies.
type Options struct {
	Target    string
	Client    *http.Client
	Users     *userdata.Factory
	Logger    *scenario.Logger
	Collector *metrics.Collector
	Tracer    trace.Tracer
	OnFailure func(name, details string)
}

// Session drives one simulated user through the registration and login
// scenarios. A session is owned by a single worker goroutine; only the
// collector it feeds is shared.
type Session struct {
	id        string
	client    *http.Client
	users     *userdata.Factory
	logger    *scenario.Logger
	collector *metrics.Collector
	tracer    trace.Tracer
	onFailure func(name, details string)

	registerURL string
	loginURL    string

	registered []userdata.User
}

func New(opts Options) *Session {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("authload")
	}
	return &Session{
		id:          uuid.NewString(),
		client:      opts.Client,
		users:       opts.Users,
		logger:      opts.Logger,
		collector:   opts.Collector,
		tracer:      tracer,
		onFailure:   opts.OnFailure,
		registerURL: httpclient.JoinURL(opts.Target, registerPath),
		loginURL:    httpclient.JoinURL(opts.Target, loginPath),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Tasks exposes the ordered scenario sequence to the runner.
func (s *Session) Tasks() []runner.Task {
	return []runner.Task{
		{Name: ScenarioRegister, Run: s.Register},
		{Name: ScenarioLoginEmail, Run: s.LoginWithEmail},
		{Name: ScenarioLoginUsername, Run: s.LoginWithUsername},
	}
}

// Register submits the registration form for a freshly generated user. A
// successful registration joins the session's pool of login candidates.
func (s *Session) Register(ctx context.Context) {
	user := s.users.Generate()

	form := url.Values{
		"fullName": {user.FullName},
		"userName": {user.UserName},
		"email":    {user.Email},
		"password": {user.Password},
		"phone":    {user.Phone},
	}

	body, latency, err := s.postForm(ctx, ScenarioRegister, s.registerURL, form)
	// Registration is the only scenario feeding the session's response
	// time high-water mark.
	s.logger.Stats().Observe(latency)
	if err != nil {
		s.record(ScenarioRegister, requestRegister, scenario.StatusError, err.Error(), latency, err)
		return
	}

	msg, perr := messageField(body)
	if perr != nil {
		s.record(ScenarioRegister, requestRegister, scenario.StatusError, perr.Error(), latency, fmt.Errorf("Invalid response: %v", perr))
		return
	}
	if msg == msgRegistered {
		s.registered = append(s.registered, user)
		s.record(ScenarioRegister, requestRegister, scenario.StatusSuccess, "User: "+user.Email, latency, nil)
		return
	}
	s.record(ScenarioRegister, requestRegister, scenario.StatusFail,
		fmt.Sprintf("User: %s, Error: %s", user.Email, msg), latency, errors.New(msg))
}

// LoginWithEmail signs in as a previously registered user by email.
func (s *Session) LoginWithEmail(ctx context.Context) {
	s.login(ctx, ScenarioLoginEmail, requestLoginEmail, func(u userdata.User) (url.Values, string) {
		return url.Values{
			"userName": {""},
			"email":    {u.Email},
			"password": {u.Password},
		}, u.Email
	})
}

// LoginWithUsername signs in as a previously registered user by username.
func (s *Session) LoginWithUsername(ctx context.Context) {
	s.login(ctx, ScenarioLoginUsername, requestLoginUsername, func(u userdata.User) (url.Values, string) {
		return url.Values{
			"userName": {u.UserName},
			"email":    {""},
			"password": {u.Password},
		}, u.UserName
	})
}

// login runs one credential scenario against a randomly chosen registered
// user. Success means the response body carries a token key.
func (s *Session) login(ctx context.Context, name, request string, build func(userdata.User) (url.Values, string)) {
	if len(s.registered) == 0 {
		// No request goes out; the skip still counts toward the
		// session-local total.
		s.logger.Log(name, scenario.StatusSkip, detailNoUsers)
		return
	}
	user := s.registered[s.users.Pick(len(s.registered))]
	form, identity := build(user)

	body, latency, err := s.postForm(ctx, name, s.loginURL, form)
	if err != nil {
		s.record(name, request, scenario.StatusError, err.Error(), latency, err)
		return
	}
	if !gjson.ValidBytes(body) {
		perr := errors.New("response body is not valid JSON")
		s.record(name, request, scenario.StatusError, perr.Error(), latency, fmt.Errorf("Invalid response: %v", perr))
		return
	}

	if gjson.GetBytes(body, "token").Exists() {
		s.record(name, request, scenario.StatusSuccess, "User: "+identity, latency, nil)
		return
	}

	detail := defaultLoginDetail
	reason := defaultLoginReason
	if msg := gjson.GetBytes(body, "msg"); msg.Exists() {
		detail = msg.String()
		reason = msg.String()
	}
	s.record(name, request, scenario.StatusFail,
		fmt.Sprintf("User: %s, Error: %s", identity, detail), latency, errors.New(reason))
}

// postForm issues one measured form POST and returns the response body.
func (s *Session) postForm(ctx context.Context, name, target string, form url.Values) ([]byte, time.Duration, error) {
	ctx, span := tracing.StartScenarioSpan(ctx, s.tracer, name, s.id)

	req, err := httpclient.NewFormRequest(ctx, target, form)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, 0, err
	}
	tracing.InjectHTTPHeaders(ctx, req.Header)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		latency := time.Since(start)
		tracing.EndSpan(span, err)
		return nil, latency, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	resp.Body.Close()
	latency := time.Since(start)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, latency, err
	}

	tracing.EndSpan(span, nil, attribute.Int("http.status_code", resp.StatusCode))
	return body, latency, nil
}

// record classifies one issued request: a log line, a collector entry, and
// the optional failure callback.
func (s *Session) record(name, request string, status scenario.Status, details string, latency time.Duration, err error) {
	s.logger.Log(name, status, details)
	s.collector.RecordRequest(latency, err, request)
	if err != nil && s.onFailure != nil {
		s.onFailure(name, details)
	}
}

// messageField extracts the msg key from a JSON response body.
func messageField(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("response body is not valid JSON")
	}
	msg := gjson.GetBytes(body, "msg")
	if !msg.Exists() {
		return "", errors.New("response missing msg field")
	}
	return msg.String(), nil
}
