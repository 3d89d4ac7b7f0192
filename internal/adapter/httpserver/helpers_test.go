package httpserver

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pscheid92/epdtext-web/internal/adapter/ipc"
	"github.com/pscheid92/epdtext-web/internal/app"
	"github.com/pscheid92/epdtext-web/internal/domain"
	"github.com/pscheid92/epdtext-web/internal/platform/config"
	"github.com/stretchr/testify/require"
)

const (
	testUser     = "operator"
	testPassword = "correct-horse"
)

type failingChannel struct {
	err   error
	calls int
}

func (f *failingChannel) Send(context.Context, string, time.Duration) error {
	f.calls++
	return f.err
}

func (f *failingChannel) Close() error { return nil }

type countingRejections struct {
	byAction map[string]int
}

func (r *countingRejections) ScreenNameRejectedFor(action string) {
	if r.byAction == nil {
		r.byAction = make(map[string]int)
	}
	r.byAction[action]++
}

type testServer struct {
	*Server
	queue      *ipc.MemoryQueue
	rejections *countingRejections
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "test",
		SessionSecret:      "test-secret-key-32-bytes-long!!!",
		SessionMaxAge:      time.Hour,
		IPCBackend:         "memory",
		IPCQueueName:       "/epdtext_ipc",
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
}

func testTemplates() *template.Template {
	return template.Must(template.New("index.html").Parse(
		`{{range .Errors}}error: {{.}}
{{end}}{{range .Infos}}info: {{.}}
{{end}}pending: {{.System.Pending}}`))
}

// newTestServer wires a real CommandService to a memory queue unless opts
// replace the channel.
func newTestServer(t *testing.T, opts ...func(*Dependencies)) *testServer {
	t.Helper()

	queue := ipc.NewMemoryQueue(64, nil)
	rejections := &countingRejections{}
	deps := Dependencies{
		Commands:   app.NewCommandService(queue, 10*time.Millisecond, nil, nil),
		Auth:       app.NewAuthenticator(testUser, testPassword),
		Rejections: rejections,
		Queue:      queue,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	srv := newServer(testConfig(), deps, testTemplates())
	srv.registerRoutes()

	return &testServer{Server: srv, queue: queue, rejections: rejections}
}

func withChannel(ch domain.Channel) func(*Dependencies) {
	return func(d *Dependencies) {
		d.Commands = app.NewCommandService(ch, 10*time.Millisecond, nil, nil)
	}
}

func withHealthChecks(checks ...HealthCheck) func(*Dependencies) {
	return func(d *Dependencies) {
		d.HealthChecks = checks
	}
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.SetBasicAuth(testUser, testPassword)
	return req
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

// flashes decodes the flash messages carried by rec's session cookie.
func (ts *testServer) flashes(t *testing.T, rec *httptest.ResponseRecorder) (infos, errs []string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(ck)
	}
	session, err := ts.sessionStore.Get(req, sessionName)
	require.NoError(t, err)
	return toStrings(session.Flashes(string(severityInfo))), toStrings(session.Flashes(string(severityError)))
}

// drain returns every message currently buffered in the memory queue.
func (ts *testServer) drain(t *testing.T) []string {
	t.Helper()

	var msgs []string
	for ts.queue.Len() > 0 {
		msg, err := ts.queue.Receive(context.Background())
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}
	return msgs
}
