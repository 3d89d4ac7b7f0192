package httpserver

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/pscheid92/epdtext-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButton2_SendsAndRedirectsWithInfo(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(authedRequest(http.MethodGet, "/button2"))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []string{"button2"}, ts.drain(t))

	infos, errs := ts.flashes(t, rec)
	assert.Equal(t, []string{"Sent 'KEY3' message to epdtext"}, infos)
	assert.Empty(t, errs)
}

func TestFixedActions(t *testing.T) {
	tests := []struct {
		path      string
		wantWire  string
		wantFlash string
	}{
		{"/next_screen", "next", "Sent 'next' message to epdtext"},
		{"/previous_screen", "previous", "Sent 'previous' message to epdtext"},
		{"/reload", "reload", "Sent 'reload' message to epdtext"},
		{"/button0", "button0", "Sent 'KEY1' message to epdtext"},
		{"/button1", "button1", "Sent 'KEY2' message to epdtext"},
		{"/button2", "button2", "Sent 'KEY3' message to epdtext"},
		{"/button3", "button3", "Sent 'KEY4' message to epdtext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(authedRequest(http.MethodGet, tt.path))

			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, []string{tt.wantWire}, ts.drain(t))
			infos, _ := ts.flashes(t, rec)
			assert.Equal(t, []string{tt.wantFlash}, infos)
		})
	}
}

func TestScreenActions(t *testing.T) {
	tests := []struct {
		path      string
		screen    string
		wantWire  string
		wantFlash string
	}{
		{"/screen", "clock", "screen clock", "Sent 'screen' message to epdtext"},
		{"/add_screen", "weather.01", "add_screen weather.01", "Sent 'add_screen' message to epdtext"},
		{"/remove_screen", "old_news-2", "remove_screen old_news-2", "Sent 'remove_screen' message to epdtext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(authedRequest(http.MethodGet, tt.path+"?screen="+url.QueryEscape(tt.screen)))

			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
			assert.Equal(t, []string{tt.wantWire}, ts.drain(t))
			infos, errs := ts.flashes(t, rec)
			assert.Equal(t, []string{tt.wantFlash}, infos)
			assert.Empty(t, errs)
		})
	}
}

func TestScreenActions_RejectInvalidNames(t *testing.T) {
	invalid := []string{
		"../etc",
		"weather 01",
		"weather\nreload",
		"a;b",
		strings.Repeat("a", domain.MaxScreenNameLen+1),
	}

	for _, a := range screenActions {
		for _, raw := range invalid {
			t.Run(a.action+"/"+raw[:min(len(raw), 10)], func(t *testing.T) {
				ts := newTestServer(t)

				rec := ts.do(authedRequest(http.MethodGet, a.path+"?screen="+url.QueryEscape(raw)))

				assert.Equal(t, http.StatusFound, rec.Code)
				assert.Equal(t, "/", rec.Header().Get("Location"))
				assert.Empty(t, ts.drain(t), "nothing may reach the channel")
				assert.Equal(t, 1, ts.rejections.byAction[a.action])

				infos, errs := ts.flashes(t, rec)
				assert.Empty(t, infos)
				assert.Equal(t, []string{invalidScreenMessage}, errs)
			})
		}
	}
}

func TestScreenActions_MissingParameter(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{"/screen", "/add_screen?screen=", "/remove_screen?other=x"} {
		rec := ts.do(authedRequest(http.MethodGet, target))
		assert.Equal(t, http.StatusFound, rec.Code, target)
		_, errs := ts.flashes(t, rec)
		assert.Equal(t, []string{invalidScreenMessage}, errs, target)
	}
	assert.Empty(t, ts.drain(t))
}

func TestDispatch_SendFailureIsReported(t *testing.T) {
	ch := &failingChannel{err: domain.ErrChannelFull}
	ts := newTestServer(t, withChannel(ch))

	rec := ts.do(authedRequest(http.MethodGet, "/reload"))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, ch.calls, "failed sends are not retried")

	infos, errs := ts.flashes(t, rec)
	assert.Empty(t, infos)
	assert.Equal(t, []string{"Failed to send 'reload' message to epdtext"}, errs)
}

func TestDispatch_ConcurrentRequestsKeepMessagesIntact(t *testing.T) {
	ts := newTestServer(t)
	const n = 40

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			target := "/add_screen?screen=screen-" + strings.Repeat("x", i%7) + "-" + string(rune('a'+i%26))
			rec := ts.do(authedRequest(http.MethodGet, target))
			assert.Equal(t, http.StatusFound, rec.Code)
		}()
	}
	wg.Wait()

	msgs := ts.drain(t)
	require.Len(t, msgs, n)
	for _, msg := range msgs {
		name, ok := strings.CutPrefix(msg, "add_screen ")
		require.True(t, ok, "unexpected message %q", msg)
		_, err := domain.ParseScreenName(name)
		assert.NoError(t, err, "corrupted message %q", msg)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
