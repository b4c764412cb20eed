package hub

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mercurekit/carrier"
	"github.com/kbukum/mercurekit/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testHub struct {
	broker *Broker
	keys   *token.Keys
	server *httptest.Server
}

func newTestHub(t *testing.T, cfg HandlerConfig) *testHub {
	t.Helper()
	keys, err := token.NewKeys(token.KeysConfig{PublisherSecret: "pub", SubscriberSecret: "sub"})
	if err != nil {
		t.Fatal(err)
	}
	broker := NewBroker()
	engine := gin.New()
	NewHandler(broker, keys, cfg).Register(engine)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		broker.Shutdown()
		srv.Close()
	})
	return &testHub{broker: broker, keys: keys, server: srv}
}

func (th *testHub) hubURL(topics ...string) string {
	q := url.Values{}
	for _, tp := range topics {
		q.Add("topic", tp)
	}
	return th.server.URL + carrier.WellKnownPath + "?" + q.Encode()
}

// openStream subscribes and returns the received lines. It waits for the
// connection comment so the subscription is registered on return.
func openStream(t *testing.T, rawURL string, modify func(*http.Request)) <-chan string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	if modify != nil {
		modify(req)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		t.Fatal(err)
	}
	t.Cleanup(func() {
		cancel()
		resp.Body.Close()
	})
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("unexpected content type %q", ct)
	}

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	waitLine(t, lines, ": connected")
	return lines
}

func waitLine(t *testing.T, lines <-chan string, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatalf("stream ended before %q", want)
			}
			if line == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func noDataLine(t *testing.T, lines <-chan string) {
	t.Helper()
	deadline := time.After(waitWindow)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.HasPrefix(line, "data:") {
				t.Fatalf("expected nothing, got %q", line)
			}
		case <-deadline:
			return
		}
	}
}

func TestHandlerEndToEndWithCookie(t *testing.T) {
	th := newTestHub(t, HandlerConfig{AllowAnonymous: false})

	jwt, err := th.keys.Subscriber.MintSubscriber("room-1")
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	carrier.Attach(rec, carrier.Cookie{Value: jwt, Path: carrier.WellKnownPath, Insecure: true})
	cookie := rec.Result().Cookies()[0]

	lines := openStream(t, th.hubURL("room-1"), func(r *http.Request) { r.AddCookie(cookie) })

	if _, err := th.broker.Publish(context.Background(), Update{Topic: "room-1", Data: "hello", ID: "u1"}); err != nil {
		t.Fatal(err)
	}
	waitLine(t, lines, "id: u1")
	waitLine(t, lines, "data: hello")

	if _, err := th.broker.Publish(context.Background(), Update{Topic: "room-2", Data: "nope"}); err != nil {
		t.Fatal(err)
	}
	noDataLine(t, lines)
}

func TestHandlerPrivateNeedsGrant(t *testing.T) {
	th := newTestHub(t, HandlerConfig{AllowAnonymous: true})

	anonymous := openStream(t, th.hubURL("room-1"), nil)

	jwt, err := th.keys.Subscriber.MintSubscriber("room-1")
	if err != nil {
		t.Fatal(err)
	}
	authorized := openStream(t, th.hubURL("room-1")+"&authorization="+jwt, nil)

	if _, err := th.broker.Publish(context.Background(), Update{Topic: "room-1", Data: "secret", Private: true}); err != nil {
		t.Fatal(err)
	}
	waitLine(t, authorized, "data: secret")
	noDataLine(t, anonymous)
}

func TestHandlerSubscribeErrors(t *testing.T) {
	th := newTestHub(t, HandlerConfig{AllowAnonymous: false})

	wrongKey, err := th.keys.Publisher.MintSubscriber("*")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		url    string
		header string
		want   int
	}{
		{"no topic", th.server.URL + carrier.WellKnownPath, "", http.StatusBadRequest},
		{"anonymous disabled", th.hubURL("a"), "", http.StatusUnauthorized},
		{"garbage token", th.hubURL("a"), "Bearer garbage", http.StatusUnauthorized},
		{"publisher-signed token", th.hubURL("a"), "Bearer " + wrongKey, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func postUpdate(t *testing.T, th *testHub, bearer string, form url.Values) (int, string) {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, th.server.URL+carrier.WellKnownPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHandlerPublishDisabled(t *testing.T) {
	th := newTestHub(t, HandlerConfig{AllowAnonymous: true})
	jwt, _ := th.keys.Publisher.MintPublisher("*")
	status, body := postUpdate(t, th, jwt, url.Values{"topic": {"a"}, "data": {"x"}})
	if status != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", status)
	}
	if !strings.Contains(body, `"code":"METHOD_NOT_ALLOWED"`) {
		t.Errorf("expected METHOD_NOT_ALLOWED code, got %s", body)
	}
}

func TestHandlerPublish(t *testing.T) {
	th := newTestHub(t, HandlerConfig{AllowAnonymous: true, AllowPublish: true})

	pubAll, _ := th.keys.Publisher.MintPublisher("*")
	pubA, _ := th.keys.Publisher.MintPublisher("a")
	subOnly, _ := th.keys.Subscriber.MintSubscriber("*")

	tests := []struct {
		name   string
		bearer string
		form   url.Values
		want   int
	}{
		{"no token", "", url.Values{"topic": {"a"}}, http.StatusUnauthorized},
		{"subscriber token", subOnly, url.Values{"topic": {"a"}}, http.StatusUnauthorized},
		{"topic outside scope", pubA, url.Values{"topic": {"b"}}, http.StatusForbidden},
		{"missing topic", pubAll, url.Values{"data": {"x"}}, http.StatusBadRequest},
		{"ok", pubA, url.Values{"topic": {"a"}, "data": {"x"}, "id": {"given"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := postUpdate(t, th, tt.bearer, tt.form)
			if status != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, status, body)
			}
			if tt.want == http.StatusOK && body != "given" {
				t.Errorf("expected update id in body, got %q", body)
			}
		})
	}
}

func TestHandlerPublishReachesSubscriber(t *testing.T) {
	th := newTestHub(t, HandlerConfig{AllowAnonymous: true, AllowPublish: true})
	lines := openStream(t, th.hubURL("news"), nil)

	jwt, _ := th.keys.Publisher.MintPublisher("news")
	status, id := postUpdate(t, th, jwt, url.Values{"topic": {"news"}, "data": {"extra"}, "type": {"headline"}})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	waitLine(t, lines, "id: "+id)
	waitLine(t, lines, "event: headline")
	waitLine(t, lines, "data: extra")
}
