// Package httpclient is the outbound HTTP client used to reach a remote
// Mercure hub: form-encoded publish requests with bearer auth, and
// event-stream subscriptions read through the sse subpackage.
//
// Every non-streaming request is bounded by Config.Timeout and attempted
// exactly once. Failures are classified into *Error values that keep the
// hub's status code and response body.
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout: 5 * time.Second,
//	    Auth:    httpclient.BearerAuth(publisherJWT),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "https://hub.example.com/.well-known/mercure",
//	    Body:   url.Values{"topic": {"room-1"}, "data": {"hello"}},
//	})
package httpclient
