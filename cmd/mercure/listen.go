package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/kbukum/mercurekit/carrier"
	"github.com/kbukum/mercurekit/httpclient"
	"github.com/kbukum/mercurekit/topic"
	"github.com/kbukum/mercurekit/version"
)

// listenedEvent is the JSON line printed per received event.
type listenedEvent struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type,omitempty"`
	Data  string `json:"data"`
	Retry int    `json:"retry,omitempty"`
}

func (c *cli) listenCommand() *cobra.Command {
	var (
		topics []string
		hubURL string
		jwt    string
		count  int
	)
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Subscribe to a hub and print updates as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load()
			if err != nil {
				return err
			}
			if hubURL == "" {
				hubURL = cfg.Mercure.HubURL
			}
			if hubURL == "" {
				hubURL = fmt.Sprintf("http://localhost:%d%s", cfg.Server.Port, carrier.WellKnownPath)
			}
			if jwt == "" {
				keys, err := c.keys()
				if err != nil {
					return err
				}
				if keys.Subscriber.HasKey() {
					if jwt, err = keys.Subscriber.MintSubscriber(topics...); err != nil {
						return err
					}
				}
			}

			client, err := httpclient.New(httpclient.Config{})
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			req := httpclient.Request{
				Method: http.MethodGet,
				Path:   hubURL,
				Query:  url.Values{"topic": topics},
			}
			if jwt != "" {
				req.Auth = httpclient.BearerAuth(jwt)
			}
			stream, err := client.DoStream(ctx, req)
			if err != nil {
				return err
			}
			defer stream.Close()
			if stream.SSE == nil {
				return fmt.Errorf("hub answered %q, not an event stream", stream.Headers["Content-Type"])
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for received := 0; count <= 0 || received < count; received++ {
				ev, err := stream.SSE.Next()
				if err != nil {
					if errors.Is(err, io.EOF) || ctx.Err() != nil {
						return nil
					}
					return err
				}
				if err := enc.Encode(listenedEvent{ID: ev.ID, Type: ev.Event, Data: ev.Data, Retry: ev.Retry}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&topics, "topic", "t", []string{topic.Wildcard}, "topic to subscribe to (repeatable)")
	f.StringVar(&hubURL, "hub", "", "hub URL (default: mercure.hub_url, or the local server)")
	f.StringVar(&jwt, "jwt", "", "subscriber JWT (default: minted from the subscriber key)")
	f.IntVarP(&count, "count", "n", 0, "exit after this many events (0 means unlimited)")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "mercure", version.GetFullVersion())
		},
	}
}
