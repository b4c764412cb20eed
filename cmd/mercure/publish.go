package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/mercurekit/dispatch"
	"github.com/kbukum/mercurekit/hub"
	"github.com/kbukum/mercurekit/logger"
	"github.com/kbukum/mercurekit/mercure"
)

func (c *cli) publishCommand() *cobra.Command {
	var (
		hubURL string
		jwt    string
		u      hub.Update
	)
	cmd := &cobra.Command{
		Use:   "publish TOPIC DATA",
		Short: "Publish an update and print the hub's response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load()
			if err != nil {
				return err
			}
			logger.Init(&cfg.Logging)

			m, err := mercure.New(cfg.Mercure)
			if err != nil {
				return err
			}
			defer m.Close()

			var opts []dispatch.Option
			if hubURL != "" {
				opts = append(opts, dispatch.WithHubURL(hubURL))
			}
			if jwt != "" {
				opts = append(opts, dispatch.WithCredential(jwt))
			}

			u.Topic, u.Data = args[0], args[1]
			res, err := m.Publish(cmd.Context(), u, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Body)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&hubURL, "hub", "", "hub URL (default: mercure.hub_url, or the local broker)")
	f.StringVar(&jwt, "jwt", "", "publisher JWT (default: minted from the publisher key)")
	f.BoolVar(&u.Private, "private", false, "mark the update private")
	f.StringVar(&u.ID, "id", "", "update ID")
	f.StringVar(&u.Type, "type", "", "SSE event type")
	f.IntVar(&u.Retry, "retry", 0, "reconnection delay in milliseconds")
	return cmd
}
