package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/mercurekit/token"
	"github.com/kbukum/mercurekit/topic"
)

func (c *cli) keys() (*token.Keys, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, err
	}
	m := cfg.Mercure
	return token.NewKeys(token.KeysConfig{
		Secret:           m.SecretKey,
		PublisherSecret:  m.PublisherSecretKey,
		SubscriberSecret: m.SubscriberSecretKey,
		Method:           token.SigningMethod(m.SigningMethod),
		SubscriberTTL:    m.SubscriberTTL,
	})
}

func (c *cli) subscriberJWTCommand() *cobra.Command {
	var topics []string
	cmd := &cobra.Command{
		Use:   "subscriber-jwt",
		Short: "Generate a JWT for subscribing to topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := c.keys()
			if err != nil {
				return err
			}
			jwt, err := keys.Subscriber.MintSubscriber(topics...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jwt)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&topics, "topic", "t", []string{topic.Wildcard}, "topic the token may subscribe to (repeatable)")
	return cmd
}

func (c *cli) publisherJWTCommand() *cobra.Command {
	var topics []string
	cmd := &cobra.Command{
		Use:   "publisher-jwt",
		Short: "Generate a JWT for publishing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := c.keys()
			if err != nil {
				return err
			}
			jwt, err := keys.Publisher.MintPublisher(topics...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jwt)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&topics, "topic", "t", []string{topic.Wildcard}, "topic the token may publish to (repeatable)")
	return cmd
}
