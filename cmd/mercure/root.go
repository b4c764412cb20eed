package main

import (
	"github.com/spf13/cobra"
)

// cli carries the flags shared by every subcommand.
type cli struct {
	configFile string
	envFile    string
}

func (c *cli) load() (*AppConfig, error) {
	return loadConfig(c.configFile, c.envFile)
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "mercure",
		Short:         "Mercure hub commands",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: search ./config.yml and friends)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", ".env file to load")

	root.AddCommand(
		c.subscriberJWTCommand(),
		c.publisherJWTCommand(),
		c.publishCommand(),
		c.serveCommand(),
		c.listenCommand(),
		versionCommand(),
	)
	return root
}
