package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "poshchat",
	Short: "Posh AI chat relay",
	Long: `poshchat serves the Posh AI chat page and relays each message to an
OpenAI-compatible completion API using a server-held key.

The key is read from DEEPSEEK_API_KEY (a .env file is loaded if present) or
from an SSM parameter when secrets.ssm_parameter is set.`,
	Version:      version,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command. With no subcommand it serves HTTP.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("addr", "", "listen address (default :5000)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("transport", "", "provider transport: sdk or rest")

	_ = v.BindPFlag("server.addr", rootCmd.PersistentFlags().Lookup("addr"))
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("provider.transport", rootCmd.PersistentFlags().Lookup("transport"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
}
