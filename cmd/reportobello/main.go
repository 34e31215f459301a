package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reportobello/reportobello-go/browser"
	"github.com/reportobello/reportobello-go/client"
	"github.com/reportobello/reportobello-go/internal/config"
)

var (
	host   string
	apiKey string
	debug  bool

	cfg    *config.Config
	opener browser.Opener = browser.SystemOpener{}
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reportobello",
		Short:         "Upload Typst templates and build PDF reports with Reportobello",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			loaded, err := config.New()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("host") {
				loaded.Host = host
			}
			if flags.Changed("api-key") {
				loaded.APIKey = apiKey
			}
			if flags.Changed("debug") {
				loaded.Debug = debug
			}
			cfg = loaded

			lvl, err := cfg.Level()
			if err != nil {
				return err
			}
			if cfg.Debug {
				lvl = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(lvl)
			log.Debug().Str("host", cfg.Host).Bool("api_key_set", cfg.APIKey != "").Msg("configuration loaded")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", client.DefaultBaseURL, "Reportobello base URL (env REPORTOBELLO_HOST)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (env REPORTOBELLO_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Log HTTP requests and responses")

	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newVersionsCmd())
	rootCmd.AddCommand(newEnvCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newStarterCmd())

	return rootCmd
}

func newClient() (*client.Client, error) {
	return cfg.NewClient()
}
