// Package cli implements the radix command-line interface.
package cli

import (
	"fmt"

	"github.com/govalues/radix/internal/config"
	"github.com/govalues/radix/internal/logging"
	"github.com/govalues/radix/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootOptions holds global flags and the state shared by all commands.
type RootOptions struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string

	// Set by the root command before a subcommand runs.
	Config config.Config
	Log    *logrus.Logger
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":          "log_level",
	"log-format":         "log_format",
	"log-file":           "log_file",
	"listen":             "listen",
	"http-listen":        "http_listen",
	"http-timeout":       "http_timeout",
	"http-max-in-flight": "http_max_in_flight",
	"max-digits":         "max_digits",
	"max-request-bytes":  "max_request_bytes",
	"read-timeout":       "read_timeout",
	"proxy-protocol":     "proxy_protocol",
	"cache-ttl":          "cache_ttl",
	"rate-limit":         "rate_limit",
	"rate-burst":         "rate_burst",
}

// NewRootCommand creates the root command of the radix CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "radix",
		Short: "Exact arithmetic on numbers in any base",
		Long: `radix converts numbers with repeating fractional parts between bases
from 2 to 65536 and evaluates exact arithmetic on them.

Numbers are written as [-]int[.frac][(period)], for example 0.1(6).
Digits 10 to 35 are letters and larger digits are written in brackets,
for example [40] in base 60.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.Flags())
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", config.DefaultLogFormat, "log format (text|json)")
	cmd.PersistentFlags().String("log-file", "", "write logs to a rotating file instead of stderr")
	cmd.PersistentFlags().Int("max-digits", 0, "digits rendered after the radix point (0 means the default)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewArithCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))

	return cmd
}

// load reads the configuration, letting flags that were set win, and builds
// the logger.
func (o *RootOptions) load(flags *pflag.FlagSet) error {
	v := config.NewViper()
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding flag --%v: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v, o.ConfigFile)
	if err != nil {
		return err
	}
	o.Config = cfg
	return nil
}

func (o *RootOptions) logger(cmd *cobra.Command) (*logrus.Logger, error) {
	if o.Log != nil {
		return o.Log, nil
	}
	log, err := logging.New(o.Config.LogLevel, o.Config.LogFormat, logging.Output(o.Config.LogFile, cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	o.Log = log
	return log, nil
}

// newService returns an uncached service for one-shot commands.
func (o *RootOptions) newService(cmd *cobra.Command) (*service.Service, error) {
	log, err := o.logger(cmd)
	if err != nil {
		return nil, err
	}
	return service.New(service.Options{MaxDigits: o.Config.MaxDigits, Logger: log})
}
