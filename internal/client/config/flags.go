package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

// FlagNames lists the flags parseFlags owns. Each takes a value.
var FlagNames = []string{"-a", "-t", "-s", "-l", "-c", "-config", "--config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the storefront backend
//	-t int      request timeout in seconds
//	-s string   path to the local session database
//	-l string   log level (debug, info, warn, error)
//
// The function filters args to only the flags it knows about, using
// flagx.FilterArgs, so REPL positional arguments never reach the FlagSet.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s", "-l"})

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the storefront backend")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "path to the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -t only counts when given, so a sub-second file or env value survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
