package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crimson-sun/tinsel/internal/config"
	"github.com/crimson-sun/tinsel/internal/logging"
	"github.com/crimson-sun/tinsel/internal/markup"
	"github.com/crimson-sun/tinsel/internal/rotation"
	"github.com/crimson-sun/tinsel/pkg/tinsel"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	envFiles   []string
	cfg        config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "tinsel",
	Short:             "Print decorated log messages and mirror them to rotating files",
	Long:              "tinsel renders styled single-line and boxed messages on the terminal and appends their plain text to time-bucketed log files.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	registerFlags(rootCmd.PersistentFlags())

	for _, l := range []tinsel.Level{tinsel.Info, tinsel.Warn, tinsel.Error, tinsel.Success, tinsel.Debug} {
		rootCmd.AddCommand(levelCmd(l))
	}
	rootCmd.AddCommand(bucketCmd())
	rootCmd.AddCommand(stripCmd())
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)
}

func registerFlags(f *pflag.FlagSet) {
	f.StringVar(&configPath, "config", "", "YAML config file (default $TINSEL_CONFIG)")
	f.StringSliceVar(&envFiles, "env-file", nil, ".env files to load (default ./.env if present)")
	f.String("log-dir", "", "mirror messages into this directory")
	f.String("interval", "", "file rotation window: 1h, 3h, 6h, 9h, 12h, 1d")
	f.String("levels", "", "levels written to file: comma list, all or none")
	f.Int("width", 0, "box width; 0 uses the terminal width")
	f.Bool("no-style", false, "remove markup without emitting style codes")
	f.Bool("no-color", false, "emit no color codes")
	f.Bool("hide-debug", false, "do not print debug messages on the console")
	f.String("diag-level", "", "diagnostics level: debug, info, warn, error")
}

// loadConfig layers defaults, .env files, the environment, the config file
// and finally explicit flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotenv(envFiles...); err != nil {
		return err
	}
	cfg = config.Load()

	path := configPath
	if path == "" {
		path = cfg.File
	}
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path, cfg); err != nil {
			return err
		}
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Init(os.Stderr, logging.ParseLevel(cfg.Diagnostics.Level), cfg.Diagnostics.JSON)
	return nil
}

// applyFlags copies flags the user set onto c.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	return applyFlagSet(cmd.Flags(), c)
}

func applyFlagSet(f *pflag.FlagSet, c *config.Config) error {
	var err error
	str := func(name string, dst *string) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetString(name)
		}
	}
	str("log-dir", &c.Sink.Dir)
	str("interval", &c.Sink.Interval)
	str("levels", &c.Sink.Levels)
	str("diag-level", &c.Diagnostics.Level)
	if err == nil && f.Changed("width") {
		c.Console.Width, err = f.GetInt("width")
	}
	negated := []struct {
		name string
		dst  *bool
	}{
		{"no-style", &c.Console.Styling},
		{"no-color", &c.Console.Color},
		{"hide-debug", &c.Console.Debug},
	}
	for _, n := range negated {
		if err != nil || !f.Changed(n.name) {
			continue
		}
		var on bool
		on, err = f.GetBool(n.name)
		*n.dst = !on
	}
	return err
}

// terminalWidth is the width of stdout, or the default box width when
// stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return tinsel.DefaultWidth
}

// loggerOptions translates c into facade options writing to stdout and
// stderr.
func loggerOptions(c config.Config, stdout, stderr io.Writer) ([]tinsel.Option, error) {
	opts := []tinsel.Option{
		tinsel.WithStdout(stdout),
		tinsel.WithStderr(stderr),
		tinsel.WithStyling(c.Console.Styling),
		tinsel.WithDebug(c.Console.Debug),
		tinsel.WithSymbols(c.Theme.Symbols),
		tinsel.WithBorders(c.Theme.Borders),
	}
	if c.Console.Color {
		opts = append(opts, tinsel.WithColors(c.Theme.Colors))
	} else {
		opts = append(opts, tinsel.WithoutColor())
	}

	width := c.Console.Width
	if width == 0 {
		width = terminalWidth()
	}
	opts = append(opts, tinsel.WithWidth(width))

	if c.Sink.Dir != "" {
		iv, err := c.Interval()
		if err != nil {
			return nil, err
		}
		levels, err := c.Levels()
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			tinsel.WithLogDir(c.Sink.Dir, iv),
			tinsel.WithLevels(levels...),
			tinsel.WithBuffer(c.Sink.BufferSize),
			tinsel.WithMaxSize(c.Sink.MaxSize),
		)
	}
	return opts, nil
}

func newLogger(cmd *cobra.Command) (*tinsel.Logger, error) {
	opts, err := loggerOptions(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return tinsel.New(opts...)
}

// levelCmd builds "tinsel <level> TITLE [MESSAGE...]". Without a message
// each line of stdin is logged under TITLE.
func levelCmd(level tinsel.Level) *cobra.Command {
	var box bool
	cmd := &cobra.Command{
		Use:   level.String() + " TITLE [MESSAGE...]",
		Short: fmt.Sprintf("Print a %s message", level),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			emit := func(msg string) {
				if box {
					l.LogBox(level, args[0], msg, 0)
				} else {
					l.Log(level, args[0], msg)
				}
			}
			if len(args) > 1 {
				emit(strings.Join(args[1:], " "))
				return nil
			}
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				emit(sc.Text())
			}
			return sc.Err()
		},
	}
	cmd.Flags().BoolVar(&box, "box", false, "draw the message in a box")
	return cmd
}

func bucketCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Print the log bucket for a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				now = t
			}
			iv, err := cfg.Interval()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rotation.BucketName(now, iv))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "RFC 3339 time (default now)")
	return cmd
}

func stripCmd() *cobra.Command {
	var removeMarkup bool
	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Remove escape codes from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				line := tinsel.Strip(sc.Text())
				if removeMarkup {
					line = markup.Strip(line)
				}
				fmt.Fprintln(out, line)
			}
			return sc.Err()
		},
	}
	cmd.Flags().BoolVar(&removeMarkup, "markup", false, "also remove markup markers")
	return cmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tinsel %s\n", version)
	},
}
