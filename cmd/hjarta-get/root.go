package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	hjarta "github.com/0xalexb/hjarta-yaml"
	"github.com/0xalexb/hjarta-yaml/config"
	filefetcher "github.com/0xalexb/hjarta-yaml/config/fetcher/file"
	"github.com/0xalexb/hjarta-yaml/logging"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Exit statuses.
const (
	exitOK      = 0
	exitFalse   = 1
	exitFailure = 2
)

// errAbsent makes has exit with exitFalse without printing an error.
var errAbsent = errors.New("path absent")

type cli struct {
	logLevel  string
	expandEnv bool

	logger  *slog.Logger
	out     io.Writer
	errOut  io.Writer
	colored bool
}

func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{
		out:     stdout,
		errOut:  stderr,
		colored: isTerminal(stdout),
	}

	cmd := c.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errAbsent):
		return exitFalse
	default:
		c.printError(err)

		return exitFailure
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "hjarta-get",
		Short:         "Read typed values from YAML configuration files",
		Version:       hjarta.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			c.logger = logging.NewLogger(logging.LoggerConfig{
				Level:  c.logLevel,
				Format: logging.FormatText,
			}, c.errOut)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.BoolVar(&c.expandEnv, "expand-env", false, "expand ${VAR} references before parsing")

	root.AddCommand(
		c.getCommand(),
		c.hasCommand(),
		c.keysCommand(),
		c.checkCommand(),
	)

	return root
}

func (c *cli) load(fpath string, opts ...config.Option) (*config.Accessor, error) {
	var fetcherOpts []filefetcher.Option
	if c.expandEnv {
		fetcherOpts = append(fetcherOpts, filefetcher.WithExpandEnv())
	}

	fetcher, err := filefetcher.NewFetcher(fpath, fetcherOpts...)()
	if err != nil {
		return nil, err
	}

	accessor, err := config.Load(fetcher, append([]config.Option{config.WithLogger(c.logger)}, opts...)...)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("document loaded", slog.String("file", fetcher.Path()))

	return accessor, nil
}

func (c *cli) paint(attr color.Attribute, s string) string {
	if !c.colored {
		return s
	}

	return color.New(attr).Sprint(s)
}

func (c *cli) printError(err error) {
	colored := isTerminal(c.errOut)

	prefix := color.New(color.FgRed, color.Bold)
	if !colored {
		prefix.DisableColor()
	}

	_, _ = prefix.Fprint(c.errOut, "error: ")

	msg := err.Error()
	if cause := syntaxCause(err); cause != nil {
		msg = config.ErrInvalidDocument.Error() + "\n" + yaml.FormatError(cause, colored, true)
	}

	_, _ = io.WriteString(c.errOut, msg+"\n")
}

// syntaxCause returns the parser error behind config.ErrInvalidDocument.
func syntaxCause(err error) error {
	if !errors.Is(err, config.ErrInvalidDocument) {
		return nil
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return nil
	}

	for _, cause := range joined.Unwrap() {
		if !errors.Is(cause, config.ErrInvalidDocument) {
			return cause
		}
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
