package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	logLevel  string
	logFormat string
	logger    zerolog.Logger
}

// exitError ends the process with code without printing anything further.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "configema",
		Short: "APrinter configuration editor schema tool",
		Long: `configema builds the schema tree the APrinter configuration editor
renders, and exports it as a structural tree (JSON or YAML) or as a
JSON Schema document.

Quick start:
  configema dump             # Print the editor tree as JSON
  configema jsonschema       # Print the JSON Schema document
  configema check            # Verify every reference resolves
  configema serve            # Serve the documents over HTTP`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(stderr, o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			o.logger = l
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	level := os.Getenv("CONFIGEMA_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", level, "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&o.logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(
		newDumpCmd(o),
		newJSONSchemaCmd(o),
		newCheckCmd(o),
		newServeCmd(o),
	)
	return root
}

func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	var out io.Writer
	switch format {
	case "json":
		out = w
	case "console", "":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (want console or json)", format)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// writeOutput writes b to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, b []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
