package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/configema"
	"github.com/reoring/configema/aprinter"
	"github.com/reoring/configema/i18n"
	"github.com/reoring/configema/internal/server"
	"github.com/reoring/configema/jsonschema"
)

func newDumpCmd(o *options) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the editor schema tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := aprinter.Editor()
			var b []byte
			var err error
			switch format {
			case "json":
				b, err = configema.EncodeJSONIndent(root, "  ")
				b = append(b, '\n')
			case "yaml":
				b, err = configema.EncodeYAML(root)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}
			o.logger.Debug().Str("format", format).Int("compounds", configema.Count(root)[configema.KindCompound]).Msg("dump")
			return writeOutput(cmd.OutOrStdout(), out, b)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newJSONSchemaCmd(o *options) *cobra.Command {
	var out string
	var indent bool
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the editor tree as a JSON Schema document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := jsonschema.Document(aprinter.Editor())
			if err != nil {
				return err
			}
			var b []byte
			if indent {
				b, err = json.MarshalIndent(doc, "", "  ")
			} else {
				b, err = json.Marshal(doc)
			}
			if err != nil {
				return err
			}
			o.logger.Debug().Int("bytes", len(b)).Msg("jsonschema")
			return writeOutput(cmd.OutOrStdout(), out, append(b, '\n'))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&indent, "indent", true, "indent the document")
	return cmd
}

func newCheckCmd(o *options) *cobra.Command {
	var lang string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check [FILE]",
		Short: "Check a schema tree (default: the built-in editor tree)",
		Long: `Check verifies that a tree is well formed: keys are unique, one-of
alternatives are named, and every reference resolves to an array or
constant list carrying its id and name keys.

FILE may be a JSON (.json) or YAML (.yaml, .yml) tree as written by dump.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i18n.SetLanguage(lang)
			defer i18n.SetLanguage("en")

			root, src, err := loadTree(args)
			if err != nil {
				return err
			}
			iss, _ := configema.AsIssues(configema.Check(root))
			o.logger.Debug().Str("source", src).Int("issues", len(iss)).Msg("check")
			w := cmd.OutOrStdout()
			if asJSON {
				if iss == nil {
					iss = configema.Issues{}
				}
				b, err := json.MarshalIndent(map[string]any{"issues": iss}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(b))
			} else if len(iss) == 0 {
				fmt.Fprintf(w, "%s: ok\n", src)
			} else {
				for _, it := range iss {
					if it.Hint != "" {
						fmt.Fprintf(w, "%s: %s [%s] %s (%s)\n", src, it.Path, it.Code, it.Message, it.Hint)
					} else {
						fmt.Fprintf(w, "%s: %s [%s] %s\n", src, it.Path, it.Code, it.Message)
					}
				}
			}
			if len(iss) > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "message language (en, ja)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print issues as JSON")
	return cmd
}

func loadTree(args []string) (configema.Node, string, error) {
	if len(args) == 0 {
		return aprinter.Editor(), "editor", nil
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read %s: %w", path, err)
	}
	var root configema.Node
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		root, err = configema.DecodeYAML(data)
	default:
		root, err = configema.DecodeJSON(data)
	}
	if err != nil {
		return nil, path, fmt.Errorf("decode %s: %w", path, err)
	}
	return root, path, nil
}

func newServeCmd(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor documents over HTTP",
		Long: `Serve renders the editor tree once and serves:

  GET /schema.json      structural tree as JSON
  GET /schema.yaml      structural tree as YAML
  GET /jsonschema.json  JSON Schema document
  GET /check            structural issues (422 when any)
  GET /healthz          liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := server.Render(aprinter.Editor())
			if err != nil {
				return err
			}
			if len(docs.Issues) > 0 {
				o.logger.Warn().Int("issues", len(docs.Issues)).Msg("editor tree has structural issues")
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, addr, server.Router(docs, o.logger), o.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
