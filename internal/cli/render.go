package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/answerview/internal/present"
	"github.com/mithrel/answerview/internal/present/format"
	"github.com/mithrel/answerview/internal/wire"
	"github.com/mithrel/answerview/pkg/api"
)

func newRenderCmd() *cobra.Command {
	var markdown bool
	var ndjson bool
	var noHeaders bool
	var indent bool
	cmd := &cobra.Command{
		Use:   "render [FILE|-]",
		Short: "Render a response payload (or bare markdown)",
		Long: "Render reads a JSON response payload from FILE or stdin, hides the write\n" +
			"checklist for read-only results, splits the markdown into chunks and\n" +
			"renders the execution table in the selected output mode.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			out := cmd.OutOrStdout()
			opts, err := presentOptions(app, out)
			if err != nil {
				return err
			}
			opts.Headers = !noHeaders
			opts.JSONIndent = indent

			if ndjson {
				in, err := openInput(cmd, args)
				if err != nil {
					return err
				}
				defer in.Close()
				return renderStream(in, out, format.NewHTMLConverter(opts.Sanitize))
			}

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			var doc format.Document
			if markdown {
				doc = present.BuildMarkdown(string(data))
			} else {
				p, err := api.DecodePayload(data)
				if err != nil {
					return err
				}
				doc = present.Build(p)
			}
			app.Log.Debug().
				Str("hash", doc.Hash).
				Bool("write_like", doc.WriteLike).
				Int("chunks", len(doc.Chunks)).
				Msg("composed")

			if opts.Mode == present.ModeTUI {
				return present.RenderDocument(cmd.Context(), out, doc, opts)
			}
			return withPager(cmd.Context(), out, cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderDocument(cmd.Context(), w, doc, opts)
			})
		},
	}
	cmd.Flags().String("output", "", "output mode: pretty|plain|html|json|tui (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"pretty", "plain", "html", "json", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().String("style", "", "glamour style for pretty output")
	cmd.Flags().Int("wrap", 0, "word wrap width for pretty output")
	cmd.Flags().Bool("sanitize", true, "sanitize converted HTML")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "treat input as bare markdown instead of a payload")
	cmd.Flags().BoolVar(&ndjson, "ndjson", false, "read a stream of payloads and write one JSON document per line")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain)")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	bindFlagKeys(cmd, map[string]string{
		"style":    "pretty.style",
		"wrap":     "pretty.word_wrap",
		"sanitize": "html.sanitize",
	})
	return cmd
}

// presentOptions resolves output options from config and the terminal.
func presentOptions(app *wire.App, out io.Writer) (present.Options, error) {
	outputMode := app.Cfg.GetString("output")
	mode, ok := present.ParseMode(outputMode)
	if !ok {
		return present.Options{}, fmt.Errorf("invalid --output: %s", outputMode)
	}
	styled := isTerminal(out)
	if mode == present.ModeTUI && !styled {
		app.Log.Debug().Msg("stdout is not a terminal; using pretty output")
		mode = present.ModePretty
	}
	wrap := app.Cfg.GetInt("pretty.word_wrap")
	if width := terminalWidth(out); width > 0 && width < wrap {
		wrap = width
	}
	return present.Options{
		Mode:     mode,
		Headers:  true,
		Sanitize: app.Cfg.GetBool("html.sanitize"),
		Pretty: format.PrettyOptions{
			Style:    strings.TrimSpace(app.Cfg.GetString("pretty.style")),
			WordWrap: wrap,
			Styled:   styled,
		},
	}, nil
}

// renderStream composes each payload in r and writes it as an NDJSON line.
func renderStream(r io.Reader, w io.Writer, conv *format.HTMLConverter) error {
	dec := json.NewDecoder(r)
	nw := format.NewNDJSONStreamWriter(w, conv)
	for n := 1; ; n++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nw.Close()
			}
			return fmt.Errorf("payload %d: %w: %v", n, api.ErrInvalidPayload, err)
		}
		p, err := api.DecodePayload(raw)
		if err != nil {
			return fmt.Errorf("payload %d: %w", n, err)
		}
		if err := nw.WriteDocument(present.Build(p)); err != nil {
			return err
		}
	}
}
