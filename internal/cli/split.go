package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/answerview/internal/render"
	"github.com/mithrel/answerview/pkg/api"
)

const blockRule = "-----"

func newSplitCmd() *cobra.Command {
	var fromPayload bool
	cmd := &cobra.Command{
		Use:   "split [FILE|-]",
		Short: "Show how markdown splits into display chunks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			md := string(data)
			if fromPayload {
				p, err := api.DecodePayload(data)
				if err != nil {
					return err
				}
				md = p.Response
			}
			blocks := render.SplitMarkdown(md)
			app.Log.Debug().Int("blocks", len(blocks)).Msg("split")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(blocks, "\n"+blockRule+"\n"))
			return err
		},
	}
	cmd.Flags().BoolVar(&fromPayload, "payload", false, "read a response payload and split its response field")
	return cmd
}
