package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/answerview/internal/checklist"
	"github.com/mithrel/answerview/pkg/api"
)

func newGateCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "gate [FILE|-]",
		Short: "Print a payload's response with the write checklist applied",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			p, err := api.DecodePayload(data)
			if err != nil {
				return err
			}
			writeLike := checklist.IsWriteLike(p)
			app.Log.Debug().Bool("write_like", writeLike).Msg("gate")
			if check {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), writeLike)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), checklist.Apply(p.Response, p))
			return err
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "only print whether the payload is write-like")
	return cmd
}
