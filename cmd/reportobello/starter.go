package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reportobello/reportobello-go/client/starters"
)

func newStarterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "starter",
		Short: "Built-in starter templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List starter templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := starters.List()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Print a starter template's Typst source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := starters.Load(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	})

	var as string
	upload := &cobra.Command{
		Use:   "upload NAME",
		Short: "Upload a starter template to your account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := as
			if target == "" {
				target = args[0]
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.UploadTemplateFS(cmd.Context(), starters.FS(), target, starters.Path(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded starter %s as %s\n", args[0], target)
			return nil
		},
	}
	upload.Flags().StringVar(&as, "as", "", "Template name to upload as (default: starter name)")
	cmd.AddCommand(upload)

	return cmd
}
