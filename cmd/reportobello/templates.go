package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const uploadConcurrency = 4

// templateName derives a template name from a file path: the base name
// without its extension.
func templateName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func newUploadCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload Typst files as new template versions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name != "" && len(args) > 1 {
				return fmt.Errorf("--name can only be used with a single file")
			}
			c, err := newClient()
			if err != nil {
				return err
			}

			var outMu sync.Mutex
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(uploadConcurrency)
			for _, path := range args {
				tmpl := name
				if tmpl == "" {
					tmpl = templateName(path)
				}
				g.Go(func() error {
					start := time.Now()
					if err := c.UploadTemplateFile(ctx, tmpl, path); err != nil {
						log.Error().Err(err).Str("file", path).Str("name", tmpl).Msg("upload failed")
						return fmt.Errorf("upload %s: %w", path, err)
					}
					log.Debug().Str("file", path).Str("name", tmpl).Dur("elapsed", time.Since(start)).Msg("upload completed")
					outMu.Lock()
					fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as %s\n", path, tmpl)
					outMu.Unlock()
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name (default: file name without extension)")
	return cmd
}

func newVersionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "versions NAME",
		Short: "List the stored versions of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			start := time.Now()
			versions, err := c.GetTemplateVersions(cmd.Context(), args[0])
			elapsed := time.Since(start)
			if err != nil {
				log.Error().Err(err).Str("name", args[0]).Dur("elapsed", elapsed).Msg("get template versions failed")
				return err
			}
			log.Debug().Int("count", len(versions)).Dur("elapsed", elapsed).Msg("get template versions completed")

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(versions)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tNAME\tBYTES")
			for _, v := range versions {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", v.Version, v.Name, len(v.TemplateContent))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print versions as JSON including template content")
	return cmd
}
