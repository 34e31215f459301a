package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environment variables available to templates",
	}
	cmd.AddCommand(newEnvSetCmd())
	cmd.AddCommand(newEnvDeleteCmd())
	return cmd
}

// parseAssignments turns KEY=VALUE arguments into a map. VALUE may be empty
// and may itself contain '='.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q, want KEY=VALUE", a)
		}
		out[k] = v
	}
	return out, nil
}

// readVarsFile reads a flat YAML or JSON object of variables.
func readVarsFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vars := map[string]string{}
	if err := yaml.Unmarshal(raw, &vars); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}

func newEnvSetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set KEY=VALUE...",
		Short: "Create or overwrite environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			vars := map[string]string{}
			if file != "" {
				fromFile, err := readVarsFile(file)
				if err != nil {
					return err
				}
				for k, v := range fromFile {
					vars[k] = v
				}
			}
			fromArgs, err := parseAssignments(args)
			if err != nil {
				return err
			}
			for k, v := range fromArgs {
				vars[k] = v
			}
			if len(vars) == 0 {
				return fmt.Errorf("nothing to set: pass KEY=VALUE arguments or --file")
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			start := time.Now()
			if err := c.SetEnvironmentVariables(cmd.Context(), vars); err != nil {
				log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("set env failed")
				return err
			}

			keys := make([]string, 0, len(vars))
			for k := range vars {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", strings.Join(keys, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON file with a flat object of variables")
	return cmd
}

func newEnvDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY...",
		Short: "Delete environment variables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			start := time.Now()
			if err := c.DeleteEnvironmentVariables(cmd.Context(), args); err != nil {
				log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("delete env failed")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", strings.Join(args, ", "))
			return nil
		},
	}
}
