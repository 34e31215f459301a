package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reportobello/reportobello-go/browser"
)

// readData loads report data from a JSON or YAML file, or JSON from in when
// path is "-". An empty path yields an empty object.
func readData(path string, in io.Reader) (any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(in)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var data any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(raw, &data); err == nil {
			err = checkStringKeys(data, "$")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err = dec.Decode(&data); err == nil {
			if dec.Decode(new(json.RawMessage)) != io.EOF {
				err = fmt.Errorf("unexpected data after the first JSON value")
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return data, nil
}

// checkStringKeys rejects YAML mappings with non-string keys, which have no
// JSON representation.
func checkStringKeys(v any, at string) error {
	switch tv := v.(type) {
	case map[string]any:
		for k, child := range tv {
			if err := checkStringKeys(child, at+"."+k); err != nil {
				return err
			}
		}
	case map[any]any:
		for k := range tv {
			if _, ok := k.(string); !ok {
				return fmt.Errorf("%s: key %v is not a string", at, k)
			}
		}
		return fmt.Errorf("%s: mapping has non-string keys", at)
	case []any:
		for i, child := range tv {
			if err := checkStringKeys(child, fmt.Sprintf("%s[%d]", at, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func newBuildCmd() *cobra.Command {
	var (
		dataPath   string
		preview    bool
		open       bool
		downloadAs string
		download   bool
	)

	cmd := &cobra.Command{
		Use:   "build NAME",
		Short: "Build a PDF from a template and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readData(dataPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}

			start := time.Now()
			u, err := c.RunReport(cmd.Context(), args[0], data, preview)
			elapsed := time.Since(start)
			if err != nil {
				log.Error().Err(err).Str("template", args[0]).Dur("elapsed", elapsed).Msg("build failed")
				return err
			}
			log.Debug().Str("template", args[0]).Bool("preview", preview).Dur("elapsed", elapsed).Msg("build completed")

			fmt.Fprintln(cmd.OutOrStdout(), u.String())
			if open || download {
				return browser.NewViewer(opener).OpenInNewTab(u, downloadAs, download)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "JSON or YAML data file, or - for JSON on stdin")
	cmd.Flags().BoolVar(&preview, "preview", false, "Build a preview instead of a stored report")
	cmd.Flags().BoolVar(&open, "open", false, "Open the PDF in the default browser")
	addDownloadFlags(cmd, &downloadAs, &download)
	return cmd
}

func newOpenCmd() *cobra.Command {
	var (
		downloadAs string
		download   bool
	)

	cmd := &cobra.Command{
		Use:   "open URL",
		Short: "Open a generated PDF in the default browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil {
				return err
			}
			if !u.IsAbs() || u.Host == "" {
				return fmt.Errorf("not an absolute URL: %q", args[0])
			}
			return browser.NewViewer(opener).OpenInNewTab(u, downloadAs, download)
		},
	}

	addDownloadFlags(cmd, &downloadAs, &download)
	return cmd
}

func addDownloadFlags(cmd *cobra.Command, downloadAs *string, download *bool) {
	cmd.Flags().StringVar(downloadAs, "download-as", "", "File name the browser saves the PDF as")
	cmd.Flags().BoolVar(download, "download", false, "Save the PDF instead of displaying it")
}
