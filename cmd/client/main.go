package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"riskboard/internal/board"
	"riskboard/internal/config"
	"riskboard/internal/scoring"

	"github.com/spf13/cobra"
)

func main() {
	for _, warning := range config.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "riskboard-client",
		Short: "Upload student spreadsheets to the scoring service and show the risk table",
	}
	root.AddCommand(newUploadCmd(out))
	return root
}

type uploadOptions struct {
	url     string
	mode    string
	outPath string
	timeout time.Duration
	files   []string
	fields  []string
}

func newUploadCmd(out io.Writer) *cobra.Command {
	opts := &uploadOptions{}
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Send files and fields as one multipart form",
		Example: "  riskboard-client upload --file attendance=attendance.xlsx --file scores=scores.xlsx --file fees=fees.xlsx\n" +
			"  riskboard-client upload --mode html --file file=students.csv --out result.html",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpload(cmd, out, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", config.ScoringURL, "scoring service base URL")
	cmd.Flags().StringVar(&opts.mode, "mode", config.ScoringMode, "response variant: json or html")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "write the returned page here (html mode)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.ScoringTimeout, "request timeout, 0 for none")
	cmd.Flags().StringArrayVar(&opts.files, "file", nil, "file to upload as field=path (repeatable)")
	cmd.Flags().StringArrayVar(&opts.fields, "field", nil, "form field as name=value (repeatable)")
	return cmd
}

func runUpload(cmd *cobra.Command, out io.Writer, opts *uploadOptions) error {
	if opts.mode != scoring.ModeJSON && opts.mode != scoring.ModeHTML {
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
	if len(opts.files) == 0 {
		return fmt.Errorf("at least one --file is required")
	}

	form := &scoring.Form{}
	defer form.Close()
	for _, f := range opts.fields {
		name, value, err := splitPair(f)
		if err != nil {
			return err
		}
		form.AddField(name, value)
	}
	for _, f := range opts.files {
		field, path, err := splitPair(f)
		if err != nil {
			return err
		}
		if err := form.OpenFile(field, path); err != nil {
			return err
		}
	}

	client := scoring.NewClient(opts.url, opts.timeout)
	ctx := cmd.Context()

	if opts.mode == scoring.ModeHTML {
		page, err := client.UploadHTML(ctx, form)
		if err != nil {
			return err
		}
		if opts.outPath == "" {
			_, err = out.Write(page)
			return err
		}
		return os.WriteFile(opts.outPath, page, 0644)
	}

	students, err := client.UploadJSON(ctx, form)
	if err != nil {
		return err
	}
	return board.WriteTerminal(out, board.Build(students))
}

func splitPair(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", s)
	}
	return name, value, nil
}
