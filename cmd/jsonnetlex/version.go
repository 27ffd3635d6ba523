package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jsonnetlex/internal/version"
)

const versionTagline = "every block knows its margin"

type versionInfo struct {
	Version    string
	Colored    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

func (o versionOptions) anyExtra() bool { return o.showHash || o.showMessage || o.showDate }

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionCmd = newVersionCmd()

func newVersionCmd() *cobra.Command {
	var (
		opts versionOptions
		full bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show jsonnetlex build fingerprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.format = strings.ToLower(opts.format)
			if full {
				opts.showHash, opts.showMessage, opts.showDate = true, true, true
			}
			info := collectVersionInfo()
			switch opts.format {
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), info, opts)
			case "pretty":
				renderVersionPretty(cmd.OutOrStdout(), info, opts)
				return nil
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", opts.format)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.showHash, "hash", false, "include git commit hash")
	f.BoolVar(&opts.showMessage, "message", false, "include git commit message")
	f.BoolVar(&opts.showDate, "date", false, "include build timestamp")
	f.BoolVar(&full, "full", false, "show every recorded bit of build metadata")
	f.StringVar(&opts.format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func collectVersionInfo() versionInfo {
	return versionInfo{
		Version:    version.Normalized(),
		Colored:    version.Colored(),
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
	}
}

// extras lists the optional build fields selected by opts, in print order.
func (info versionInfo) extras(opts versionOptions) [][2]string {
	var out [][2]string
	add := func(on bool, label, value string) {
		if on {
			if value == "" {
				value = "unknown"
			}
			out = append(out, [2]string{label, value})
		}
	}
	add(opts.showHash, "commit", info.GitCommit)
	add(opts.showMessage, "message", info.GitMessage)
	add(opts.showDate, "built", info.BuildDate)
	return out
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "jsonnetlex %s - %s\n", info.Colored, versionTagline)
	if !opts.anyExtra() {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
		return
	}
	for _, kv := range info.extras(opts) {
		fmt.Fprintf(out, "%-8s %s\n", kv[0]+":", kv[1])
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{Tool: "jsonnetlex", Version: info.Version, Tagline: versionTagline}
	for _, kv := range info.extras(opts) {
		switch kv[0] {
		case "commit":
			payload.GitCommit = kv[1]
		case "message":
			payload.GitMessage = kv[1]
		case "built":
			payload.BuildDate = kv[1]
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
