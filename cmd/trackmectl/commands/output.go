package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// print writes data in the selected format. table renders the human form.
func (a *app) print(cmd *cobra.Command, data any, table func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	switch a.output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

// printDeleted reports a removed record
func (a *app) printDeleted(cmd *cobra.Command, kind, id string) error {
	return a.print(cmd, map[string]string{"deleted": id, "type": kind}, func(w io.Writer) {
		fmt.Fprintf(w, "Deleted %s %s\n", kind, id)
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
