package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"osm-linker/feature/mapfeatures"

	"github.com/spf13/cobra"
)

var typesJSON bool

// typesCmd prints the feature registry.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered map feature types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if typesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(mapfeatures.Types())
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tTABLE\tOSM QUERY\tREQUIRED TAGS\tMAX DISTANCE\tADDRESS")
		for _, d := range mapfeatures.Definitions() {
			query := d.OSMNodeQuery
			if query == "" {
				query = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%gm\t%t\n",
				d.Name, d.Table, query, strings.Join(d.RequiredTags, ","), d.MaxDistance, d.SupportsAddress)
		}
		return w.Flush()
	},
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Print the registry as JSON")
	RootCmd.AddCommand(typesCmd)
}
