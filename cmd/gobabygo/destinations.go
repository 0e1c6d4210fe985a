package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/gobabygo/internal/locations"
	"github.com/dshills/gobabygo/internal/refdata"
)

type destinationsFlags struct {
	limit    int
	dataPath string
	family   bool
	region   string
	tables   bool
}

func newDestinationsCmd() *cobra.Command {
	f := &destinationsFlags{}

	cmd := &cobra.Command{
		Use:   "destinations [query]",
		Short: "Search the destination directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runDestinations(cmd.OutOrStdout(), query, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.limit, "limit", locations.DefaultSearchLimit, "Maximum results")
	flags.StringVar(&f.dataPath, "data", "", "Reference data override file (YAML)")
	flags.BoolVar(&f.family, "family", false, "List curated family-friendly destinations")
	flags.StringVar(&f.region, "region", "", "List destinations in a region (e.g. europe, asia)")
	flags.BoolVar(&f.tables, "tables", false, "List the embedded reference tables and the data hash")

	return cmd
}

func runDestinations(w io.Writer, query string, f *destinationsFlags) error {
	data, err := loadData(f.dataPath)
	if err != nil {
		return exitError(3, "failed to load reference data: %v", err)
	}
	if f.tables {
		return printTables(w, data)
	}
	dir := locations.New(data)

	var results []refdata.Destination
	switch {
	case f.family:
		results = dir.FamilyFriendly(f.limit)
	case f.region != "":
		results = dir.ByRegion(f.region)
		if f.limit > 0 && len(results) > f.limit {
			results = results[:f.limit]
		}
	default:
		results = dir.Search(query, f.limit)
	}

	if len(results) == 0 {
		fmt.Fprintf(w, "No destinations match %q\n", query)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCOUNTRY\tREGION\tTYPE")
	for _, d := range results {
		region := dir.Region(d.Country)
		if region == "" {
			region = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.Country, region, d.Type)
	}
	return tw.Flush()
}

func printTables(w io.Writer, data *refdata.Data) error {
	names, err := refdata.List()
	if err != nil {
		return exitError(1, "failed to list reference tables: %v", err)
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	hash := data.Hash
	if hash == "" {
		hash = "builtin"
	}
	fmt.Fprintf(w, "data hash: %s\n", hash)
	return nil
}
