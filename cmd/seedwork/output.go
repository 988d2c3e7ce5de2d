package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/seedwork"
	"github.com/aretw0/seedwork/pkg/adapters/fixture"
)

// writeOutput renders v as indented JSON or as YAML with the same keys.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		generic, err := toGeneric(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// toGeneric converts v through its JSON form so YAML output honors json tags and marshalers.
func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeResult(w io.Writer, format string, result seedwork.SearchResult[*seedwork.Category]) error {
	switch format {
	case "table":
		return writeTable(w, result)
	case "csv":
		return writeCSV(w, result.Items())
	}
	return writeOutput(w, format, result)
}

func writeTable(w io.Writer, result seedwork.SearchResult[*seedwork.Category]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACTIVE\tCREATED AT")
	for _, c := range result.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", c.ID(), c.Name(), c.IsActive(), c.CreatedAt().Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d of %d (%d total)\n", result.CurrentPage(), result.LastPage(), result.Total())
	return err
}

func writeCSV(w io.Writer, items []*seedwork.Category) error {
	records := make([]fixture.Record, 0, len(items))
	for _, c := range items {
		rec, err := c.Serialize()
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	data, err := fixture.NewCSVSerializer(false).Serialize(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
