// import-appliances converts a consumables CSV export into appliances.json.
//
// Each CSV row carries one appliance model and one consumable. Rows sharing
// a (model, brand, category) combination are merged into a single appliance
// entry with all of its consumables. The output is the input format of
// load-catalog.
//
// Usage: go run ./scripts/import-appliances --input consumables.csv
//
// Flags:
//
//	-input/-i   Path to the CSV export (required)
//	-output/-o  Path for the appliances JSON (default: appliances.json)
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

func main() {
	var input, output string
	flag.StringVar(&input, "input", "", "Path to the CSV export (required)")
	flag.StringVar(&input, "i", "", "Shorthand for -input")
	flag.StringVar(&output, "output", "appliances.json", "Path for the appliances JSON")
	flag.StringVar(&output, "o", "appliances.json", "Shorthand for -output")
	flag.Parse()

	if input == "" {
		fmt.Fprintln(os.Stderr, "-input is required.")
		os.Exit(1)
	}

	file, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", input, err)
		os.Exit(1)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells read as empty
	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse %s: %v\n", input, err)
		os.Exit(1)
	}

	appliances, err := convertRows(records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(appliances, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode appliances: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if err := os.WriteFile(output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d appliances with consumables to %s\n", len(appliances), output)
}
