// Package output renders lolfetch data for the terminal: colored lines,
// display sections, the art/info layout and raw JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON writes a single item as formatted JSON.
func PrintJSON(w io.Writer, item any) error {
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
