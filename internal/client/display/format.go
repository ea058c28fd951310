package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON prints formatted JSON
func PrettyPrintJSON(w io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Fprintln(w, string(data))
}

// PrettyBytes re-indents a JSON payload, returning it unchanged when it is not JSON
func PrettyBytes(data []byte) string {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(data)
	}
	return string(pretty)
}
