package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONResponse is the standard JSON output format
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

// OutputJSON prints data in JSON format
func OutputJSON(data any, err error) {
	response := JSONResponse{
		Success: err == nil,
		Data:    data,
	}
	if err != nil {
		response.Error = err.Error()
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if encodeErr := encoder.Encode(response); encodeErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", encodeErr)
		os.Exit(1)
	}
}

// OutputRawJSON pretty-prints an already encoded JSON payload
func OutputRawJSON(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		// not re-encodable, print as-is
		fmt.Println(string(raw))
		return
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(buf)
}

// PrintSuccess prints a success message with checkmark
func PrintSuccess(message string) {
	fmt.Printf("✓ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "⚠ %s\n", message)
}
