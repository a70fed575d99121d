package cli

import (
	"io"

	"github.com/praskarnam/DSynth/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// When --json is active, ONLY the JSON encoding of data is written to w.
// textFn is called only in text mode.
func printResult(w io.Writer, data any, textFn func()) error {
	if jsonOutput {
		return output.JSON(w, data)
	}
	textFn()
	return nil
}
