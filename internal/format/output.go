package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write writes strict JSON output for CLI commands, one document per line
// unless pretty-printing is requested. Keeping the output strict JSON makes
// every subcommand pipeable into jq and friends.
func Write(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
