package report

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"
)

// WriteLocation writes the manifest path found by locate-project, either as
// the document {"root": "<path>"} or, when plain is set, as a bare line.
func WriteLocation(out io.Writer, manifestPath string, plain bool) error {
	if plain {
		_, err := fmt.Fprintln(out, manifestPath)
		return err
	}

	doc, err := sjson.SetBytes([]byte(`{}`), "root", manifestPath)
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}
	doc = append(doc, '\n')
	_, err = out.Write(doc)
	return err
}
