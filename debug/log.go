package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/value"
)

// Logf writes a formatted message to stderr. Nodes and values among args
// are rendered in a readable form.
func Logf(msg string, args ...any) {
	logf(os.Stderr, msg, args...)
}

func logf(w io.Writer, msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *value.Value:
			d, err := x.MarshalJSON()
			if err != nil {
				args[i] = fmt.Sprintf("[raw *value.Value] %v", x)
				continue
			}
			args[i] = string(d)
		case *node.Node:
			if x == nil {
				args[i] = "<nil node>"
				continue
			}
			args[i] = fmt.Sprintf("%s(keys=%d refs=%d ints=%d)", x.Type, len(x.Keys), len(x.Refs), len(x.Ints))
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(w, msg, args...)
}
