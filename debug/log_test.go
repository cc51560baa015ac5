package debug

import (
	"bytes"
	"testing"

	"github.com/uyjulian/psbfile/node"
	"github.com/uyjulian/psbfile/value"
)

func TestLogf(t *testing.T) {
	var nilNode *node.Node
	tests := []struct {
		name string
		arg  any
		want string
	}{
		{"node", node.FromRefs(1, 2), "x collection(keys=0 refs=2 ints=0)\n"},
		{"nil node", nilNode, "x <nil node>\n"},
		{"value", value.FromInts(1, 2), "x [1,2]\n"},
		{"string", "plain", "x plain\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logf(buf, "x %v\n", tt.arg)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}
