package value

import (
	"errors"
	"testing"
)

func TestGetPath(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		{"name", FromString("hero")},
		{"tags", FromSlice([]*Value{FromString("a"), FromKeyVals([]KeyVal{{"x.y", FromInt(3)}})})},
		{"a b", FromKeyVals([]KeyVal{{"c", FromBool(true)}})},
	})
	tests := []struct {
		path string
		want *Value
	}{
		{"", v},
		{"$", v},
		{"$.name", FromString("hero")},
		{".name", FromString("hero")},
		{"$.tags[0]", FromString("a")},
		{`$.tags[1]["x.y"]`, FromInt(3)},
		{`$["a b"].c`, FromBool(true)},
		{"$.missing", nil},
		{"$.tags[9]", nil},
		{"$.name[0]", nil},
		{"$.missing.deeper", nil},
	}
	for _, tt := range tests {
		got, err := v.GetPath(tt.path)
		if err != nil {
			t.Errorf("%q: %v", tt.path, err)
			continue
		}
		if tt.want == nil {
			if got != nil {
				t.Errorf("%q: got %v, want nothing", tt.path, got)
			}
			continue
		}
		if !Equal(got, tt.want) {
			t.Errorf("%q: got %v", tt.path, got)
		}
	}
	for _, bad := range []string{"$..a", "$[", "$[x]", "$[-1]", `$["a`, "name"} {
		if _, err := v.GetPath(bad); !errors.Is(err, ErrPath) {
			t.Errorf("%q: got %v", bad, err)
		}
	}
}
