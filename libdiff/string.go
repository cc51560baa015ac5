package libdiff

import (
	"strings"

	"github.com/uyjulian/psbfile/value"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffString returns a patch when from and to are mostly the same, and a
// replacement otherwise.
func DiffString(from, to *value.Value) *value.Value {
	diffCfg := diffpatch.New()
	doMultiLine := strings.Contains(from.String, "\n") && strings.Contains(to.String, "\n")
	diffs := diffCfg.DiffMain(from.String, to.String, doMultiLine)
	diffSize := 0
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			diffSize += len(diffs[i].Text)
		}
	}
	if diffSize == 0 {
		return nil
	}
	if diffSize > min(len(from.String), len(to.String))/2 {
		return MakeDiff(from, to)
	}
	patches := diffCfg.PatchMake(from.String, diffs)
	return value.FromKeyVals([]value.KeyVal{
		{Key: StringDiffKey, Val: value.FromString(diffCfg.PatchToText(patches))},
	})
}
