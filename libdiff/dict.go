package libdiff

import (
	"github.com/uyjulian/psbfile/value"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffDict diffs the key sequences of from and to, then recurses with df
// on the values of keys present in both.
func DiffDict(from, to *value.Value, df DiffFunc) *value.Value {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapFieldsTo(fieldMap, runeMap, from)
	toRunes := mapFieldsTo(fieldMap, runeMap, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	res := value.NewDict(0)
	deleted := map[string]int{}
	inserted := map[string]int{}
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for _, r := range diff.Text {
				f := runeMap[r]
				deleted[f] = fi
				res.Put(f, MakeDiff(from.Values[fi], nil))
				fi++
			}
		case diffpatch.DiffEqual:
			for range diff.Text {
				if d := df(from.Values[fi], to.Values[ti]); d != nil {
					res.Put(to.Fields[ti], d)
				}
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for _, r := range diff.Text {
				f := runeMap[r]
				inserted[f] = ti
				res.Put(f, MakeDiff(nil, to.Values[ti]))
				ti++
			}
		}
	}
	// a key both deleted and inserted has moved
	for f, fi := range deleted {
		ti, ok := inserted[f]
		if !ok {
			continue
		}
		d := df(from.Values[fi], to.Values[ti])
		if d == nil {
			d = value.FromKeyVals([]value.KeyVal{{Key: MovedKey, Val: value.FromInt(int64(ti))}})
		}
		res = replaceEntries(res, f, d)
	}
	if res.Len() == 0 {
		return nil
	}
	return res
}

// replaceEntries keeps the first entry for f, setting it to d, and drops
// the others.
func replaceEntries(v *value.Value, f string, d *value.Value) *value.Value {
	res := value.NewDict(v.Len())
	done := false
	for i, g := range v.Fields {
		if g != f {
			res.Put(g, v.Values[i])
			continue
		}
		if !done {
			res.Put(f, d)
			done = true
		}
	}
	return res
}

func mapFieldsTo(m map[string]rune, im map[rune]string, v *value.Value) []rune {
	rs := make([]rune, len(v.Fields))
	for i, f := range v.Fields {
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			// keep clear of surrogates, which do not survive the trip
			// through diff text
			if r >= 0xd800 {
				r += 0x800
			}
			m[f] = r
			im[r] = f
		}
		rs[i] = r
	}
	return rs
}
