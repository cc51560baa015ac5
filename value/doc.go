// Package value provides the generic value tree produced by converting a PSB
// archive.
//
// A Value is a tagged union: the Kind field says which payload field is in
// use. Numbers keep their width, so an Int, a Float32 and a Float64 holding
// the same magnitude are three different values. Dictionaries keep their
// entries in insertion order in the parallel Fields and Values slices.
//
//	v := value.FromKeyVals([]value.KeyVal{
//	    {Key: "name", Val: value.FromString("hero")},
//	    {Key: "hp", Val: value.FromInt(100)},
//	})
//	hp, _ := v.Get("hp")
//
// Values are not safe for concurrent mutation.
package value
