// Package psbfile loads PSB archives and converts them to generic values.
//
// A File is converted once, when it is opened, and keeps the result:
//
//	f, err := psbfile.Open("scenario.psb")
//	if err != nil {
//	    return err
//	}
//	name, _ := f.Root().Get("name")
//
// Archives are decoded by the decoder registered for their file name suffix
// with archive.Register. YAML and JSON node tables, as used in tests, are
// decoded out of the box.
//
// Setting PSB_DEBUG_DUMP=true dumps each archive's node tree to stderr as it
// is loaded.
//
// # Related Packages
//
//   - github.com/uyjulian/psbfile/convert - the conversion itself
//   - github.com/uyjulian/psbfile/dump - diagnostic node dumps
//   - github.com/uyjulian/psbfile/archive - readers and decoders
package psbfile
