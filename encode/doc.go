// Package encode writes generic values as Tony, YAML or JSON text.
//
// # Usage
//
//	v := value.FromKeyVals([]value.KeyVal{
//	    {Key: "name", Val: value.FromString("hero")},
//	    {Key: "hp", Val: value.FromInt(100)},
//	})
//	err := encode.Encode(v, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
// Tony and YAML are written in block style unless EncodeBrackets is given;
// JSON always uses brackets. EncodeWire writes everything on one line.
//
// Values without a JSON counterpart are tagged in the formats which have
// tags. A float32 is written as !f32 1.5 in Tony, and bytes as !bytes with
// base64 text in Tony or !!binary in YAML. JSON gets plain numbers and
// base64 strings.
//
// # Related Packages
//
//   - github.com/uyjulian/psbfile/value - the values encoded
//   - github.com/uyjulian/psbfile/format - format names
package encode
