// Package format names the text formats converted values can be written in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f = format.FromName("out.json") // JSONFormat
//
// # Related Packages
//
//   - github.com/uyjulian/psbfile/encode - writes values in a Format
package format
