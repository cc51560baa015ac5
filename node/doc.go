// Package node defines the tagged nodes of a PSB archive as exposed by an
// archive reader, and classifies them.
//
// # Node Types
//
// A Node carries one of a closed set of tags:
//
//   - NullType: null
//   - BoolType: boolean
//   - ResourceType: an embedded binary blob
//   - NumberType: integer, float32 or float64, see NumberSubtype
//   - ArrayType: inline integers
//   - StringType: UTF-8 bytes
//   - ObjectsType: ordered keys, each with a Ref to its value
//   - CollectionType: ordered Refs
//
// GenericType is the tag the others derive from in the archive format. It
// never appears as a value; Classify rejects it like any unknown tag.
//
// # References
//
// ObjectsType and CollectionType nodes do not contain their children. They
// hold Refs, which an archive reader resolves into freshly materialized nodes
// on demand. ArrayType nodes hold their integers inline and are never resolved.
//
// # Errors
//
// The errors declared here are shared by the reader, resolver and converter
// layers. Callers match them with errors.Is.
package node
