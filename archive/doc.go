// Package archive defines the reader side of a PSB archive: the Reader
// contract the converter consumes, loading archive files into memory, and
// decoders turning archive bytes into Readers.
//
// Byte level parsing of the binary PSB layout is not done here; a binary
// decoder is plugged in with Register. The package ships Memory, a Reader
// over an in-memory node table, and a decoder for node tables written as
// YAML or JSON fixtures, registered for ".yaml", ".yml" and ".json".
//
// # Errors
//
// Failures to open, seek or read a file are *IOError values matching ErrIO.
// Structural problems match node.ErrFormat.
package archive
