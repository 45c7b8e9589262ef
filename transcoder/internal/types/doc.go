// Package types defines the compiled type structures used by the transcoder.
//
// CompiledType holds the shape of a Go type as the wire format sees it:
// its Kind, element and field shapes, and enum variant tables. By compiling
// type metadata once, the transcoder avoids repeated reflection on the hot
// path.
//
// # Key Types
//
//   - CompiledType: cached shape metadata
//   - Kind: shape discriminator (primitive, string, option, seq, enum, etc.)
//
// This package is internal to the transcoder.
package types
