// Package schema renders compiled postcard shapes as WIT types.
//
// The wire format carries no type information, so both ends of a link must
// agree on shapes out of band. Describe turns a shape into a
// go.bytecodealliance.org/wit type tree that can be printed, diffed or
// checked into a repository next to the protocol:
//
//	Go shape           WIT
//	──────────────────────────────────────
//	struct             record
//	registered iface   variant
//	unit enum          enum
//	newtype            type alias
//	[]T, []byte        list<T>, list<u8>
//	*T                 option<T>
//	[N]T               tuple<T, ...>
//	unit, unit struct  tuple<>
//
// Go identifiers become kebab-case WIT names. Types with custom codecs and
// unregistered interfaces have no static shape and fail with Unsupported.
package schema
