// Package format resolves Go types to WAML formats.
//
// A Format pairs the grammar form that builds values of one Go type with
// the writer that serializes them. A Registry asks its providers, highest
// priority first, for the format of a type and caches the answer. Reads
// never lock: the provider list and the format cache are immutable
// snapshots replaced with compare-and-swap.
//
// The built-in providers cover booleans, sized integers and floats,
// strings, *big.Int, []byte (written as @blob "base64"), time.Time,
// time.Duration, netip.Addr, netip.AddrPort, uuid.UUID, slices, arrays,
// string-keyed maps, pointers and interfaces. Struct types are bound by
// hand with Struct and Bind.
package format
