// Package field defines the immutable field descriptor shared between the
// value-extraction layer and any execution unit participating in result
// merging.
//
// A Field carries the identity (name, id), the display format and the value
// kind of one configured field. Fields are created once at request setup,
// never mutated, and serialized verbatim (see MarshalBinary) so that partial
// results computed on different execution units can be merged by field
// identity. Field equality is load-bearing: downstream engines use fields as
// map keys.
package field
