/*
Package waml reads and writes WAML, a data notation with attributes,
tuples and inline markup. The API mirrors encoding/json.

Parsing is incremental: every parser is a continuation that consumes as
much input as is available and suspends when it runs out, so a Decoder
feeds a document chunk by chunk without buffering it whole. Writers work
the same way in reverse and suspend when their output is full.

1. Untyped values

Parse builds the value model of package value: bool, int64, *big.Int,
float64, string, []any, *value.Object, value.Tuple, value.Markup,
value.Unit and value.Attributed for annotated values.

	v, err := waml.ParseString(`@version(2) {name: "inventory", ports: [80, 443]}`)
	if err != nil {
		// handle error
	}

2. Typed values

Unmarshal and Marshal resolve a format for the Go type through a
format.Registry. Scalars, slices, arrays, string-keyed maps, pointers,
time.Time, time.Duration, netip addresses, uuid.UUID and []byte are
built in. Struct types are bound by hand:

	type Endpoint struct {
		Name string
		Port uint16
	}

	format.Default.Register(format.Struct(format.Default,
		format.Bind("name", func(e *Endpoint) string { return e.Name }, func(e *Endpoint, v string) { e.Name = v }),
		format.Bind("port", func(e *Endpoint) uint16 { return e.Port }, func(e *Endpoint, v uint16) { e.Port = v }),
	))

	var e Endpoint
	if err := waml.Unmarshal([]byte("{name: api, port: 8080}"), &e); err != nil {
		// handle error
	}

	out, err := waml.Marshal(e, waml.Indent(2))

Layout and parsing are configured with functional options such as
Indent, Compact, TextBlocks, Exprs and MaxDepth.
*/
package waml
