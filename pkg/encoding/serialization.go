package encoding

// StructuredCodec is a general-purpose, self-describing serializer for a
// heterogeneous sequence of values. Implementations carry type information in
// the stream so Deserialize can rebuild the concrete values without a schema.
type StructuredCodec interface {
	Name() string
	Serialize(values []any) ([]byte, error)
	Deserialize(data []byte) ([]any, error)
}
