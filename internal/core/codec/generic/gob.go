package generic

import (
	"bytes"
	"encoding/gob"

	"github.com/zeusync/floatbench/internal/core/codec"
	"github.com/zeusync/floatbench/pkg/encoding"
)

const GobName = "gob"

var _ encoding.StructuredCodec = Gob{}

// Gob serializes through encoding/gob. A fresh encoder and buffer are built
// per call, so every stream carries its own type descriptors.
type Gob struct{}

func (Gob) Name() string { return GobName }

func (Gob) Serialize(values []any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(values); err != nil {
		return nil, codec.SerializationFailed(GobName, err)
	}
	return buf.Bytes(), nil
}

func (Gob) Deserialize(data []byte) ([]any, error) {
	var values []any
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		return nil, codec.DeserializationFailed(GobName, err)
	}
	return values, nil
}
