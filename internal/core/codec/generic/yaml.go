package generic

import (
	"fmt"
	"reflect"

	"github.com/zeusync/floatbench/internal/core/codec"
	"github.com/zeusync/floatbench/pkg/encoding"
	"gopkg.in/yaml.v3"
)

const YAMLName = "yaml"

var _ encoding.StructuredCodec = YAML{}

// YAML writes each value as a tagged envelope:
//
//	- type: physics.Vector3
//	  value: {x: 1, y: 2, z: 3}
type YAML struct{}

type yamlEnvelopeOut struct {
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
}

type yamlEnvelopeIn struct {
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

func (YAML) Name() string { return YAMLName }

func (YAML) Serialize(values []any) ([]byte, error) {
	envelopes := make([]yamlEnvelopeOut, len(values))
	for i, v := range values {
		name, ok := lookupName(reflect.TypeOf(v))
		if !ok {
			return nil, codec.SerializationFailed(YAMLName,
				fmt.Errorf("value %d of type %T: %w", i, v, codec.ErrUnknownType))
		}
		envelopes[i] = yamlEnvelopeOut{Type: name, Value: v}
	}

	data, err := yaml.Marshal(envelopes)
	if err != nil {
		return nil, codec.SerializationFailed(YAMLName, err)
	}
	return data, nil
}

func (YAML) Deserialize(data []byte) ([]any, error) {
	var envelopes []yamlEnvelopeIn
	if err := yaml.Unmarshal(data, &envelopes); err != nil {
		return nil, codec.DeserializationFailed(YAMLName, err)
	}

	values := make([]any, len(envelopes))
	for i := range envelopes {
		t, ok := lookupType(envelopes[i].Type)
		if !ok {
			return nil, codec.DeserializationFailed(YAMLName,
				fmt.Errorf("value %d tagged %q: %w", i, envelopes[i].Type, codec.ErrUnknownType))
		}
		ptr := reflect.New(t)
		if err := envelopes[i].Value.Decode(ptr.Interface()); err != nil {
			return nil, codec.DeserializationFailed(YAMLName, fmt.Errorf("value %d: %w", i, err))
		}
		values[i] = ptr.Elem().Interface()
	}
	return values, nil
}
