// Package generic provides reflection-driven structured codecs used as a
// comparison baseline for the fixed-layout codec. Every value crossing these
// codecs carries a type tag, resolved through a process-wide registry.
package generic

import (
	"encoding/gob"
	"fmt"
	"reflect"
	"sync"

	"github.com/zeusync/floatbench/internal/core/codec"
	"github.com/zeusync/floatbench/internal/core/systems/physics"
	"github.com/zeusync/floatbench/pkg/encoding"
)

const (
	VectorTypeName     = "physics.Vector3"
	QuaternionTypeName = "physics.Quaternion"
)

type typeRegistry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

var registry = &typeRegistry{
	byName: make(map[string]reflect.Type),
	byType: make(map[reflect.Type]string),
}

func init() {
	MustRegister(VectorTypeName, physics.Vector3{})
	MustRegister(QuaternionTypeName, physics.Quaternion{})
}

// Register makes a concrete value type known to every codec in this package
// under a stable tag. Registering the same type under the same tag twice is a
// no-op; any other collision is an error.
func Register(name string, value any) error {
	t := reflect.TypeOf(value)
	if t == nil || name == "" {
		return fmt.Errorf("register %q: %w", name, codec.ErrUnknownType)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if existing, ok := registry.byName[name]; ok {
		if existing == t {
			return nil
		}
		return fmt.Errorf("register %q: tag already bound to %s", name, existing)
	}
	if existing, ok := registry.byType[t]; ok {
		return fmt.Errorf("register %s: type already bound to tag %q", t, existing)
	}

	gob.RegisterName(name, value)
	registry.byName[name] = t
	registry.byType[t] = name
	return nil
}

func MustRegister(name string, value any) {
	if err := Register(name, value); err != nil {
		panic(err)
	}
}

func lookupName(t reflect.Type) (string, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	name, ok := registry.byType[t]
	return name, ok
}

func lookupType(name string) (reflect.Type, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	t, ok := registry.byName[name]
	return t, ok
}

// Default is the codec used when none is configured.
var Default encoding.StructuredCodec = Gob{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (encoding.StructuredCodec, error) {
	switch name {
	case "", GobName:
		return Gob{}, nil
	case YAMLName:
		return YAML{}, nil
	default:
		return nil, codec.NewError(codec.ErrorCodeUnknownCodec, "", fmt.Sprintf("unknown codec %q", name), nil)
	}
}

// Names lists the codecs ByName understands.
func Names() []string {
	return []string{GobName, YAMLName}
}
