package dxf

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/dxfview/pkg/drawing"
)

// Decoder accumulates the group codes of one entity record.
type Decoder interface {
	// Decode consumes one tag of the record. Tags with code 0 are never
	// passed in.
	Decode(t Tag) error
	// Entity returns the decoded entity, or nil to drop the record.
	Entity() drawing.Entity
}

// vertexSink is implemented by decoders whose record is followed by VERTEX
// records and a closing SEQEND.
type vertexSink interface {
	Decoder
	AddVertex(p drawing.Point)
}

// Factory creates a fresh decoder for one record.
type Factory func() Decoder

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register installs f as the decoder factory for the entity type name,
// replacing any previous one.
func Register(typeName string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[typeName] = f
}

// Types returns the registered entity type names in sorted order.
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

func newDecoder(typeName string) Decoder {
	registryMu.RLock()
	f, ok := registry[typeName]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return f()
}
