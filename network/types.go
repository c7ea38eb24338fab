package network

import (
	"errors"
	"sync"

	"github.com/katalvlaran/lvlath-sfm/cellib"
)

// Sentinel errors for network operations.
var (
	// ErrGateNotFound indicates an operation referenced a non-existent gate.
	ErrGateNotFound = errors.New("network: gate not found")

	// ErrGateDestroyed indicates an operation referenced a gate already destroyed.
	ErrGateDestroyed = errors.New("network: gate already destroyed")

	// ErrGateHasFanouts indicates Destroy was called on a gate still referenced.
	ErrGateHasFanouts = errors.New("network: cannot destroy a gate with live fanouts")

	// ErrNilHandle indicates CreateNode or Rehandle received cellib.InvalidHandle for a non-PI gate.
	ErrNilHandle = errors.New("network: nil library handle")

	// ErrSelfFanin indicates a gate was asked to take itself as a fanin (would create a cycle).
	ErrSelfFanin = errors.New("network: gate cannot be its own fanin")

	// ErrFaninNotFound indicates CreateNode/Rehandle referenced a fanin id absent from the network.
	ErrFaninNotFound = errors.New("network: fanin gate not found")

	// ErrRehandlePI indicates Rehandle was called on a primary input, which
	// has no library handle or fanin list to replace.
	ErrRehandlePI = errors.New("network: cannot rehandle a primary input")
)

// GateID stably identifies a gate within a Net. Ids are never reused:
// Destroy removes a gate from the live set but never recycles its id, so a
// stale GateID captured before a mutation is safe to compare for identity
// even after the gate it named is gone.
type GateID int32

// InvalidGateID is the sentinel used where spec.md's "gate=sentinel(-1)"
// marks a primary input / divisor leaf: a window entry with no library
// gate behind it.
const InvalidGateID GateID = -1

// gateRecord is the internal representation of one network gate.
//
// fanouts is a multiset: a gate used twice as fanin of the same consumer
// (e.g. AND(a, a)) appears twice, so len(fanouts) is exactly the classic
// "fanout count" ref-count the area-accounting code in package rewrite
// reads, without Net itself knowing anything about MFFC or ref/deref.
type gateRecord struct {
	id        GateID
	handle    cellib.Handle // cellib.InvalidHandle for a primary input (isPI marks it)
	isPI      bool
	fanins    []GateID
	fanouts   []GateID
	level     int
	travID    uint64
	destroyed bool
}

// Net is the mapped-network container. The zero value is not usable;
// construct with NewNet.
type Net struct {
	mu     sync.RWMutex
	gates  map[GateID]*gateRecord
	nextID GateID
	travID uint64

	// pis and pos record insertion-order primary input / output ids, purely
	// as a convenience for callers (e.g. driver loops iterating "all interior
	// gates"); Net places no semantic weight on membership beyond that.
	pis []GateID
	pos []GateID
}

// NewNet creates an empty mapped network.
//
// Complexity: O(1).
func NewNet() *Net {
	return &Net{
		gates: make(map[GateID]*gateRecord),
	}
}
