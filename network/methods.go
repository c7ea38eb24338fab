package network

import "github.com/katalvlaran/lvlath-sfm/cellib"

// CreateNode allocates a new gate with the given library handle and fanin
// list, returning its id. isPI must be true with a nil fanin list and
// cellib.InvalidHandle to create a primary input; non-PI
// gates must reference handle and fanins already validated by the caller
// against the library (Net does not itself consult cellib.Library).
//
// Complexity: O(len(fanins)) to register the new gate as a fanout of each
// fanin and to compute its level.
func (n *Net) CreateNode(handle cellib.Handle, fanins []GateID, isPI bool) (GateID, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !isPI && handle == cellib.InvalidHandle {
		return InvalidGateID, ErrNilHandle
	}

	id := n.nextID
	n.nextID++

	maxLevel := -1
	fis := append([]GateID(nil), fanins...)
	for _, fi := range fis {
		if fi == id {
			return InvalidGateID, ErrSelfFanin
		}
		rec, ok := n.gates[fi]
		if !ok || rec.destroyed {
			return InvalidGateID, ErrFaninNotFound
		}
		if rec.level > maxLevel {
			maxLevel = rec.level
		}
	}

	rec := &gateRecord{
		id:     id,
		handle: handle,
		isPI:   isPI,
		fanins: fis,
		level:  maxLevel + 1,
	}
	n.gates[id] = rec

	for _, fi := range fis {
		n.gates[fi].fanouts = append(n.gates[fi].fanouts, id)
	}

	if isPI {
		rec.level = 0
		n.pis = append(n.pis, id)
	}

	return id, nil
}

// MarkPO records id as a primary output for iteration convenience; it
// neither changes id's fanout count nor prevents id from being replaced or
// destroyed like any other gate once it is no longer the network's output.
func (n *Net) MarkPO(id GateID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, err := n.mustLive(id); err != nil {
		return err
	}
	n.pos = append(n.pos, id)

	return nil
}

// PIs returns the primary input ids in creation order. The returned slice
// is a copy; mutating it does not affect the Net.
func (n *Net) PIs() []GateID {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return append([]GateID(nil), n.pis...)
}

// POs returns the primary output ids in MarkPO order.
func (n *Net) POs() []GateID {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return append([]GateID(nil), n.pos...)
}

// AllGates returns every live gate id in ascending creation order. Because
// CreateNode requires every fanin to already exist, ascending id order is
// always a valid topological order — callers needing a level-ordered walk
// (package simulate's propagation, package window's TFI merge) can rely on
// this without a separate topological sort.
//
// Complexity: O(V); the returned slice is a fresh copy.
func (n *Net) AllGates() []GateID {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]GateID, 0, len(n.gates))
	for id := GateID(0); id < n.nextID; id++ {
		rec, ok := n.gates[id]
		if ok && !rec.destroyed {
			out = append(out, rec.id)
		}
	}

	return out
}

// Fanins returns id's ordered fanin list (a copy).
func (n *Net) Fanins(id GateID) ([]GateID, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return nil, err
	}

	return append([]GateID(nil), rec.fanins...), nil
}

// Fanouts returns id's fanout multiset (a copy): a consumer that takes id
// as more than one of its own fanins appears that many times.
func (n *Net) Fanouts(id GateID) ([]GateID, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return nil, err
	}

	return append([]GateID(nil), rec.fanouts...), nil
}

// FanoutCount is len(Fanouts(id)) without the copy, the quantity package
// rewrite's MFFC ref-counting reads most often.
func (n *Net) FanoutCount(id GateID) (int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return 0, err
	}

	return len(rec.fanouts), nil
}

// IsPI reports whether id was created as a primary input.
func (n *Net) IsPI(id GateID) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return false, err
	}

	return rec.isPI, nil
}

// Handle returns id's library cell handle (meaningless for a PI).
func (n *Net) Handle(id GateID) (cellib.Handle, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return cellib.InvalidHandle, err
	}

	return rec.handle, nil
}

// Level returns id's topological level (0 for every PI, max(fanin
// levels)+1 for every interior gate).
func (n *Net) Level(id GateID) (int, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return 0, err
	}

	return rec.level, nil
}

// IncTravID advances the network-wide traversal counter and returns the new
// value, for a caller about to start a fresh "visited" pass (spec.md §4.1's
// window-extraction marking, without a full per-gate reset).
//
// Complexity: O(1).
func (n *Net) IncTravID() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.travID++

	return n.travID
}

// IsTravCurrent reports whether id was stamped with the network's current
// traversal id.
func (n *Net) IsTravCurrent(id GateID) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return false, err
	}

	return rec.travID == n.travID, nil
}

// SetTravCurrent stamps id with the network's current traversal id,
// marking it visited for the caller's in-progress pass.
func (n *Net) SetTravCurrent(id GateID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return err
	}
	rec.travID = n.travID

	return nil
}

// mustLive returns id's record, or an error if id is unknown or destroyed.
// Caller must hold n.mu (read or write lock).
func (n *Net) mustLive(id GateID) (*gateRecord, error) {
	rec, ok := n.gates[id]
	if !ok {
		return nil, ErrGateNotFound
	}
	if rec.destroyed {
		return nil, ErrGateDestroyed
	}

	return rec, nil
}
