package network

import "github.com/katalvlaran/lvlath-sfm/cellib"

// Replace redirects every fanout of oldID to consume newID instead,
// leaving oldID itself still present (with its own fanouts now empty) so
// the caller (package rewrite) can decide whether and how to Destroy the
// rest of oldID's now-dangling MFFC. Net deliberately does not walk or
// destroy the old cone itself: ref/deref bookkeeping and MFFC structure
// belong entirely to package rewrite, never to Net (see doc.go).
//
// Replace recomputes levels for every gate transitively downstream of the
// rewired consumers (the only levels that can have changed), via
// recomputeLevels.
//
// Complexity: O(V+E) over the downstream cone in the worst case.
func (n *Net) Replace(oldID, newID GateID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	oldRec, err := n.mustLive(oldID)
	if err != nil {
		return err
	}
	newRec, err := n.mustLive(newID)
	if err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}

	consumers := oldRec.fanouts
	oldRec.fanouts = nil

	// consumers is itself a multiset (a consumer reading oldID through two
	// of its own fanin pins appears twice), so walk each distinct consumer
	// once and count its actual oldID occurrences directly off its fanin
	// list rather than trusting how many times that id shows up here —
	// appending to newRec.fanouts once per real edge, not once per
	// consumer, keeps the fanout multiset's edge count accurate for
	// Destroy's ErrGateHasFanouts check and rewrite's ref/deref
	// accounting.
	seen := make(map[GateID]bool, len(consumers))
	for _, consumerID := range consumers {
		if seen[consumerID] {
			continue
		}
		seen[consumerID] = true

		consumer, ok := n.gates[consumerID]
		if !ok || consumer.destroyed {
			continue
		}
		count := 0
		for i, fi := range consumer.fanins {
			if fi == oldID {
				consumer.fanins[i] = newID
				count++
			}
		}
		for i := 0; i < count; i++ {
			newRec.fanouts = append(newRec.fanouts, consumerID)
		}
	}

	n.recomputeLevels(consumers)

	return nil
}

// Destroy removes id from the network. It fails with ErrGateHasFanouts if
// id is still referenced by a live consumer, matching spec.md §4.6's
// "deref to zero before destroy" discipline: package rewrite must deref
// (and Destroy) a gate's own fanins only after the gate itself has no
// remaining fanouts.
//
// Complexity: O(len(fanins)) to remove id from each fanin's fanout
// multiset.
func (n *Net) Destroy(id GateID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return err
	}
	if len(rec.fanouts) > 0 {
		return ErrGateHasFanouts
	}

	for _, fi := range rec.fanins {
		fiRec, ok := n.gates[fi]
		if !ok {
			continue
		}
		fiRec.fanouts = removeOneGateID(fiRec.fanouts, id)
	}

	rec.destroyed = true
	rec.fanins = nil

	return nil
}

// removeOneGateID removes the first occurrence of target from the
// multiset s, preserving multiplicity of every other id (so AND(a,a)
// destroyed once correctly decrements a's fanout count by exactly one,
// not two).
func removeOneGateID(s []GateID, target GateID) []GateID {
	for i, v := range s {
		if v == target {
			return append(s[:i], s[i+1:]...)
		}
	}

	return s
}

// recomputeLevels recomputes level for every gate reachable downstream
// from roots, processed in true dependency order rather than hop-count
// from roots: a plain FIFO walk visits a gate as soon as it is first
// reached, which is wrong whenever the downstream cone reconverges
// through paths of different length (one root reaches a common gate in
// one hop while another reaches it in two), since the gate would then be
// finalized from a fanin that has not been revisited yet. Level cannot be
// used as the walk's own ordering key either, the way
// timing.Engine.UpdateTiming orders its arrival-time relaxation by the
// (already fixed) network level — here level is exactly the quantity
// being recomputed, so a stale pre-edit value is not a trustworthy key.
//
// Instead this walks the reachable closure twice: once (by fanout, same
// traversal as before) to find every gate that might need recomputing and
// count how many of its own fanins lie inside that closure, and once
// more, Kahn's-algorithm style, releasing a gate onto the work queue only
// once every in-closure fanin it depends on has already been finalized.
// A gate whose fanins are all outside the closure (already correct,
// untouched by this Replace/Rehandle) is released immediately.
//
// It does not recompute level for a gate that reads a newly dangling fanin
// chain left by Replace: such gates are unreachable from roots in the new
// graph and so keep whatever level they already had, which is harmless
// since Destroy (called by rewrite afterward) removes them before any
// further query can observe a stale value.
//
// Complexity: O(V+E) over the downstream cone.
func (n *Net) recomputeLevels(roots []GateID) {
	closure := make(map[GateID]bool)
	stack := append([]GateID(nil), roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if closure[id] {
			continue
		}
		rec, ok := n.gates[id]
		if !ok || rec.destroyed {
			continue
		}
		closure[id] = true
		stack = append(stack, rec.fanouts...)
	}

	pending := make(map[GateID]int, len(closure))
	for id := range closure {
		rec := n.gates[id]
		for _, fi := range rec.fanins {
			if closure[fi] {
				pending[id]++
			}
		}
	}

	queue := make([]GateID, 0, len(closure))
	for id := range closure {
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		rec := n.gates[id]
		if !rec.isPI {
			maxLevel := -1
			for _, fi := range rec.fanins {
				fiRec, ok := n.gates[fi]
				if !ok || fiRec.destroyed {
					continue
				}
				if fiRec.level > maxLevel {
					maxLevel = fiRec.level
				}
			}
			rec.level = maxLevel + 1
		}

		for _, fo := range rec.fanouts {
			if !closure[fo] {
				continue
			}
			pending[fo]--
			if pending[fo] == 0 {
				queue = append(queue, fo)
			}
		}
	}
}


// Rehandle replaces id's library handle and fanin list in place, without
// changing id's identity or touching id's own fanouts — package rewrite's
// primitive for absorbing an inverter into a consumer (spec.md §4.6's
// "flip gate polarities via findComplInputGate if it is an inverter and
// all fanouts tolerate it"): the consumer keeps its id and its own
// fanouts, but now reads a different upstream gate through a
// complemented-input variant of its own cell, with no new gate created.
//
// Complexity: O(len(fanins)) to update fanout bookkeeping, plus O(V+E) to
// recompute levels downstream of id (id's own level can only change if
// the new fanins sit at a different level than the old ones).
func (n *Net) Rehandle(id GateID, handle cellib.Handle, fanins []GateID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	rec, err := n.mustLive(id)
	if err != nil {
		return err
	}
	if rec.isPI {
		return ErrRehandlePI
	}
	if handle == cellib.InvalidHandle {
		return ErrNilHandle
	}

	newFis := append([]GateID(nil), fanins...)
	maxLevel := -1
	for _, fi := range newFis {
		if fi == id {
			return ErrSelfFanin
		}
		fiRec, ok := n.gates[fi]
		if !ok || fiRec.destroyed {
			return ErrFaninNotFound
		}
		if fiRec.level > maxLevel {
			maxLevel = fiRec.level
		}
	}

	for _, fi := range rec.fanins {
		if fiRec, ok := n.gates[fi]; ok {
			fiRec.fanouts = removeOneGateID(fiRec.fanouts, id)
		}
	}

	rec.handle = handle
	rec.fanins = newFis
	rec.level = maxLevel + 1

	for _, fi := range newFis {
		n.gates[fi].fanouts = append(n.gates[fi].fanouts, id)
	}

	n.recomputeLevels(append([]GateID{id}, rec.fanouts...))

	return nil
}
