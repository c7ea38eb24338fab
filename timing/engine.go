package timing

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// Start performs a full forward arrival pass followed by a full backward
// required-time pass over the whole network and marks the engine running.
// Later UpdateTiming calls refresh only the cone downstream of their
// argument rather than repeating this full walk.
//
// Complexity: O(V+E), using network.Net.AllGates' ascending-id order as a
// topological order for the forward pass, and its reverse for the
// backward pass.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	gates := e.net.AllGates()
	e.arrival = make(map[network.GateID]int64, len(gates))
	e.required = make(map[network.GateID]int64, len(gates))

	for _, id := range gates {
		if err := e.computeArrival(id); err != nil {
			return err
		}
	}

	ntkDelay := e.maxArrival(gates)
	for i := len(gates) - 1; i >= 0; i-- {
		e.computeRequired(gates[i], ntkDelay)
	}

	e.running = true

	return nil
}

// Stop discards the cached arrival/required tables; subsequent queries
// return ErrNotStarted until Start runs again.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.running = false
	e.arrival = nil
	e.required = nil
}

// ReadNtkDelay returns the network's critical-path delay: the maximum
// arrival time over every gate with no live fanout (every primary output
// and every otherwise-dangling sink).
func (e *Engine) ReadNtkDelay() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return 0, ErrNotStarted
	}

	return e.maxArrival(e.net.AllGates()), nil
}

// ReadObjDelay returns id's cached arrival time.
func (e *Engine) ReadObjDelay(id network.GateID) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return 0, ErrNotStarted
	}
	a, ok := e.arrival[id]
	if !ok {
		return 0, ErrUnknownGate
	}

	return a, nil
}

// slack returns required[id] - arrival[id]: positive means headroom
// before id's path becomes part of the critical path.
func (e *Engine) slack(id network.GateID) (int64, error) {
	a, ok := e.arrival[id]
	if !ok {
		return 0, ErrUnknownGate
	}
	r, ok := e.required[id]
	if !ok {
		return 0, ErrUnknownGate
	}

	return r - a, nil
}

// computeArrival sets e.arrival[id] from the already-computed arrivals of
// id's fanins, 0 for a primary input.
func (e *Engine) computeArrival(id network.GateID) error {
	isPI, err := e.net.IsPI(id)
	if err != nil {
		return err
	}
	if isPI {
		e.arrival[id] = 0

		return nil
	}

	fanins, err := e.net.Fanins(id)
	if err != nil {
		return err
	}
	handle, err := e.net.Handle(id)
	if err != nil {
		return err
	}

	var best int64
	for pin, fi := range fanins {
		delay := e.pinDelay(handle, pin)
		if cand := e.arrival[fi] + delay; cand > best {
			best = cand
		}
	}
	e.arrival[id] = best

	return nil
}

// computeRequired sets e.required[id] to ntkDelay if id drives no live
// fanout (it is itself a critical-path endpoint), otherwise to the
// tightest bound imposed by id's consumers: the minimum, over every
// consumer c that reads id on pin p, of required[c] - pinDelay(c, p).
func (e *Engine) computeRequired(id network.GateID, ntkDelay int64) {
	fanouts, err := e.net.Fanouts(id)
	if err != nil || len(fanouts) == 0 {
		e.required[id] = ntkDelay

		return
	}

	best := ntkDelay
	first := true
	for _, c := range fanouts {
		handle, err := e.net.Handle(c)
		if err != nil {
			continue
		}
		cFanins, err := e.net.Fanins(c)
		if err != nil {
			continue
		}
		for pin, fi := range cFanins {
			if fi != id {
				continue
			}
			cand := e.required[c] - e.pinDelay(handle, pin)
			if first || cand < best {
				best = cand
				first = false
			}
		}
	}
	e.required[id] = best
}

// pinDelay returns the worst-case (rise/fall max) delay of pin of handle,
// falling back to the gate's overall DelayMax if the pin index is out of
// range (never expected on a well-formed network, but never a panic).
func (e *Engine) pinDelay(handle cellib.Handle, pin int) int64 {
	if pd, ok := e.lib.PinDelay(handle, pin); ok {
		if pd.Rise > pd.Fall {
			return pd.Rise
		}

		return pd.Fall
	}

	return e.lib.DelayMax(handle)
}

func (e *Engine) maxArrival(gates []network.GateID) int64 {
	var best int64
	for _, id := range gates {
		fanouts, err := e.net.Fanouts(id)
		if err != nil || len(fanouts) > 0 {
			continue
		}
		if a := e.arrival[id]; a > best {
			best = a
		}
	}

	return best
}
