package resynth

import "github.com/katalvlaran/lvlath-sfm/network"

// AreaForward implements spec.md §4.7's area-forward driver loop: walk
// net's gates in creation order and try area_opt_one at every interior
// gate. window.Extract's own ErrMFFCTooSmall already enforces "skip MFFC
// size < NMffcMin" (areaOptOne treats it as a Skip), so the loop body
// does not duplicate that check.
func (c *pivotContext) AreaForward() (*Stats, error) {
	for _, id := range c.net.AllGates() {
		if c.params.NNodesMax > 0 && c.stats.NodesChanged >= c.params.NNodesMax {
			break
		}

		isPI, err := c.net.IsPI(id)
		if err != nil {
			return c.stats, err
		}
		if isPI {
			continue
		}

		if _, _, err := c.areaOptOne(id); err != nil {
			return c.stats, err
		}
	}

	return c.stats, nil
}

// AreaReverse implements spec.md §4.7's area-reverse driver loop: seed a
// worklist with the gates driving primary outputs, and on each pop try
// area_opt_one; a resulting pre-existing node (id below the pre-run
// snapshot size) is re-enqueued since it may now admit a further
// improvement, and either way the (possibly new) node's original fanins
// are enqueued if not already processed.
func (c *pivotContext) AreaReverse() (*Stats, error) {
	snapshot := network.InvalidGateID
	for _, id := range c.net.AllGates() {
		if id > snapshot {
			snapshot = id
		}
	}

	processed := make(map[network.GateID]bool)
	var queue []network.GateID
	enqueue := func(id network.GateID) {
		if !processed[id] {
			queue = append(queue, id)
		}
	}

	for _, id := range c.net.POs() {
		enqueue(id)
	}

	for len(queue) > 0 {
		if c.params.NNodesMax > 0 && c.stats.NodesChanged >= c.params.NNodesMax {
			break
		}

		id := queue[0]
		queue = queue[1:]
		if processed[id] {
			continue
		}

		isPI, err := c.net.IsPI(id)
		if err != nil {
			return c.stats, err
		}
		if isPI {
			processed[id] = true

			continue
		}

		fanins, err := c.net.Fanins(id)
		if err != nil {
			// id may have been destroyed by an earlier pop's substitution.
			continue
		}

		newRoot, changed, err := c.areaOptOne(id)
		if err != nil {
			return c.stats, err
		}
		processed[id] = true

		if changed {
			if newRoot <= snapshot {
				enqueue(newRoot)
			}
			fanins, err = c.net.Fanins(newRoot)
			if err != nil {
				continue
			}
		}

		for _, fi := range fanins {
			enqueue(fi)
		}
	}

	return c.stats, nil
}

// DelayPriority implements spec.md §4.7's delay-priority driver loop: ask
// the timing engine for the top NTimeWin% of gates by slack, try
// delay_opt_one on each in order, apply at most one successful change per
// batch, then re-query. Stops when a batch comes back empty or NNodesMax
// changes have accumulated.
func (c *pivotContext) DelayPriority() (*Stats, error) {
	for {
		if c.params.NNodesMax > 0 && c.stats.NodesChanged >= c.params.NNodesMax {
			break
		}

		batch, err := c.timing.PriorityNodes(c.params.NTimeWin)
		if err != nil {
			return c.stats, err
		}
		if len(batch) == 0 {
			break
		}

		changedThisBatch := false
		for _, id := range batch {
			_, changed, err := c.delayOptOne(id)
			if err != nil {
				return c.stats, err
			}
			if changed {
				changedThisBatch = true

				break
			}
		}
		if !changedThisBatch {
			break
		}
	}

	return c.stats, nil
}
