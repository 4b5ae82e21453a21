package engine

// node is the reference counter's bookkeeping record for one tracked value
// (a compound or a Buffer — see isTracked).
type node struct {
	stackRefs int
	// parents maps each distinct compound that holds this node as a child to
	// the multiplicity of that edge (spec section 3: "the counter records one
	// object reference edge C -> K with a multiplicity").
	parents map[StackItem]int
}

// ReferenceCounter tracks stack-references and object-references for every
// compound/Buffer value reachable through a single ExecutionEngine, and
// reclaims unreachable cycles with a Tarjan strongly-connected-component
// sweep (spec section 4.4). There is no analogue of this in the teacher
// repo — Starlark values are reclaimed by the host Go garbage collector —
// so this component is grounded directly in spec section 4.4's prose and in
// the classic Tarjan SCC algorithm (CLRS-style index/lowlink/on-stack
// bookkeeping), expressed in the teacher's plain-struct, no-framework style.
type ReferenceCounter struct {
	nodes        map[StackItem]*node
	zeroReferred map[StackItem]bool
	total        int
}

// NewReferenceCounter returns an empty counter.
func NewReferenceCounter() *ReferenceCounter {
	return &ReferenceCounter{
		nodes:        make(map[StackItem]*node),
		zeroReferred: make(map[StackItem]bool),
	}
}

func (rc *ReferenceCounter) ensure(v StackItem) *node {
	n, ok := rc.nodes[v]
	if !ok {
		n = &node{parents: make(map[StackItem]int)}
		rc.nodes[v] = n
	}
	return n
}

// TotalReferences returns the counter's running total_references value.
func (rc *ReferenceCounter) TotalReferences() int { return rc.total }

// StackReferences returns the number of stack/slot occurrences currently
// recorded for v (0 for untracked or unknown values).
func (rc *ReferenceCounter) StackReferences(v StackItem) int {
	if n, ok := rc.nodes[v]; ok {
		return n.stackRefs
	}
	return 0
}

// AddStackReference records n additional occurrences of v on an evaluation
// stack or in a slot.
func (rc *ReferenceCounter) AddStackReference(v StackItem, n int) {
	if !isTracked(v) || n == 0 {
		return
	}
	nd := rc.ensure(v)
	nd.stackRefs += n
	rc.total += n
}

// RemoveStackReference removes n occurrences of v from an evaluation stack
// or slot. When stackRefs reaches zero, v becomes a candidate for the next
// sweep.
func (rc *ReferenceCounter) RemoveStackReference(v StackItem, n int) {
	if !isTracked(v) || n == 0 {
		return
	}
	nd := rc.ensure(v)
	nd.stackRefs -= n
	rc.total -= n
	if nd.stackRefs <= 0 {
		rc.zeroReferred[v] = true
	}
}

// AddReference records one object-reference edge parent -> child (parent
// holds child as a direct element/value).
func (rc *ReferenceCounter) AddReference(child, parent StackItem) {
	if !isTracked(child) {
		return
	}
	nd := rc.ensure(child)
	nd.parents[parent]++
	rc.total++
}

// RemoveReference removes one object-reference edge parent -> child.
func (rc *ReferenceCounter) RemoveReference(child, parent StackItem) {
	if !isTracked(child) {
		return
	}
	nd := rc.ensure(child)
	if nd.parents[parent] > 0 {
		nd.parents[parent]--
		if nd.parents[parent] == 0 {
			delete(nd.parents, parent)
		}
		rc.total--
	}
	if nd.stackRefs <= 0 {
		rc.zeroReferred[child] = true
	}
}

// CheckZeroReferred performs the sweep described in spec section 4.4: if any
// value became zero-referred since the last sweep, recompute the SCCs of
// the tracked-node graph, determine per-component reachability from a
// "stack root" (a node with stack_references > 0), and collect every
// component with no such root and no inbound edge from a reachable
// component. It returns the updated total_references.
func (rc *ReferenceCounter) CheckZeroReferred() int {
	if len(rc.zeroReferred) == 0 {
		return rc.total
	}
	rc.zeroReferred = make(map[StackItem]bool)

	comps := tarjanSCC(rc.nodes)
	alive := rc.markAlive(comps)

	for _, comp := range comps {
		if alive[comp.id] {
			continue
		}
		rc.collect(comp.members)
	}
	return rc.total
}

// markAlive runs a multi-source reachability pass over the component
// condensation graph, seeded by every component containing a node with
// stack_references > 0, following parent -> child edges (a component is
// alive if it is a seed, or if any component with an edge INTO it is
// alive).
func (rc *ReferenceCounter) markAlive(comps []scc) map[int]bool {
	memberComp := make(map[StackItem]int, len(rc.nodes))
	for _, c := range comps {
		for _, m := range c.members {
			memberComp[m] = c.id
		}
	}

	alive := make(map[int]bool, len(comps))
	var queue []int
	for _, c := range comps {
		for _, m := range c.members {
			if rc.nodes[m].stackRefs > 0 {
				if !alive[c.id] {
					alive[c.id] = true
					queue = append(queue, c.id)
				}
				break
			}
		}
	}

	byID := make(map[int]scc, len(comps))
	for _, c := range comps {
		byID[c.id] = c
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, m := range byID[id].members {
			for _, child := range children(m) {
				if !isTracked(child) {
					continue
				}
				cid, ok := memberComp[child]
				if !ok || alive[cid] {
					continue
				}
				alive[cid] = true
				queue = append(queue, cid)
			}
		}
	}
	return alive
}

// collect reclaims a dead component: for every member, its outgoing edges
// (to still-live children outside the component, or to dead siblings — both
// cases must be unwound) are dropped from total_references and from the
// children's parent maps, and the node itself is removed from the counter.
func (rc *ReferenceCounter) collect(members []StackItem) {
	dead := make(map[StackItem]bool, len(members))
	for _, m := range members {
		dead[m] = true
	}
	for _, m := range members {
		for _, child := range children(m) {
			if !isTracked(child) {
				continue
			}
			cn, ok := rc.nodes[child]
			if !ok {
				continue
			}
			if mult, ok := cn.parents[m]; ok {
				rc.total -= mult
				delete(cn.parents, m)
			}
		}
	}
	for _, m := range members {
		delete(rc.nodes, m)
	}
}
