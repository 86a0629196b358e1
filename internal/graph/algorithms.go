package graph

// Explicit graph algorithms over the node arena. Each is a standalone
// function so it can be unit-tested against hand-built graphs:
//
//   - BoundedCycles: length-bounded DFS enumeration of directed simple cycles
//   - Distance: BFS shortest path length over directed edges
//   - StronglyConnected: Tarjan's SCC algorithm
//
// Cycle enumeration is combinatorial in dense graphs, which is why the
// circular-trading detector runs it per connected component and callers
// must keep the length bound small.

// BoundedCycles enumerates directed simple cycles whose node count lies in
// (2, maxLen], restricted to the given node set. Each cycle is reported
// exactly once, rotated so that its smallest node id comes first: a cycle
// is only discovered from its minimum node, and intermediate nodes are
// required to have a larger id.
func BoundedCycles(g *Graph, nodes []int, maxLen int) [][]int {
	if maxLen <= 2 {
		return nil
	}

	mask := make([]bool, g.NumNodes())
	for _, n := range nodes {
		mask[n] = true
	}

	var cycles [][]int
	onPath := make([]bool, g.NumNodes())
	path := make([]int, 0, maxLen)

	for _, start := range nodes {
		path = path[:0]
		path = append(path, start)
		onPath[start] = true

		var dfs func(u int)
		dfs = func(u int) {
			for _, v := range g.Successors(u) {
				if v == start {
					if len(path) > 2 {
						cycle := make([]int, len(path))
						copy(cycle, path)
						cycles = append(cycles, cycle)
					}
					continue
				}
				if v < start || !mask[v] || onPath[v] || len(path) >= maxLen {
					continue
				}
				onPath[v] = true
				path = append(path, v)
				dfs(v)
				path = path[:len(path)-1]
				onPath[v] = false
			}
		}
		dfs(start)
		onPath[start] = false
	}

	return cycles
}

// AllNodes returns every node id, ascending. Convenience for running an
// algorithm over the whole graph.
func AllNodes(g *Graph) []int {
	nodes := make([]int, g.NumNodes())
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

// Distance returns the directed BFS shortest-path length from one node to
// another, counted in edges. Returns 0 for from == to and -1 when no path
// exists.
func Distance(g *Graph, from, to int) int {
	if from == to {
		return 0
	}

	dist := make([]int, g.NumNodes())
	for i := range dist {
		dist[i] = -1
	}
	dist[from] = 0

	queue := []int{from}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Successors(u) {
			if dist[v] != -1 {
				continue
			}
			dist[v] = dist[u] + 1
			if v == to {
				return dist[v]
			}
			queue = append(queue, v)
		}
	}
	return -1
}

// StronglyConnected returns the strongly connected components of the
// directed graph using Tarjan's algorithm. Component members are in
// discovery order; singleton components are included.
func StronglyConnected(g *Graph) [][]int {
	n := g.NumNodes()
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var (
		stack      []int
		components [][]int
		counter    int
	)

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Successors(v) {
			if index[w] == -1 {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && index[w] < lowlink[v] {
				lowlink[v] = index[w]
			}
		}

		if lowlink[v] == index[v] {
			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			components = append(components, comp)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == -1 {
			strongconnect(v)
		}
	}
	return components
}
