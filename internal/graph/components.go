package graph

import "sort"

// Connected-component analysis on the undirected projection of the
// transfer graph. Implemented as weighted union-find with path
// compression: Find and Union are O(α(n)) amortized, and the whole
// partition costs O(n + m) for n wallets and m transfers.
//
// The resulting components are the wallet clusters that scope all
// pairwise relationship scoring; wallets in different components have
// no path between them in either direction.

// DisjointSet is a weighted union-find over the integer node arena.
type DisjointSet struct {
	parent []int
	rank   []int
	size   []int
}

// NewDisjointSet creates n singleton sets.
func NewDisjointSet(n int) *DisjointSet {
	d := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
	}
	for i := range d.parent {
		d.parent[i] = i
		d.size[i] = 1
	}
	return d
}

// Find returns the root representative of x, compressing the path.
func (d *DisjointSet) Find(x int) int {
	if d.parent[x] != x {
		d.parent[x] = d.Find(d.parent[x])
	}
	return d.parent[x]
}

// Union merges the sets containing a and b, attaching the lower-rank tree
// under the higher. Returns true if a merge actually occurred.
func (d *DisjointSet) Union(a, b int) bool {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return false
	}

	if d.rank[ra] < d.rank[rb] {
		d.parent[ra] = rb
		d.size[rb] += d.size[ra]
	} else if d.rank[ra] > d.rank[rb] {
		d.parent[rb] = ra
		d.size[ra] += d.size[rb]
	} else {
		d.parent[rb] = ra
		d.size[ra] += d.size[rb]
		d.rank[ra]++
	}
	return true
}

// SizeOf returns the size of the set containing x.
func (d *DisjointSet) SizeOf(x int) int {
	return d.size[d.Find(x)]
}

// ComponentNodes partitions the graph's nodes into undirected connected
// components. Members are ascending by node id; components are ordered by
// their smallest member.
func ComponentNodes(g *Graph) [][]int {
	n := g.NumNodes()
	d := NewDisjointSet(n)
	for _, e := range g.edges {
		d.Union(e.from, e.to)
	}

	byRoot := make(map[int][]int)
	for v := 0; v < n; v++ {
		root := d.Find(v)
		byRoot[root] = append(byRoot[root], v)
	}

	comps := make([][]int, 0, len(byRoot))
	for _, members := range byRoot {
		comps = append(comps, members)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return comps
}

// Components returns the wallet clusters: every wallet appearing in at
// least one transfer belongs to exactly one cluster. Cluster members are
// sorted lexicographically and clusters are ordered by first member.
func Components(g *Graph) [][]string {
	nodeComps := ComponentNodes(g)
	clusters := make([][]string, 0, len(nodeComps))
	for _, members := range nodeComps {
		cluster := make([]string, 0, len(members))
		for _, v := range members {
			cluster = append(cluster, g.Wallet(v))
		}
		sort.Strings(cluster)
		clusters = append(clusters, cluster)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })
	return clusters
}
