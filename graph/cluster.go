package graph

// Cluster is one centroid graph plus its members. The centroid is always
// itself a member; NewCluster seeds the member list with it. Member order
// follows insertion order and carries no meaning beyond iteration.
type Cluster struct {
	centroid *Graph
	members  []*Graph
}

// NewCluster creates a cluster with the given centroid as its sole member.
func NewCluster(centroid *Graph) *Cluster {
	return &Cluster{
		centroid: centroid,
		members:  []*Graph{centroid},
	}
}

// Centroid returns the representative graph of the cluster.
func (c *Cluster) Centroid() *Graph { return c.centroid }

// Members returns the member graphs, centroid included. Callers must
// treat the slice as read-only.
func (c *Cluster) Members() []*Graph { return c.members }

// Add appends a member graph.
func (c *Cluster) Add(g *Graph) {
	c.members = append(c.members, g)
}

// Size returns the number of members, centroid included.
func (c *Cluster) Size() int { return len(c.members) }

// Contains reports whether a graph with the given path is a member.
func (c *Cluster) Contains(path string) bool {
	for _, m := range c.members {
		if m.Path() == path {
			return true
		}
	}
	return false
}
