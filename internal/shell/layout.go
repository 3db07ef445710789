package shell

// Region names a self-contained part of the page that is implemented by
// the client bundle.
type Region string

// Regions mounted by the root shell.
const (
	RegionNavbar   Region = "Navbar"
	RegionTodoForm Region = "TodoForm"
	RegionTodoList Region = "TodoList"
)

// NodeKind is the kind of a layout node.
type NodeKind string

// Layout node kinds.
const (
	KindStack     NodeKind = "stack"
	KindContainer NodeKind = "container"
	KindRegion    NodeKind = "region"
)

// Node is one element of the page layout tree.
type Node struct {
	Kind       NodeKind
	Region     Region // set for KindRegion only
	FullHeight bool
	Children   []*Node
}

// Layout returns the root shell tree: a full-height vertical stack holding
// the navigation bar and a centered container with the form above the list.
// A fresh tree is returned on every call.
func Layout() *Node {
	return &Node{
		Kind:       KindStack,
		FullHeight: true,
		Children: []*Node{
			region(RegionNavbar),
			{
				Kind: KindContainer,
				Children: []*Node{
					region(RegionTodoForm),
					region(RegionTodoList),
				},
			},
		},
	}
}

func region(r Region) *Node {
	return &Node{Kind: KindRegion, Region: r}
}

// Regions returns the regions under n in document order.
func (n *Node) Regions() []Region {
	var out []Region
	n.walk(func(c *Node) {
		if c.Kind == KindRegion {
			out = append(out, c.Region)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}
