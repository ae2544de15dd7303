package vault

import "path"

// Node is one element of the file tree: either a directory owning an ordered
// child list, or a leaf wrapping an entity. Never both, never neither; the
// two constructors are the only way to build one.
type Node struct {
	Dir      string // vault-relative directory path, directories only
	Leaf     Entity // nil for directories
	Children []*Node
}

// NewDirNode creates a directory node for the given vault-relative path.
func NewDirNode(dir string) *Node {
	return &Node{Dir: dir}
}

// NewLeafNode wraps an entity as a tree leaf.
func NewLeafNode(e Entity) *Node {
	return &Node{Leaf: e}
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.Leaf == nil }

// Base returns the display name: the directory base name, or the leaf title.
func (n *Node) Base() string {
	if n.IsDir() {
		return path.Base(n.Dir)
	}
	return n.Leaf.Title()
}

// FindDir locates the first directory node whose base name equals name, in a
// depth-first search. Used to root scoped feeds at a named subtree.
func (n *Node) FindDir(name string) *Node {
	if n.IsDir() && path.Base(n.Dir) == name {
		return n
	}
	for _, c := range n.Children {
		if !c.IsDir() {
			continue
		}
		if found := c.FindDir(name); found != nil {
			return found
		}
	}
	return nil
}

// PageKeys collects the titlepaths of every page in the subtree.
func (n *Node) PageKeys() []string {
	var keys []string
	n.walkPages(&keys)
	return keys
}

func (n *Node) walkPages(keys *[]string) {
	if !n.IsDir() {
		if _, ok := n.Leaf.(*Page); ok {
			*keys = append(*keys, n.Leaf.Key())
		}
		return
	}
	for _, c := range n.Children {
		c.walkPages(keys)
	}
}
