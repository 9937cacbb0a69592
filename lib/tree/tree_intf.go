package tree

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "BLACK"
	case Red:
		return "RED"
	default:
	}
	return "UNKNOWN"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

func (d RBDirection) opposite() RBDirection {
	return -d
}

func (d RBDirection) String() string {
	switch d {
	case Left:
		return "Left"
	case Root:
		return "Root"
	case Right:
		return "Right"
	default:
	}
	return "Unknown"
}

// RBNode is a read-only view of a stored entry.
// Left, Right and Parent return nil where the tree links to its nil leaf.
type RBNode[V any] interface {
	Key() string
	Val() V
	Color() RBColor
	Left() RBNode[V]
	Right() RBNode[V]
	Parent() RBNode[V]
}

// RBEntry is one element of an in-order snapshot.
type RBEntry[V any] struct {
	Key   string
	Val   V
	Color RBColor
}

// RBTree is an ordered string keyed map. It is not safe for
// concurrent use, callers have to serialize the access per tree.
type RBTree[V any] interface {
	Len() int64
	Root() RBNode[V]
	// Insert replaces the value in place if the key exists.
	Insert(key string, val V)
	Delete(key string) bool
	Search(key string) (RBNode[V], bool)
	// Inorder returns a snapshot in ascending key order.
	Inorder() []RBEntry[V]
	Foreach(action func(idx int64, color RBColor, key string, val V))
	Release()
}
