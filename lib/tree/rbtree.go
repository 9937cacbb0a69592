package tree

type rbNode[V any] struct {
	parent  *rbNode[V]
	left    *rbNode[V]
	right   *rbNode[V]
	key     string
	val     V
	color   RBColor
	nilLeaf bool
}

func (node *rbNode[V]) Key() string {
	return node.key
}

func (node *rbNode[V]) Val() V {
	return node.val
}

func (node *rbNode[V]) Color() RBColor {
	return node.color
}

func (node *rbNode[V]) Left() RBNode[V] {
	if node == nil || node.left.isNilLeaf() {
		return nil
	}
	return node.left
}

func (node *rbNode[V]) Right() RBNode[V] {
	if node == nil || node.right.isNilLeaf() {
		return nil
	}
	return node.right
}

func (node *rbNode[V]) Parent() RBNode[V] {
	if node == nil || node.parent.isNilLeaf() {
		return nil
	}
	return node.parent
}

// A released node has nil links, it is treated as a nil leaf too.
func (node *rbNode[V]) isNilLeaf() bool {
	return node == nil || node.nilLeaf
}

func (node *rbNode[V]) isRed() bool {
	return node.color == Red
}

func (node *rbNode[V]) isBlack() bool {
	return node.color == Black
}

func (node *rbNode[V]) Direction() RBDirection {
	if node.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil leaf node without direction")
	}

	if node.parent.isNilLeaf() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[V]) child(dir RBDirection) *rbNode[V] {
	switch dir {
	case Left:
		return node.left
	case Right:
		return node.right
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] child without left or right direction")
	}
}

func (node *rbNode[V]) setChild(dir RBDirection, child *rbNode[V]) {
	switch dir {
	case Left:
		node.left = child
	case Right:
		node.right = child
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] set child without left or right direction")
	}
}

func (node *rbNode[V]) minimum() *rbNode[V] {
	aux := node
	for ; !aux.left.isNilLeaf(); aux = aux.left {
	}
	return aux
}

type rbTree[V any] struct {
	root    *rbNode[V]
	// The nil leaf is shared by every node of this tree. Its color is
	// always black and its children always point to itself. The parent
	// link is borrowed by the remove rebalance and reset afterwards.
	nilLeaf *rbNode[V]
	count   int64
}

func (tree *rbTree[V]) Len() int64 {
	return tree.count
}

func (tree *rbTree[V]) Root() RBNode[V] {
	if tree.root.isNilLeaf() {
		return nil
	}
	return tree.root
}

// References:
// Introduction to Algorithms (CLRS), chapter 13.
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.

// relink makes the parent of old point to replace instead.
// The replace parent link is left to the caller.
func (tree *rbTree[V]) relink(old, replace *rbNode[V]) {
	switch dir := old.Direction(); dir {
	case Root:
		tree.root = replace
	case Left, Right:
		old.parent.setChild(dir, replace)
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to relink")
	}
}

/*
		 |                         |
		 X                         S
		/ \     rotate(X, Left)   / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc

		 |                         |
		 X                         S
		/ \     rotate(X, Right)  / \
	   S   R    ============>    Sd  X
	  / \                           / \
	Sd   Sc                        Sc  R
*/
func (tree *rbTree[V]) rotate(x *rbNode[V], dir RBDirection) {
	if x.isNilLeaf() || (dir != Left && dir != Right) {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] rotate a nil leaf node or without direction")
	}
	y := x.child(dir.opposite())
	if y.isNilLeaf() {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] rotate node x without the child to promote")
	}

	sc := y.child(dir)
	x.setChild(dir.opposite(), sc)
	if !sc.isNilLeaf() {
		sc.parent = x
	}
	tree.relink(x, y)
	y.parent = x.parent
	y.setChild(dir, x)
	x.parent = y
}

func (tree *rbTree[V]) leftRotate(x *rbNode[V]) {
	tree.rotate(x, Left)
}

func (tree *rbTree[V]) rightRotate(x *rbNode[V]) {
	tree.rotate(x, Right)
}

// transplant replaces the subtree rooted at u by the subtree rooted at v.
// v may be the nil leaf, whose parent link is set as well.
func (tree *rbTree[V]) transplant(u, v *rbNode[V]) {
	tree.relink(u, v)
	v.parent = u.parent
}

func (tree *rbTree[V]) Insert(key string, val V) {
	var x, y = tree.root, tree.nilLeaf
	for !x.isNilLeaf() {
		y = x
		if /* equal */ key == x.key {
			x.val = val
			return
		} else /* less */ if key < x.key {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := &rbNode[V]{
		key:    key,
		val:    val,
		color:  Red,
		parent: y,
		left:   tree.nilLeaf,
		right:  tree.nilLeaf,
	}
	if /* empty */ y.isNilLeaf() {
		tree.root = z
	} else if key < y.key {
		y.left = z
	} else {
		y.right = z
	}
	tree.count++
	tree.insertRebalance(z)
}

type insertCase uint8

const (
	insertBalanced insertCase = iota
	insertUncleRed
	insertInnerChild
	insertOuterChild
)

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: The parent P and the uncle U are red, grandpa G is black.
Repaint P and U into black and G into red. G may be red-violation
with its parent now, continue with G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im2: The parent P is red but the uncle U is black, X is the inner
child (opposite direction to P). Rotate P to turn into im3 with
P as the current node.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im3: The parent P is red, the uncle U is black, X is the outer child.
Repaint P into black and G into red, rotate G. P is black and the
loop ends.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]
*/
func (tree *rbTree[V]) insertCaseOf(x *rbNode[V]) insertCase {
	p := x.parent
	if p.isNilLeaf() || p.isBlack() {
		return insertBalanced
	}
	pDir := p.Direction()
	if /* im1 */ p.parent.child(pDir.opposite()).isRed() {
		return insertUncleRed
	}
	if /* im2 */ x.Direction() != pDir {
		return insertInnerChild
	}
	return insertOuterChild
}

func (tree *rbTree[V]) insertRebalance(x *rbNode[V]) {
	for {
		switch tree.insertCaseOf(x) {
		case insertUncleRed:
			p := x.parent
			gp := p.parent
			p.color = Black
			gp.child(p.Direction().opposite()).color = Black
			gp.color = Red
			x = gp
		case insertInnerChild:
			p := x.parent
			tree.rotate(p, p.Direction())
			x = p
		case insertOuterChild:
			p := x.parent
			gp := p.parent
			p.color = Black
			gp.color = Red
			tree.rotate(gp, p.Direction().opposite())
		case insertBalanced:
			tree.root.color = Black
			return
		}
	}
}

func (tree *rbTree[V]) search(key string) *rbNode[V] {
	aux := tree.root
	for !aux.isNilLeaf() {
		if key == aux.key {
			return aux
		} else if key < aux.key {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return nil
}

func (tree *rbTree[V]) Search(key string) (RBNode[V], bool) {
	if x := tree.search(key); x != nil {
		return x, true
	}
	return nil, false
}

func (tree *rbTree[V]) Delete(key string) bool {
	z := tree.search(key)
	if z == nil {
		return false
	}
	tree.removeNode(z)
	tree.count--
	return true
}

/*
r1: Node Z has at most one child (or nil leaf) C.
C takes the place of Z. Z's color is the removed color.

r2: Node Z has both children. Its succ S (minimum of the right subtree)
has no left child. S is spliced out from its place by its right child,
then S takes the place of Z with Z's children and color. S's color is
the removed color. S is relinked rather than copied, so other nodes
keep their identity and Z is discarded.

	  |                    |
	  Z                    S
	 / \                  / \
	L   R   =========>   L   R
	   / \                  / \
	  S  ..                X  ..
	   \
	    X

X is the node (or nil leaf) that now sits where the removed color was.
If the removed color is black, X carries an extra black.
*/
func (tree *rbTree[V]) removeNode(z *rbNode[V]) {
	var x *rbNode[V]
	y, removedColor := z, z.color
	if /* r1 */ z.left.isNilLeaf() {
		x = z.right
		tree.transplant(z, z.right)
	} else if /* r1 */ z.right.isNilLeaf() {
		x = z.left
		tree.transplant(z, z.left)
	} else /* r2 */ {
		y = z.right.minimum()
		removedColor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			tree.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		tree.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if removedColor == Black {
		tree.removeRebalance(x)
	}
	tree.nilLeaf.parent = tree.nilLeaf

	// Unlink node
	z.parent, z.left, z.right = nil, nil, nil
}

type removeCase uint8

const (
	removeBalanced removeCase = iota
	removeSiblingRed
	removeNephewsBlack
	removeNearNephewRed
	removeFarNephewRed
)

// side works for the nil leaf as well, which has no direction.
func (tree *rbTree[V]) side(x *rbNode[V]) RBDirection {
	if x == x.parent.left {
		return Left
	}
	return Right
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the near nephew (same direction as X), Sd is the far one.

rm1: The sibling S is red, so P, Sc and Sd are black.
Repaint S into black, P into red, rotate P to X's direction.
X gets a black sibling, continue with rm2-rm4.

	  [P]                   [S]
	  / \    rotate(P)      / \
	[X] <S>  ==========>  <P> [Sd]
	    / \               / \
	 [Sc] [Sd]          [X] [Sc]

rm2: The sibling S and both nephews are black.
Repaint S into red, the extra black moves up to P.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: The sibling S is black, Sc is red and Sd is black.
Repaint Sc into black, S into red, rotate S away from X.
Continue with rm4.

	  {P}                  {P}
	  / \    rotate(S)     / \
	[X] [S]  =========>  [X] [Sc]
	    / \                    \
	  <Sc> [Sd]                <S>
	                             \
	                             [Sd]

rm4: The sibling S is black and Sd is red.
S takes P's color, P and Sd are repainted into black, rotate P to
X's direction. The extra black is absorbed, the loop ends.

	  {P}                   {S}
	  / \    rotate(P)      / \
	[X] [S]  ==========>  [P] [Sd]
	    / \               / \
	 {Sc} <Sd>          [X] {Sc}
*/
func (tree *rbTree[V]) removeCaseOf(x *rbNode[V]) removeCase {
	if x == tree.root || x.isRed() {
		return removeBalanced
	}
	dir := tree.side(x)
	sibling := x.parent.child(dir.opposite())
	if /* rm1 */ sibling.isRed() {
		return removeSiblingRed
	}
	if /* rm4 */ sibling.child(dir.opposite()).isRed() {
		return removeFarNephewRed
	}
	if /* rm3 */ sibling.child(dir).isRed() {
		return removeNearNephewRed
	}
	return removeNephewsBlack
}

func (tree *rbTree[V]) removeRebalance(x *rbNode[V]) {
	for {
		var (
			dir     RBDirection
			sibling *rbNode[V]
		)
		c := tree.removeCaseOf(x)
		if c != removeBalanced {
			dir = tree.side(x)
			sibling = x.parent.child(dir.opposite())
		}
		switch c {
		case removeSiblingRed:
			sibling.color = Black
			x.parent.color = Red
			tree.rotate(x.parent, dir)
		case removeNephewsBlack:
			sibling.color = Red
			x = x.parent
		case removeNearNephewRed:
			sibling.child(dir).color = Black
			sibling.color = Red
			tree.rotate(sibling, dir.opposite())
		case removeFarNephewRed:
			sibling.color = x.parent.color
			x.parent.color = Black
			sibling.child(dir.opposite()).color = Black
			tree.rotate(x.parent, dir)
			x = tree.root
		case removeBalanced:
			x.color = Black
			return
		}
	}
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[V]) Foreach(action func(idx int64, color RBColor, key string, val V)) {
	aux := tree.root
	if aux.isNilLeaf() || action == nil {
		return
	}

	stack := make([]*rbNode[V], 0, 64)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		action(idx, aux.color, aux.key, aux.val)
		idx++
		stack = stack[:size-1]
		for aux = aux.right; !aux.isNilLeaf(); aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func (tree *rbTree[V]) Inorder() []RBEntry[V] {
	entries := make([]RBEntry[V], 0, tree.count)
	tree.Foreach(func(idx int64, color RBColor, key string, val V) {
		entries = append(entries, RBEntry[V]{
			Key:   key,
			Val:   val,
			Color: color,
		})
	})
	return entries
}

// Release drops all nodes top-down and leaves an empty tree.
func (tree *rbTree[V]) Release() {
	aux := tree.root
	tree.root = tree.nilLeaf
	tree.count = 0
	if aux.isNilLeaf() {
		return
	}

	stack := make([]*rbNode[V], 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if !aux.left.isNilLeaf() {
			stack = append(stack, aux.left)
		}
		if !aux.right.isNilLeaf() {
			stack = append(stack, aux.right)
		}
		aux.parent, aux.left, aux.right = nil, nil, nil
	}
}

func newNilLeaf[V any]() *rbNode[V] {
	leaf := &rbNode[V]{
		color:   Black,
		nilLeaf: true,
	}
	leaf.parent, leaf.left, leaf.right = leaf, leaf, leaf
	return leaf
}

func NewRBTree[V any]() RBTree[V] {
	return newRBTree[V]()
}

func newRBTree[V any]() *rbTree[V] {
	leaf := newNilLeaf[V]()
	return &rbTree[V]{
		root:    leaf,
		nilLeaf: leaf,
	}
}
