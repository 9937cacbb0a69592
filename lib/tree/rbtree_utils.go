package tree

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xcatalog/lib/infra"
)

type RBTreeErr string

const (
	ErrBSTOrderViolation RBTreeErr = "rbtree bst order violation"
	ErrParentLinkBroken  RBTreeErr = "rbtree parent link broken"
	ErrRootColorRed      RBTreeErr = "rbtree root is red"
	ErrRedViolation      RBTreeErr = "rbtree red violation"
	ErrBlackViolation    RBTreeErr = "rbtree black violation"
	ErrNilLeafViolation  RBTreeErr = "rbtree nil leaf violation"
	ErrLenMismatch       RBTreeErr = "rbtree len mismatch"
)

func (err RBTreeErr) Error() string {
	return string(err)
}

func isRed[V any](node RBNode[V]) bool {
	return node != nil && node.Color() == Red
}

// rbtree rule validation utilities.

// Inorder traversal to validate the keys are strictly ascending
// and the children link back to their parent.
func BSTOrderValidate[V any](tree RBTree[V]) error {
	root := tree.Root()
	if root == nil {
		if tree.Len() != 0 {
			return infra.WrapErrorStackWithMessage(ErrLenMismatch, fmt.Sprintf("empty root with len %d", tree.Len()))
		}
		return nil
	}
	if root.Parent() != nil {
		return infra.WrapErrorStackWithMessage(ErrParentLinkBroken, "root with parent")
	}

	var (
		prev  RBNode[V]
		count int64
	)
	stack := make([]RBNode[V], 0, 64)
	defer func() {
		clear(stack)
	}()

	for aux := root; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if l := aux.Left(); l != nil && l.Parent() != aux {
			return infra.WrapErrorStackWithMessage(ErrParentLinkBroken, fmt.Sprintf("left child of key %q", aux.Key()))
		}
		if r := aux.Right(); r != nil && r.Parent() != aux {
			return infra.WrapErrorStackWithMessage(ErrParentLinkBroken, fmt.Sprintf("right child of key %q", aux.Key()))
		}
		if prev != nil && prev.Key() >= aux.Key() {
			return infra.WrapErrorStackWithMessage(ErrBSTOrderViolation, fmt.Sprintf("key %q after %q", aux.Key(), prev.Key()))
		}
		prev = aux
		count++
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	if count != tree.Len() {
		return infra.WrapErrorStackWithMessage(ErrLenMismatch, fmt.Sprintf("%d nodes with len %d", count, tree.Len()))
	}
	return nil
}

func RootColorValidate[V any](tree RBTree[V]) error {
	if root := tree.Root(); root != nil && root.Color() != Black {
		return infra.WrapErrorStackWithMessage(ErrRootColorRed, fmt.Sprintf("root key %q", root.Key()))
	}
	return nil
}

func RedViolationValidate[V any](tree RBTree[V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}

	stack := make([]RBNode[V], 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, root)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		l, r := aux.Left(), aux.Right()
		if isRed(aux) && (isRed(l) || isRed(r)) {
			return infra.WrapErrorStackWithMessage(ErrRedViolation, fmt.Sprintf("red key %q with red child", aux.Key()))
		}
		if l != nil {
			stack = append(stack, l)
		}
		if r != nil {
			stack = append(stack, r)
		}
	}
	return nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            <16>

Every path from a node to its descendant NIL leaves has the same
black height. The NIL leaf counts as one.
*/
func BlackViolationValidate[V any](tree RBTree[V]) error {
	if _, err := blackHeight[V](tree.Root()); err != nil {
		return err
	}
	return nil
}

func blackHeight[V any](node RBNode[V]) (int, error) {
	if node == nil {
		return 1, nil
	}
	lh, err := blackHeight[V](node.Left())
	if err != nil {
		return 0, err
	}
	rh, err := blackHeight[V](node.Right())
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, infra.WrapErrorStackWithMessage(
			ErrBlackViolation,
			fmt.Sprintf("key %q left black height %d, right black height %d", node.Key(), lh, rh),
		)
	}
	if node.Color() == Black {
		lh++
	}
	return lh, nil
}

// NilLeafValidate checks the shared nil leaf stays black and self linked.
// Only the trees built by NewRBTree carry a nil leaf.
func NilLeafValidate[V any](tree RBTree[V]) error {
	t, ok := tree.(*rbTree[V])
	if !ok {
		return nil
	}
	leaf := t.nilLeaf
	if leaf == nil || !leaf.nilLeaf {
		return infra.WrapErrorStackWithMessage(ErrNilLeafViolation, "missing nil leaf")
	}
	if leaf.color != Black {
		return infra.WrapErrorStackWithMessage(ErrNilLeafViolation, "nil leaf is red")
	}
	if leaf.left != leaf || leaf.right != leaf || leaf.parent != leaf {
		return infra.WrapErrorStackWithMessage(ErrNilLeafViolation, "nil leaf links to a real node")
	}
	return nil
}

// Validate runs all rule validations and combines the violations.
func Validate[V any](tree RBTree[V]) error {
	return multierr.Combine(
		BSTOrderValidate[V](tree),
		RootColorValidate[V](tree),
		RedViolationValidate[V](tree),
		BlackViolationValidate[V](tree),
		NilLeafValidate[V](tree),
	)
}
