package queryir

import (
	"fmt"
	"strconv"

	"github.com/xlab/treeprint"
)

// Tree renders e as an indented tree of kinds and payloads, one node per
// line. It is meant for debugging output, not for re-parsing.
func Tree(e Expr) string {
	if e == nil {
		return ""
	}
	root := treeprint.New()
	addTreeNode(root, e)
	return root.String()
}

func addTreeNode(parent treeprint.Tree, e Expr) {
	label := e.Kind().String()
	if p := describePayload(e); p != "" {
		label += " " + p
	}
	children := e.Children()
	if len(children) == 0 {
		parent.AddNode(label)
		return
	}
	branch := parent.AddBranch(label)
	for _, c := range children {
		addTreeNode(branch, c)
	}
}

// describePayload returns a short human readable form of a node's payload.
func describePayload(e Expr) string {
	switch n := e.(type) {
	case *ConstInteger:
		return strconv.FormatInt(n.Value(), 10)
	case *ConstDecimal:
		return strconv.FormatFloat(n.Value(), 'g', -1, 64)
	case *ConstString:
		return strconv.Quote(n.Value())
	case *ConstBoolean:
		return strconv.FormatBool(n.Value())
	case *ConstDate:
		return n.Value().String()
	case *ConstTime:
		return n.Value().String()
	case *ConstTimestamp:
		return n.Value().String()
	case *ConstTimeWithTimezone:
		return n.Value().String()
	case *ConstTimestampWithTimezone:
		return n.Value().String()
	case *VarRef:
		return n.Variable().String()
	case *BindVariable:
		return fmt.Sprintf("#%d", n.ParameterIndex())
	case *PropertyAccess:
		return n.Variable().String() + "." + n.PropertyName()
	case *Cast:
		return "AS " + n.TargetTypeName()
	}
	return ""
}
