// File: parser/node.go
package parser

import (
	"fmt"

	"github.com/dangerclosesec/iona/lang/expr"
	"github.com/dangerclosesec/iona/lang/grammar"
)

// NodeType is the kind of construct a node holds
type NodeType int

const (
	FunctionDeclaration NodeType = iota
	PropertyDeclaration
	PermissionsDeclaration
	ContractDeclaration
	VariableAssignment
	Expression
	ImportStatement
	ReturnStatement
	CloseScope
	Comment
	Empty
)

var nodeTypeNames = [...]string{
	FunctionDeclaration:    "FunctionDeclaration",
	PropertyDeclaration:    "PropertyDeclaration",
	PermissionsDeclaration: "PermissionsDeclaration",
	ContractDeclaration:    "ContractDeclaration",
	VariableAssignment:     "VariableAssignment",
	Expression:             "Expression",
	ImportStatement:        "ImportStatement",
	ReturnStatement:        "ReturnStatement",
	CloseScope:             "CloseScope",
	Comment:                "Comment",
	Empty:                  "Empty",
}

func (t NodeType) String() string {
	if int(t) >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// Node represents one parsed line of source
type Node struct {
	Type    NodeType
	Grammar grammar.Grammar
	// SourceLine is the zero-based line of the node's leading token
	SourceLine int
	// ParentLine is the line of the enclosing function declaration, nil at the top level.
	// It is set by ComputeScopes.
	ParentLine *int
	// Value is the parsed right-hand side for expression, assignment and return nodes. It is
	// set by ResolveExpressions.
	Value expr.Object
}

// Parent returns the enclosing function's line and whether there is one
func (n *Node) Parent() (int, bool) {
	if n.ParentLine == nil {
		return 0, false
	}
	return *n.ParentLine, true
}

func (n Node) String() string {
	if n.ParentLine != nil {
		return fmt.Sprintf("%s@%d (in %d)", n.Type, n.SourceLine, *n.ParentLine)
	}
	return fmt.Sprintf("%s@%d", n.Type, n.SourceLine)
}
