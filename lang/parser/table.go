// File: parser/table.go
package parser

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/grammar"
	"github.com/dangerclosesec/iona/lang/model"
)

// BuildArityTable captures the name and argument count of every declared function. It is
// the provisional snapshot expression parsing reads, so calls may refer to functions declared
// later in the file. The first declaration of a name wins.
func BuildArityTable(nodes []Node) model.ArityTable {
	arities := make(model.ArityTable)
	for _, n := range nodes {
		if n.Type != FunctionDeclaration {
			continue
		}
		fn, ok := n.Grammar.(*grammar.Function)
		if !ok {
			continue
		}
		if _, exists := arities[fn.Name]; !exists {
			arities[fn.Name] = len(fn.Arguments)
		}
	}
	return arities
}

// draft is a function whose closing brace has not been seen yet
type draft struct {
	name string
	data *model.FunctionData
}

// PopulateFunctionTable folds declarations and their annotation lines into the function
// table. ComputeScopes must have run first. The table is always returned, along with every
// problem found while building it.
func PopulateFunctionTable(nodes []Node) (*model.FunctionTable, []diag.Problem) {
	table := model.NewFunctionTable()
	var problems []diag.Problem
	var open *draft

	outside := func(n Node, what string) {
		problems = append(problems, *diag.Newf(diag.Error, n.SourceLine, 0, "%s declared outside of function", what).
			WithHint("move it into the body of the function it describes"))
	}

	for _, n := range nodes {
		switch g := n.Grammar.(type) {
		case *grammar.Function:
			// A nested declaration was already reported by the scope pass
			if open != nil {
				continue
			}
			open = &draft{
				name: g.Name,
				data: &model.FunctionData{
					Args:       append([]model.Variable(nil), g.Arguments...),
					ReturnType: g.ReturnType,
					Line:       n.SourceLine,
				},
			}

		case *grammar.Annotation:
			if open == nil {
				if g.Kind == grammar.PermissionList {
					outside(n, "permission list")
				} else {
					outside(n, "property list")
				}
				continue
			}
			open.data.Properties = append(open.data.Properties, g.Properties...)
			open.data.Permissions = append(open.data.Permissions, g.Permissions...)

		case *grammar.Contract:
			if open == nil {
				outside(n, "contract")
				continue
			}
			open.data.Contracts = append(open.data.Contracts, g.Contract(n.SourceLine))

		case *grammar.CloseScope:
			if open == nil {
				continue
			}
			if line, ok := n.Parent(); !ok || line != open.data.Line {
				continue
			}
			if !table.Add(open.name, open.data) {
				first, _ := table.Get(open.name)
				problems = append(problems, *diag.Newf(diag.Error, open.data.Line, 1, "function '%s' is already declared", open.name).
					WithHintf("the first declaration on line %d is kept", first.Line+1))
			}
			open = nil
		}
	}

	if open != nil {
		problems = append(problems, *diag.Newf(diag.Error, open.data.Line, 0, "function '%s' is never closed", open.name).
			WithHint("add a '}' on its own line after the function body"))
	}

	return table, problems
}
