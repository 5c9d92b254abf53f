// File: parser/parse.go
package parser

import (
	"os"

	"github.com/dangerclosesec/iona/lang/diag"
)

// ParseFile lexes and parses an .iona file
func ParseFile(filePath string) ([]Node, []diag.Problem, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	f := LexAndParse(string(content))
	return f.Nodes, f.Problems, nil
}
