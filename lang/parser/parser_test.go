package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/grammar"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/dangerclosesec/iona/lang/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeTypes(nodes []Node) []NodeType {
	types := make([]NodeType, len(nodes))
	for i, n := range nodes {
		types[i] = n.Type
	}
	return types
}

func messages(problems []diag.Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Message
	}
	return out
}

// compile runs the whole sequential pipeline and returns every problem in stage order
func compile(t *testing.T, src string) ([]Node, *model.FunctionTable, []diag.Problem) {
	t.Helper()
	nodes, problems := Parse(lexer.Lex(src))
	problems = append(problems, ComputeScopes(nodes)...)
	problems = append(problems, ResolveExpressions(nodes, BuildArityTable(nodes))...)
	table, tableProblems := PopulateFunctionTable(nodes)
	problems = append(problems, tableProblems...)
	for _, p := range problems {
		t.Logf("problem: %s", p.Error())
	}
	return nodes, table, problems
}

func TestParse_FunctionWithComment(t *testing.T) {
	src := "// returns five\nfn five :: int {\nreturn 5\n}"
	nodes, problems := Parse(lexer.Lex(src))

	assert.Empty(t, problems)
	assert.Equal(t, []NodeType{Comment, FunctionDeclaration, ReturnStatement, CloseScope}, nodeTypes(nodes))

	fn, ok := nodes[1].Grammar.(*grammar.Function)
	require.True(t, ok)
	assert.Equal(t, "five", fn.Name)
	assert.Empty(t, fn.Arguments)
	assert.Equal(t, model.Int, fn.ReturnType)
	assert.True(t, fn.Done())
	assert.True(t, fn.Valid())
	assert.Equal(t, 1, nodes[1].SourceLine)
}

func TestParse_NoArgumentFunction(t *testing.T) {
	nodes, problems := Parse(lexer.Lex("fn main {\n}"))
	assert.Empty(t, problems)
	require.Len(t, nodes, 2)

	fn := nodes[0].Grammar.(*grammar.Function)
	assert.Equal(t, "main", fn.Name)
	assert.Empty(t, fn.Arguments)
	assert.True(t, fn.Done() && fn.Valid())
}

func TestParse_FunctionNoName(t *testing.T) {
	nodes, problems := Parse(lexer.Lex("fn :: x str -> void {"))

	assert.Empty(t, nodes, "a fatally malformed line produces no node")
	require.Len(t, problems, 1, "the rest of the line is skipped after the first error: %v", messages(problems))
	assert.Equal(t, diag.Error, problems[0].Class)
	assert.Equal(t, "function name is missing", problems[0].Message)
}

func TestParse_EndOfInputEndsLine(t *testing.T) {
	nodes, problems := Parse(lexer.Lex("let x = 5"))

	require.Len(t, nodes, 1)
	assert.Equal(t, VariableAssignment, nodes[0].Type)
	require.Len(t, problems, 1)
	assert.Equal(t, diag.Lint, problems[0].Class, "an implied type is only a lint")

	g := nodes[0].Grammar.(*grammar.Assignment)
	assert.Equal(t, "x", g.Name)
	assert.Equal(t, "5", g.Variable().Value)
}

func TestParse_LintAndWarningKeepNode(t *testing.T) {
	src := "fn f {\n#Properties ::\nelse whatever\n}"
	nodes, problems := Parse(lexer.Lex(src))

	assert.Equal(t, []NodeType{FunctionDeclaration, PropertyDeclaration, Empty, CloseScope}, nodeTypes(nodes))
	require.Len(t, problems, 2)
	assert.Equal(t, diag.Warning, problems[0].Class)
	assert.Contains(t, problems[0].Message, "empty property list")
	assert.Equal(t, diag.Warning, problems[1].Class)
	assert.Equal(t, "a line starting with 'else' is not a supported statement and was ignored", problems[1].Message)
}

func TestParse_EmptyPermissionListDropsNode(t *testing.T) {
	nodes, problems := Parse(lexer.Lex("fn f {\n#Permissions ::\n}"))

	assert.Equal(t, []NodeType{FunctionDeclaration, CloseScope}, nodeTypes(nodes))
	require.Len(t, problems, 1)
	assert.Equal(t, diag.Error, problems[0].Class)
}

func TestParse_KeepsGoingAfterErrors(t *testing.T) {
	src := strings.Join([]string{
		"import a b from",
		"let :: int = 1",
		"let y :: int = 2",
		"#Permissions :: Teleport",
		"set y = 3",
	}, "\n")
	nodes, problems := Parse(lexer.Lex(src))

	assert.Equal(t, []NodeType{VariableAssignment, VariableAssignment}, nodeTypes(nodes))
	assert.Len(t, problems, 3, "one error per malformed line: %v", messages(problems))
	assert.True(t, diag.HasErrors(problems))
}

func TestComputeScopes(t *testing.T) {
	src := "let g = 1\nfn f {\nlet x = 2\n}\nlet h = 3"
	nodes, problems := Parse(lexer.Lex(src))
	require.Len(t, nodes, 5)
	assert.Len(t, problems, 3, "three implied-type lints")

	assert.Empty(t, ComputeScopes(nodes))

	for i, want := range []*int{nil, nil, lineRef(1), lineRef(1), nil} {
		if want == nil {
			assert.Nil(t, nodes[i].ParentLine, "node %d should be top level", i)
			continue
		}
		require.NotNil(t, nodes[i].ParentLine, "node %d should be scoped", i)
		assert.Equal(t, *want, *nodes[i].ParentLine, "node %d", i)
	}
}

func TestComputeScopes_Violations(t *testing.T) {
	src := "}\nfn a {\nfn b {\n}\n}"
	nodes, _ := Parse(lexer.Lex(src))
	problems := ComputeScopes(nodes)

	require.Len(t, problems, 3, "%v", messages(problems))
	assert.Equal(t, "unmatched closing brace", problems[0].Message)
	assert.Equal(t, 0, problems[0].Line)
	assert.Equal(t, "function 'b' is declared inside another function", problems[1].Message)
	assert.Equal(t, "unmatched closing brace", problems[2].Message)
	assert.Equal(t, 4, problems[2].Line)

	// Depth never goes negative, so the nested declaration is anchored to 'a'
	require.NotNil(t, nodes[2].ParentLine)
	assert.Equal(t, 1, *nodes[2].ParentLine)
}

func TestRoundTrip(t *testing.T) {
	for _, ret := range []string{"return a + b", "return + a b"} {
		src := "fn add :: a int -> b int -> int {\n#Properties :: Pure Export\n" + ret + "\n}"
		nodes, table, problems := compile(t, src)

		assert.Empty(t, problems, ret)
		require.Len(t, nodes, 4)

		data, ok := table.Get("add")
		require.True(t, ok, "expected 'add' in %v", table.Names())
		assert.Equal(t, model.Int, data.ReturnType)
		assert.Equal(t, []model.Property{model.Pure, model.Export}, data.Properties)
		assert.Equal(t, 2, data.Arity())
		assert.Equal(t, "add :: a int -> b int -> int", data.Signature("add"))

		require.NotNil(t, nodes[2].Value, ret)
		assert.Equal(t, "(+ a b)", nodes[2].Value.String(), ret)
	}
}

func TestRoundTrip_HelloWorld(t *testing.T) {
	src := "fn println :: s str -> void {\n}\nfn main {\nlet greeting :: str = \"Hello, world\"\nprintln \"Hello, world\"\n}"
	nodes, _, problems := compile(t, src)

	assert.Empty(t, problems)
	require.Len(t, nodes, 6)
	assert.Equal(t, `"Hello, world"`, nodes[3].Value.String())
	assert.Equal(t, `(println "Hello, world")`, nodes[4].Value.String())
}

func TestRoundTrip_ForwardCall(t *testing.T) {
	src := strings.Join([]string{
		"fn main {",
		"let x :: int = double 4",
		"print x",
		"}",
		"fn print :: v auto -> void {",
		"#Permissions :: WriteFile",
		"#In :: v -> \"v must be set\"",
		"}",
		"fn double :: n int -> int {",
		"return * n 2",
		"}",
	}, "\n")
	nodes, table, problems := compile(t, src)

	assert.Empty(t, problems)
	assert.Equal(t, []string{"double", "main", "print"}, table.Names(), "names are ordered")

	assert.Equal(t, "(double 4)", nodes[1].Value.String())
	assert.Equal(t, "(print x)", nodes[2].Value.String())

	printer, _ := table.Get("print")
	assert.Equal(t, []model.Permission{model.WriteFile}, printer.Permissions)
	require.Len(t, printer.Contracts, 1)
	assert.Equal(t, model.Precondition, printer.Contracts[0].Kind)
	assert.Equal(t, "v", printer.Contracts[0].Condition)
	assert.Equal(t, `"v must be set"`, printer.Contracts[0].Message)
}

func TestResolveExpressions_Problems(t *testing.T) {
	src := "fn pair :: a int -> b int -> int {\nreturn + a\n}\nfn main {\nlet x = pair 1\n}"
	_, _, problems := compile(t, src)

	var errs []string
	for _, p := range diag.Filter(problems, diag.Error) {
		errs = append(errs, p.Message)
	}
	assert.Equal(t, []string{
		"not enough arguments for function +",
		"not enough arguments for function pair",
	}, errs)
}

func TestPopulateFunctionTable_Problems(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		names   []string
	}{
		{"property outside", "#Properties :: Pure", "property list declared outside of function", nil},
		{"permission outside", "#Permissions :: ReadFile", "permission list declared outside of function", nil},
		{"contract outside", "#Out :: r -> \"r\"", "contract declared outside of function", nil},
		{"never closed", "fn open :: int {\nreturn 1", "function 'open' is never closed", nil},
		{"duplicate", "fn f {\n}\nfn f :: x int -> int {\n}", "function 'f' is already declared", []string{"f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, _ := Parse(lexer.Lex(tt.src))
			ComputeScopes(nodes)
			table, problems := PopulateFunctionTable(nodes)

			require.Len(t, problems, 1, "%v", messages(problems))
			assert.Equal(t, diag.Error, problems[0].Class)
			assert.Equal(t, tt.message, problems[0].Message)
			if tt.names == nil {
				assert.Zero(t, table.Len())
			} else {
				assert.Equal(t, tt.names, table.Names())
			}
		})
	}
}

func TestPopulateFunctionTable_DuplicateKeepsFirst(t *testing.T) {
	nodes, _ := Parse(lexer.Lex("fn f {\n}\nfn f :: x int -> int {\n}"))
	ComputeScopes(nodes)
	table, _ := PopulateFunctionTable(nodes)

	data, ok := table.Get("f")
	require.True(t, ok)
	assert.Zero(t, data.Arity())
	assert.Equal(t, 0, data.Line)
}

func TestBuildArityTable(t *testing.T) {
	nodes, _ := Parse(lexer.Lex("fn a :: x int -> y int -> int {\n}\nfn b {\n}\nfn a :: int {\n}"))
	arities := BuildArityTable(nodes)

	assert.Equal(t, model.ArityTable{"a": 2, "b": 0}, arities)
}

func TestFused_MatchesSequential(t *testing.T) {
	src := strings.Join([]string{
		"// demo",
		"import io.iona",
		"import read write from io",
		"",
		"fn add :: a int -> b int -> int {",
		"#Properties :: Pure Export Pure",
		"#Permissions ::",
		"let total :: int mut = + a b",
		"set total @ 0 = 1",
		"return total",
		"}",
		"fn :: broken",
		"else nothing",
		"(add 1 2)",
		"#Invariant :: total -> \"positive\"",
	}, "\n")

	sequential := LexAndParse(src)
	for _, workers := range []int{0, 1, 3, 64} {
		fused := Fused(src, workers)

		assert.Equal(t, sequential.Tokens, fused.Tokens, "workers=%d", workers)
		assert.Equal(t, nodeTypes(sequential.Nodes), nodeTypes(fused.Nodes), "workers=%d", workers)
		assert.ElementsMatch(t, sequential.Problems, fused.Problems, "workers=%d", workers)
	}

	nodes, problems := FusedLexAndParse(src, 2)
	assert.Len(t, nodes, len(sequential.Nodes))
	assert.Len(t, problems, len(sequential.Problems))
}

func TestFragment_MergeIsAssociative(t *testing.T) {
	lines := []string{"let a = 1", "fn f {", "}"}
	parts := make([]Fragment, len(lines))
	for i, line := range lines {
		parts[i] = LexAndParse(line)
	}

	left := parts[0].Merge(parts[1]).Merge(parts[2])
	right := parts[0].Merge(parts[1].Merge(parts[2]))
	assert.Equal(t, nodeTypes(left.Nodes), nodeTypes(right.Nodes))
	assert.Equal(t, left.Problems, right.Problems)
	assert.Equal(t, left.Tokens, right.Tokens)
}

func TestFused_Empty(t *testing.T) {
	f := Fused("", 4)
	assert.Empty(t, f.Nodes)
	assert.Empty(t, f.Problems)
}

func TestNodeType_String(t *testing.T) {
	assert.Equal(t, "FunctionDeclaration", FunctionDeclaration.String())
	assert.Equal(t, "Empty", Empty.String())
	assert.Equal(t, "NodeType(99)", NodeType(99).String())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.iona")
	require.NoError(t, os.WriteFile(path, []byte("fn main {\n}\n"), 0o644))

	nodes, problems, err := ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, []NodeType{FunctionDeclaration, CloseScope}, nodeTypes(nodes))

	_, _, err = ParseFile(filepath.Join(t.TempDir(), "missing.iona"))
	assert.Error(t, err)
}
