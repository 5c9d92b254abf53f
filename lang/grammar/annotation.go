package grammar

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/dangerclosesec/iona/lang/model"
)

// AnnotationKind selects which list an annotation grammar accepts
type AnnotationKind int

const (
	PropertyList AnnotationKind = iota
	PermissionList
)

func (k AnnotationKind) keyword() string {
	if k == PermissionList {
		return "#Permissions"
	}
	return "#Properties"
}

func (k AnnotationKind) noun() string {
	if k == PermissionList {
		return "permission"
	}
	return "property"
}

// AnnotationStage is a state of the annotation list machine
type AnnotationStage int

const (
	// AnnotationInitialized expects '::'
	AnnotationInitialized AnnotationStage = iota
	// AnnotationExpectValues expects recognized names or the end of the line
	AnnotationExpectValues
)

// Annotation is the grammar for `#Properties :: A B C` and `#Permissions :: A B C`
type Annotation struct {
	state
	Kind        AnnotationKind
	Stage       AnnotationStage
	Properties  []model.Property
	Permissions []model.Permission

	recognized []string
	seen       map[string]bool
}

// NewProperties creates a property list grammar
func NewProperties() *Annotation {
	return newAnnotation(PropertyList, model.PropertyNames)
}

// NewPermissions creates a permission list grammar
func NewPermissions() *Annotation {
	return newAnnotation(PermissionList, model.PermissionNames)
}

func newAnnotation(kind AnnotationKind, recognized []string) *Annotation {
	return &Annotation{
		state:      newState(),
		Kind:       kind,
		Stage:      AnnotationInitialized,
		recognized: recognized,
		seen:       make(map[string]bool),
	}
}

// Len returns the number of names collected
func (g *Annotation) Len() int {
	if g.Kind == PermissionList {
		return len(g.Permissions)
	}
	return len(g.Properties)
}

// Step advances the state machine
func (g *Annotation) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}

	switch g.Stage {
	case AnnotationInitialized:
		if tok.Symbol != lexer.DoubleColon {
			return g.fail(fatal(tok, "%s list is invalid, expected '::' but received %s", g.Kind.noun(), describe(tok)).
				WithHint(fmt.Sprintf("should be `%s :: A B C`", g.Kind.keyword())))
		}
		g.Stage = AnnotationExpectValues

	case AnnotationExpectValues:
		switch tok.Symbol {
		case lexer.Value:
			return g.add(tok)
		case lexer.Newline:
			return g.end(tok)
		default:
			return g.fail(fatal(tok, "%s list is invalid, expected a %s name or a new line, but received %s (%s)", g.Kind.noun(), g.Kind.noun(), describe(tok), tok.Symbol))
		}
	}
	return nil
}

func (g *Annotation) add(tok lexer.Token) *diag.Problem {
	switch g.Kind {
	case PropertyList:
		p, ok := model.ParseProperty(tok.Text)
		if !ok {
			return g.unrecognized(tok)
		}
		if g.seen[tok.Text] {
			return g.duplicate(tok)
		}
		g.Properties = append(g.Properties, p)
	case PermissionList:
		p, ok := model.ParsePermission(tok.Text)
		if !ok {
			return g.unrecognized(tok)
		}
		if g.seen[tok.Text] {
			return g.duplicate(tok)
		}
		g.Permissions = append(g.Permissions, p)
	}
	g.seen[tok.Text] = true
	return nil
}

// end closes the list. An empty property list is only a warning while an empty permission
// list is fatal.
func (g *Annotation) end(tok lexer.Token) *diag.Problem {
	if g.Len() > 0 {
		g.finish()
		return nil
	}
	if g.Kind == PermissionList {
		return g.fail(fatal(tok, "empty permission list, a permission list was declared but no permissions were provided").
			WithHint("remove the line or list permissions: " + strings.Join(g.recognized, " ")))
	}
	g.finish()
	return diag.New(diag.Warning, "empty property list, a property list was declared but no properties were provided", tok.Line, tok.Word).
		WithHint("remove the line or list properties: " + strings.Join(g.recognized, " "))
}

func (g *Annotation) unrecognized(tok lexer.Token) *diag.Problem {
	return g.fail(fatal(tok, "unrecognized %s '%s'", g.Kind.noun(), tok.Text).
		WithHint("valid names are: " + strings.Join(g.recognized, " ")))
}

func (g *Annotation) duplicate(tok lexer.Token) *diag.Problem {
	return diag.Newf(diag.Lint, tok.Line, tok.Word, "%s '%s' is listed more than once", g.Kind.noun(), tok.Text)
}
