package scope

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Graph represents the static scope tree of a parsed file
type Graph struct {
	Global *Scope
	// Top is the scope receiving top level declarations, Global for scripts
	Top *Scope
}

// Option configures graph construction
type Option func(*builder)

// WithSourceType sets whether the file is treated as an ES module or a script
func WithSourceType(sourceType SourceType) Option {
	return func(b *builder) {
		b.sourceType = sourceType
	}
}

// WithGlobals declares names in the global scope, i.e. names provided by the runtime or test harness
func WithGlobals(names ...string) Option {
	return func(b *builder) {
		b.globals = append(b.globals, names...)
	}
}

type builder struct {
	src        []byte
	sourceType SourceType
	globals    []string
}

// Build constructs the scope graph for the program node
func Build(root *sitter.Node, src []byte, opts ...Option) *Graph {
	b := &builder{src: src, sourceType: SourceModule}
	for _, opt := range opts {
		opt(b)
	}
	global := &Scope{Kind: Global, Start: 0, End: uint32(len(src))}
	if root != nil && root.EndByte() > global.End {
		global.End = root.EndByte()
	}
	for _, name := range b.globals {
		global.declare(name, Def{Kind: DefImplicit})
	}
	top := global
	if b.sourceType != SourceScript {
		top = global.child(Module, global.Start, global.End)
	}
	if root != nil {
		b.walkChildren(root, top)
	}
	return &Graph{Global: global, Top: top}
}

func (b *builder) walk(n *sitter.Node, current *Scope) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			current.declare(b.text(name), Def{Kind: DefFunctionName, Start: name.StartByte()})
		}
		b.function(n, current, false)
		return
	case "function", "function_expression", "generator_function":
		b.function(n, current, true)
		return
	case "arrow_function", "method_definition":
		b.function(n, current, false)
		return
	case "class_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			current.declare(b.text(name), Def{Kind: DefClassName, Start: name.StartByte()})
		}
	case "lexical_declaration":
		b.declarators(n, current, DefVariable)
		return
	case "variable_declaration":
		b.declarators(n, current.hoistTarget(), DefVariable)
		b.walkChildren(n, current)
		return
	case "statement_block", "switch_body", "for_statement":
		b.walkChildren(n, current.child(Block, n.StartByte(), n.EndByte()))
		return
	case "for_in_statement":
		b.forIn(n, current.child(Block, n.StartByte(), n.EndByte()))
		return
	case "catch_clause":
		b.catch(n, current.child(Catch, n.StartByte(), n.EndByte()))
		return
	case "import_statement":
		b.imports(n, current)
		return
	}
	b.walkChildren(n, current)
}

func (b *builder) walkChildren(n *sitter.Node, current *Scope) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.walk(n.NamedChild(i), current)
	}
}

// function opens a function scope, the body block shares the function scope
func (b *builder) function(n *sitter.Node, current *Scope, bindName bool) {
	fnScope := current.child(Function, n.StartByte(), n.EndByte())
	if bindName {
		if name := n.ChildByFieldName("name"); name != nil {
			fnScope.declare(b.text(name), Def{Kind: DefFunctionName, Start: name.StartByte()})
		}
	}
	if param := n.ChildByFieldName("parameter"); param != nil {
		b.declarePattern(param, fnScope, DefParameter)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			param := params.NamedChild(i)
			b.declarePattern(param, fnScope, DefParameter)
			b.walkPatternDefaults(param, fnScope)
		}
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	if body.Type() == "statement_block" {
		b.walkChildren(body, fnScope)
		return
	}
	b.walk(body, fnScope)
}

func (b *builder) declarators(n *sitter.Node, target *Scope, kind DefKind) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		declarator := n.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		if name := declarator.ChildByFieldName("name"); name != nil {
			b.declarePattern(name, target, kind)
		}
	}
	if n.Type() == "lexical_declaration" {
		b.walkChildren(n, target)
	}
}

func (b *builder) forIn(n *sitter.Node, block *Scope) {
	left := n.ChildByFieldName("left")
	if left != nil {
		switch declarationKeyword(n) {
		case "var":
			b.declarePattern(left, block.hoistTarget(), DefVariable)
		case "let", "const":
			b.declarePattern(left, block, DefVariable)
		}
	}
	b.walkChildren(n, block)
}

// declarationKeyword returns the var/let/const token of a for-in/of header
func declarationKeyword(n *sitter.Node) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsNamed() {
			continue
		}
		switch child.Type() {
		case "var", "let", "const":
			return child.Type()
		}
	}
	return ""
}

func (b *builder) catch(n *sitter.Node, catchScope *Scope) {
	if param := n.ChildByFieldName("parameter"); param != nil {
		b.declarePattern(param, catchScope, DefCatch)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		b.walkChildren(body, catchScope)
	}
}

func (b *builder) imports(n *sitter.Node, current *Scope) {
	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		switch node.Type() {
		case "identifier":
			current.declare(b.text(node), Def{Kind: DefImport, Start: node.StartByte()})
			return
		case "import_specifier":
			name := node.ChildByFieldName("alias")
			if name == nil {
				name = node.ChildByFieldName("name")
			}
			if name != nil && name.Type() == "identifier" {
				current.declare(b.text(name), Def{Kind: DefImport, Start: name.StartByte()})
			}
			return
		case "string":
			return
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			visit(node.NamedChild(i))
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		visit(n.NamedChild(i))
	}
}

func (b *builder) declarePattern(n *sitter.Node, target *Scope, kind DefKind) {
	for _, ident := range patternNames(n) {
		target.declare(b.text(ident), Def{Kind: kind, Start: ident.StartByte()})
	}
}

// walkPatternDefaults visits default value expressions of a parameter
func (b *builder) walkPatternDefaults(n *sitter.Node, current *Scope) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return
	case "assignment_pattern", "object_assignment_pattern":
		b.walkPatternDefaults(n.ChildByFieldName("left"), current)
		b.walk(n.ChildByFieldName("right"), current)
		return
	case "required_parameter", "optional_parameter":
		if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			b.walkPatternDefaults(pattern, current)
		}
		if value := n.ChildByFieldName("value"); value != nil {
			b.walk(value, current)
		}
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.walkPatternDefaults(n.NamedChild(i), current)
	}
}

func (b *builder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

// patternNames returns the identifiers bound by a declaration or parameter pattern
func patternNames(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []*sitter.Node{n}
	case "assignment_pattern", "object_assignment_pattern":
		return patternNames(n.ChildByFieldName("left"))
	case "pair_pattern":
		return patternNames(n.ChildByFieldName("value"))
	case "required_parameter", "optional_parameter":
		return patternNames(n.ChildByFieldName("pattern"))
	case "object_pattern", "array_pattern", "rest_pattern":
		var result []*sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			result = append(result, patternNames(n.NamedChild(i))...)
		}
		return result
	}
	return nil
}
