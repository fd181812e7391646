package scope

// Kind identifies scope type
type Kind string

const (
	Global   Kind = "global"
	Module   Kind = "module"
	Function Kind = "function"
	Block    Kind = "block"
	Catch    Kind = "catch"
)

// SourceType controls whether top level declarations live in the global or module scope
type SourceType string

const (
	SourceModule SourceType = "module"
	SourceScript SourceType = "script"
)

// Scope represents a lexical scope
type Scope struct {
	Kind     Kind     `yaml:"kind"`
	Start    uint32   `yaml:"start"` // start byte offset
	End      uint32   `yaml:"end"`   // end byte offset
	Parent   *Scope   `yaml:"-"`
	Children []*Scope `yaml:"children,omitempty"`
	bindings map[string]*Binding
}

// Binding represents a name declared in a scope
type Binding struct {
	Name  string `yaml:"name"`
	Defs  []Def  `yaml:"defs"`
	Scope *Scope `yaml:"-"`
}

// Def is a single declaration site of a binding
type Def struct {
	Kind  DefKind `yaml:"kind"`
	Start uint32  `yaml:"start"` // start byte of the declared identifier, 0 for implicit globals
}

// DefKind describes how a binding was declared
type DefKind string

const (
	DefVariable     DefKind = "variable"
	DefParameter    DefKind = "parameter"
	DefFunctionName DefKind = "function"
	DefClassName    DefKind = "class"
	DefCatch        DefKind = "catch"
	DefImport       DefKind = "import"
	DefImplicit     DefKind = "implicit"
)

// Lookup returns binding declared directly in this scope
func (s *Scope) Lookup(name string) *Binding {
	if s.bindings == nil {
		return nil
	}
	return s.bindings[name]
}

func (s *Scope) contains(start, end uint32) bool {
	return s.Start <= start && end <= s.End
}

func (s *Scope) declare(name string, def Def) {
	if s.bindings == nil {
		s.bindings = map[string]*Binding{}
	}
	binding, ok := s.bindings[name]
	if !ok {
		binding = &Binding{Name: name, Scope: s}
		s.bindings[name] = binding
	}
	binding.Defs = append(binding.Defs, def)
}

func (s *Scope) child(kind Kind, start, end uint32) *Scope {
	ret := &Scope{Kind: kind, Start: start, End: end, Parent: s}
	s.Children = append(s.Children, ret)
	return ret
}

// hoistTarget returns the nearest scope receiving var declarations
func (s *Scope) hoistTarget() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		switch cur.Kind {
		case Function, Module, Global:
			return cur
		}
	}
	return s
}
