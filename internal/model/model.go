package model

import "strings"

// SourceLayout selects how derived identifiers are organized into classes.
type SourceLayout string

const (
	LayoutNested            SourceLayout = "nested"              // one nested class per dot segment
	LayoutFlatWithPrefix    SourceLayout = "flat_with_prefix"    // a.b.c -> A_B_C on the root class
	LayoutFlatWithoutPrefix SourceLayout = "flat_without_prefix" // a.b.c -> C on the root class
)

// Layouts lists every supported layout.
var Layouts = []SourceLayout{LayoutNested, LayoutFlatWithPrefix, LayoutFlatWithoutPrefix}

// SourceAccess is the visibility applied to generated classes.
type SourceAccess string

const (
	AccessPublic  SourceAccess = "public"
	AccessPackage SourceAccess = "package"
)

var Accesses = []SourceAccess{AccessPublic, AccessPackage}

// Language is the target source language.
type Language string

const (
	LanguageJava Language = "java"
	LanguageGo   Language = "go"
)

var Languages = []Language{LanguageJava, LanguageGo}

// CollisionPolicy decides what happens when keys from different files land
// on the same identifier.
type CollisionPolicy string

const (
	PolicyFail     CollisionPolicy = "fail"
	PolicyLastWins CollisionPolicy = "last_wins"
)

var Policies = []CollisionPolicy{PolicyFail, PolicyLastWins}

// PropertyKey is one key read from a properties file.
type PropertyKey struct {
	Raw  string // unescaped key text
	File string // origin file
	Line int    // 1-based line of the logical line start, 0 if unknown
}

// Identifier is the legal constant name derived from a key.
type Identifier struct {
	Name     string   // flat form, segments joined with "_"
	Segments []string // per dot segment, already converted
}

// Member returns the last segment, used as the constant name by the nested
// and flat-without-prefix layouts.
func (id Identifier) Member() string {
	if len(id.Segments) == 0 {
		return ""
	}
	return id.Segments[len(id.Segments)-1]
}

// Path returns every segment but the last.
func (id Identifier) Path() []string {
	if len(id.Segments) < 2 {
		return nil
	}
	return id.Segments[:len(id.Segments)-1]
}

// Member is one constant declared inside a NamespaceNode.
type Member struct {
	Name       string
	Identifier Identifier
	Key        PropertyKey
}

// NamespaceNode is the root class or a nested class.
type NamespaceNode struct {
	Name     string
	Access   SourceAccess
	Parent   *NamespaceNode
	Children []*NamespaceNode // first-seen order
	Members  []*Member        // reading order

	children map[string]*NamespaceNode
	members  map[string]*Member
}

// NewRoot creates the root class node.
func NewRoot(name string, access SourceAccess) *NamespaceNode {
	return newNode(name, access, nil)
}

func newNode(name string, access SourceAccess, parent *NamespaceNode) *NamespaceNode {
	return &NamespaceNode{
		Name:     name,
		Access:   access,
		Parent:   parent,
		children: make(map[string]*NamespaceNode),
		members:  make(map[string]*Member),
	}
}

// Child returns the nested node called name, or nil.
func (n *NamespaceNode) Child(name string) *NamespaceNode {
	return n.children[name]
}

// AddChild creates a nested node; callers check for clashes first.
func (n *NamespaceNode) AddChild(name string) *NamespaceNode {
	c := newNode(name, n.Access, n)
	n.children[name] = c
	n.Children = append(n.Children, c)
	return c
}

// Member returns the constant called name, or nil.
func (n *NamespaceNode) Member(name string) *Member {
	return n.members[name]
}

// AddMember appends a constant; callers check for clashes first.
func (n *NamespaceNode) AddMember(m *Member) {
	n.members[m.Name] = m
	n.Members = append(n.Members, m)
}

// Ancestor returns the nearest enclosing node (n included) called name, or nil.
func (n *NamespaceNode) Ancestor(name string) *NamespaceNode {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Name == name {
			return cur
		}
	}
	return nil
}

// Descendant returns the first nested node below n (n excluded) called name,
// in walk order, or nil.
func (n *NamespaceNode) Descendant(name string) *NamespaceNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if d := c.Descendant(name); d != nil {
			return d
		}
	}
	return nil
}

// EnclosingMember returns the constant called name declared in n or in the
// nearest enclosing node that has one, or nil.
func (n *NamespaceNode) EnclosingMember(name string) (*NamespaceNode, *Member) {
	for cur := n; cur != nil; cur = cur.Parent {
		if m := cur.Member(name); m != nil {
			return cur, m
		}
	}
	return nil, nil
}

// Scope is the class path from the root down to n.
func (n *NamespaceNode) Scope() []string {
	var out []string
	for cur := n; cur != nil; cur = cur.Parent {
		out = append(out, cur.Name)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// QualifiedName joins Scope with dots.
func (n *NamespaceNode) QualifiedName() string {
	return strings.Join(n.Scope(), ".")
}

// Walk visits n and its descendants depth first: members of a node before
// its children, children in first-seen order.
func (n *NamespaceNode) Walk(fn func(node *NamespaceNode)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// CountMembers returns the number of constants in the whole tree.
func (n *NamespaceNode) CountMembers() int {
	total := 0
	n.Walk(func(node *NamespaceNode) { total += len(node.Members) })
	return total
}
