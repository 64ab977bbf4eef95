package layout

import (
	"log/slog"

	"github.com/cmmoran/propkeygen/internal/model"
	"github.com/cmmoran/propkeygen/pkg/generr"
)

func keyRef(k model.PropertyKey) generr.KeyRef {
	return generr.KeyRef{Key: k.Raw, File: k.File, Line: k.Line}
}

// checkNamespace rejects a nested class named seg below scope when scope or
// an enclosing class already declares a constant of that name, or when seg
// repeats the name of an enclosing class.
func checkNamespace(scope *model.NamespaceNode, seg string, key model.PropertyKey) error {
	if owner, m := scope.EnclosingMember(seg); m != nil {
		return &generr.NamespaceMemberCollisionError{
			Identifier: seg,
			Scope:      scope.Scope(),
			Key:        keyRef(key),
			Message:    "is needed as a nested class but is already a constant of " + owner.QualifiedName() + " for key " + keyRef(m.Key).String(),
		}
	}
	if anc := scope.Ancestor(seg); anc != nil {
		return &generr.NamespaceMemberCollisionError{
			Identifier: seg,
			Scope:      scope.Scope(),
			Key:        keyRef(key),
			Message:    "would be a nested class with the same name as its enclosing class " + anc.QualifiedName(),
		}
	}
	return nil
}

// place adds m to scope, resolving clashes with existing names.
//
// A constant may not share its name with any class nested below scope or
// with an enclosing class. Two keys on the same name always fail when they
// come from one file. Across files they fail unless the policy is last_wins,
// in which case the later key replaces the earlier one in place; with the
// flat_without_prefix layout last_wins only reconciles identical raw keys.
func (o *Organizer) place(scope *model.NamespaceNode, m *model.Member) error {
	if nested := scope.Descendant(m.Name); nested != nil {
		return &generr.NamespaceMemberCollisionError{
			Identifier: m.Name,
			Scope:      scope.Scope(),
			Key:        keyRef(m.Key),
			Message:    "is already the nested class " + nested.QualifiedName(),
		}
	}
	if anc := scope.Ancestor(m.Name); anc != nil {
		return &generr.NamespaceMemberCollisionError{
			Identifier: m.Name,
			Scope:      scope.Scope(),
			Key:        keyRef(m.Key),
			Message:    "has the same name as its enclosing class " + anc.QualifiedName(),
		}
	}

	existing := scope.Member(m.Name)
	if existing == nil {
		scope.AddMember(m)
		return nil
	}

	prior := existing.Key
	if prior == m.Key {
		return nil
	}
	if o.lastWins(prior, m.Key) {
		slog.Debug("key replaced by later file",
			"identifier", m.Name,
			"scope", scope.QualifiedName(),
			"previous", prior.Raw,
			"previous_file", prior.File,
			"key", m.Key.Raw,
			"file", m.Key.File)
		existing.Key = m.Key
		existing.Identifier = m.Identifier
		return nil
	}
	return &generr.IdentifierCollisionError{
		Identifier: m.Name,
		Scope:      scope.Scope(),
		First:      keyRef(prior),
		Second:     keyRef(m.Key),
	}
}

func (o *Organizer) lastWins(prior, next model.PropertyKey) bool {
	if o.cfg.Policy != model.PolicyLastWins || prior.File == next.File {
		return false
	}
	if o.cfg.Layout == model.LayoutFlatWithoutPrefix {
		return prior.Raw == next.Raw
	}
	return true
}
