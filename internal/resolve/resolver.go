package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"idea-transformer/internal/diagnostic"
	"idea-transformer/internal/match"
	"idea-transformer/internal/schema"
)

// UnresolvedParentError reports an extends target missing from its section.
type UnresolvedParentError struct {
	Section schema.Section
	Entry   string
	Parent  string
	// Suggestion is a close existing name, if any.
	Suggestion string
}

func (e *UnresolvedParentError) Error() string {
	msg := fmt.Sprintf("%s %q extends unknown %s %q", e.Section, e.Entry, e.Section, e.Parent)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}

	return msg
}

// Code implements diagnostic.Coder.
func (e *UnresolvedParentError) Code() string { return diagnostic.CodeUnresolvedParent }

// Resolver resolves one table. It is single use: create one per Resolve.
type Resolver struct {
	raw    *schema.Table
	logger *slog.Logger

	states map[schema.Section]map[string]visitState
	done   map[schema.Section]map[string]*schema.TypeConfig
	diags  diagnostic.Diagnostics
	errs   []error
}

// NewResolver creates a Resolver for table. A nil logger discards output.
func NewResolver(table *schema.Table, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Resolver{
		raw:    table,
		logger: logger,
		states: make(map[schema.Section]map[string]visitState),
		done:   make(map[schema.Section]map[string]*schema.TypeConfig),
	}
}

// Resolve flattens table with a throwaway Resolver.
func Resolve(table *schema.Table) (*schema.Table, error) {
	return NewResolver(table, nil).Resolve()
}

// Resolve returns a copy of the raw table with every model and type entry
// merged with its ancestors. The raw table is not modified.
//
// Unknown parents do not stop resolution of other entries; all of them are
// returned joined, and the table is returned alongside for inspection.
func (r *Resolver) Resolve() (*schema.Table, error) {
	out := r.raw.Clone()

	for _, section := range []schema.Section{schema.SectionType, schema.SectionModel} {
		entries := r.raw.Entries(section)

		for name := range entries.All() {
			if r.state(section, name) == stateUnvisited {
				r.resolveEntry(section, name)
			}
		}

		resolved := schema.NewMap[*schema.TypeConfig]()
		for name := range entries.All() {
			resolved.Set(name, r.done[section][name])
		}

		switch section {
		case schema.SectionType:
			out.Type = resolved
		case schema.SectionModel:
			out.Model = resolved
		}
	}

	return out, errors.Join(r.errs...)
}

// Diagnostics returns the findings collected by Resolve.
func (r *Resolver) Diagnostics() diagnostic.Diagnostics {
	return r.diags
}

func (r *Resolver) state(section schema.Section, name string) visitState {
	return r.states[section][name]
}

func (r *Resolver) setState(section schema.Section, name string, s visitState) {
	if r.states[section] == nil {
		r.states[section] = make(map[string]visitState)
	}

	r.states[section][name] = s
}

func (r *Resolver) finish(section schema.Section, name string, entry *schema.TypeConfig) *schema.TypeConfig {
	if r.done[section] == nil {
		r.done[section] = make(map[string]*schema.TypeConfig)
	}

	r.done[section][name] = entry
	r.setState(section, name, stateResolved)

	return entry
}

// resolveEntry returns the resolved form of an existing entry.
func (r *Resolver) resolveEntry(section schema.Section, name string) *schema.TypeConfig {
	entry, _ := r.raw.Entries(section).Get(name)
	ref := diagnostic.EntryRef(string(section), name)

	switch r.state(section, name) {
	case stateResolved:
		return r.done[section][name]
	case stateInProgress:
		msg := fmt.Sprintf("%s %q is reached again through its own extends chain; inheritance stops here", section, name)
		r.diags.AddWarning(diagnostic.CodeCycle, msg, ref, "")
		r.logger.Debug("inheritance cycle", "section", section, "entry", name)

		return entry
	}

	r.setState(section, name, stateInProgress)

	if entry.Extends == "" {
		return r.finish(section, name, entry.Clone())
	}

	parentSection, ok := r.parentSection(section, entry.Extends)
	if !ok {
		err := &UnresolvedParentError{
			Section:    section,
			Entry:      name,
			Parent:     entry.Extends,
			Suggestion: match.Suggest(entry.Extends, r.parentCandidates(section)),
		}
		r.diags.AddError(diagnostic.CodeUnresolvedParent, err.Error(), ref, "")
		r.errs = append(r.errs, err)

		return r.finish(section, name, entry.Clone())
	}

	parent := r.resolveEntry(parentSection, entry.Extends)

	merged, shadowed := merge(entry, parent)
	if parent == entry {
		// Direct self-reference: every column shadows itself.
		shadowed = nil
	}

	for _, col := range shadowed {
		r.diags.AddInfo(diagnostic.CodeColumnShadowed,
			fmt.Sprintf("column inherited from %q dropped, %q declares it", entry.Extends, name), ref, col)
	}

	r.logger.Debug("resolved entry", "section", section, "entry", name, "extends", entry.Extends,
		"columns", len(merged.Columns))

	return r.finish(section, name, merged)
}

// parentCandidates lists the names an entry of section may extend.
func (r *Resolver) parentCandidates(section schema.Section) []string {
	names := r.raw.Entries(section).Keys()
	if section == schema.SectionModel {
		names = append(names, r.raw.Type.Keys()...)
	}

	return names
}

// parentSection locates the section holding parent. Models fall back to
// the type section when no model of that name exists.
func (r *Resolver) parentSection(section schema.Section, parent string) (schema.Section, bool) {
	if r.raw.Entries(section).Has(parent) {
		return section, true
	}

	if section == schema.SectionModel && r.raw.Type.Has(parent) {
		return schema.SectionType, true
	}

	return "", false
}
