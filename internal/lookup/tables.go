// Package lookup holds the immutable per-run mapping tables: client name to
// tracker component, client name to the people working the account, and
// person name to tracker account ID. Tables are loaded once per run and
// injected into the transformer; substituting an alternate roster or team is
// a data change, never a code change.
package lookup

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ReporterName is the fixed reporter every work item is filed under.
const ReporterName = "Noktah Inovasi Teknologi"

// Tables bundles the four mapping tables. Zero-value lookups return
// not-found; callers degrade the affected field rather than failing the row.
type Tables struct {
	// Components maps client name to tracker component ID.
	Components map[string]string `yaml:"components"`
	// Workers maps person name to tracker account ID.
	Workers map[string]string `yaml:"workers"`
	// ContentEditors maps client name to the reviewing editor's person name.
	ContentEditors map[string]string `yaml:"content_editors"`
	// FieldAssociates maps client name to the assigned associate's person name.
	FieldAssociates map[string]string `yaml:"field_associates"`
}

// Load reads tables from a YAML file. Missing sections stay empty.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "lookup: read %s", path)
	}
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrapf(err, "lookup: parse %s", path)
	}
	return &t, nil
}

// ComponentID resolves a client's tracker component ID.
func (t *Tables) ComponentID(clientName string) (string, bool) {
	id, ok := t.Components[clientName]
	return id, ok
}

// AccountID resolves a person name to a tracker account ID.
func (t *Tables) AccountID(personName string) (string, bool) {
	id, ok := t.Workers[personName]
	return id, ok
}

// FieldAssociate resolves the two-step chain client → person name → account
// ID. A break at either step returns ok=false with whatever resolved.
func (t *Tables) FieldAssociate(clientName string) (name, accountID string, ok bool) {
	return t.resolvePerson(t.FieldAssociates, clientName)
}

// ContentEditor resolves the reviewer chain for a client.
func (t *Tables) ContentEditor(clientName string) (name, accountID string, ok bool) {
	return t.resolvePerson(t.ContentEditors, clientName)
}

// ReporterID resolves the fixed reporter's account ID.
func (t *Tables) ReporterID() (string, bool) {
	return t.AccountID(ReporterName)
}

func (t *Tables) resolvePerson(chain map[string]string, clientName string) (string, string, bool) {
	name, ok := chain[clientName]
	if !ok || name == "" {
		return "", "", false
	}
	id, ok := t.Workers[name]
	if !ok || id == "" {
		return name, "", false
	}
	return name, id, true
}
