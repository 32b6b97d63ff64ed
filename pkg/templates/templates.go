// Package templates holds the built-in workflow templates used to seed new
// user workflows. Templates are immutable catalog data; Instantiate hands out
// an editable deep copy with a fresh workflow id.
package templates

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chatforge/flowbuilder/pkg/models"
)

// ErrTemplateNotFound indicates an unknown template id.
var ErrTemplateNotFound = errors.New("template not found")

// All returns the template catalog in display order. Callers receive clones;
// mutating a returned workflow never touches the catalog.
func All() []*models.Workflow {
	out := make([]*models.Workflow, 0, len(builtin))
	for _, tpl := range builtin {
		out = append(out, tpl.Clone())
	}

	return out
}

// ByID returns a clone of the template with the given id.
func ByID(id string) (*models.Workflow, error) {
	for _, tpl := range builtin {
		if tpl.ID == id {
			return tpl.Clone(), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
}

// Instantiate deep-copies a template into a new user workflow: fresh id, not
// prebuilt, graph preserved structurally (node and connection ids included).
func Instantiate(tpl *models.Workflow) *models.Workflow {
	wf := tpl.Clone()
	wf.ID = uuid.New().String()
	wf.IsPrebuilt = false

	return wf
}
