// Package summary builds the per-account summary sheets: splitting the
// transactions sheet into account sheets, applying the FormatN builders
// selected by the Mappings sheet, and finalizing/cleaning the results.
package summary

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sagarbarkade/INNControl-MA/internal/config"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
)

// Context carries everything a builder needs for one account sheet.
type Context struct {
	File    *excelize.File
	Sheet   string // target account sheet name
	Account string // account name from the sheet's A4 cell
	Trans   [][]string
	PL      [][]string // nil when the workbook has no P&L sheet
	Cfg     *config.Config
	Log     *runlog.Log
}

// Builder writes one summary-table recipe onto an account sheet.
type Builder interface {
	Name() string
	Build(ctx *Context) error
}

// Registry holds named builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates an empty builder registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder. Panics on duplicate name.
func (r *Registry) Register(b Builder) {
	key := strings.ToLower(b.Name())
	if _, ok := r.builders[key]; ok {
		panic("duplicate builder name: " + key)
	}
	r.builders[key] = b
}

// Get returns the builder for name, or nil.
func (r *Registry) Get(name string) Builder {
	return r.builders[strings.ToLower(strings.TrimSpace(name))]
}

// DefaultRegistry returns a registry with all built-in format builders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&monthlyPivot{})         // format1
	r.Register(&transactionCopy{})      // format2
	r.Register(&statementReconcile{})   // format3
	r.Register(&payeSummary{})          // format4
	r.Register(&vatSummary{})           // format5
	r.Register(&liabilityDifference{})  // format6
	r.Register(&journalVsSpend{})       // format7
	r.Register(&cashbook{})             // format8
	r.Register(&controlReconcile{})     // format9
	r.Register(&differenceReconcile{})  // format10
	return r
}
