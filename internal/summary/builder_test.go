package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sagarbarkade/INNControl-MA/internal/config"
	"github.com/sagarbarkade/INNControl-MA/internal/runlog"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{
		"format1", "format2", "format3", "format4", "format5",
		"format6", "format7", "format8", "format9", "format10",
	} {
		assert.NotNil(t, r.Get(name), name)
	}
	assert.Nil(t, r.Get("format11"))
}

func TestRegistry_GetIsCaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("Format3"))
	assert.NotNil(t, r.Get(" FORMAT3 "))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&cashbook{})
	assert.Panics(t, func() { r.Register(&cashbook{}) })
}

// newBuilderContext wires a context around a fresh sheet for a builder
// test. The eighth row's date cell is prefilled the way SplitAccounts
// leaves it.
func newBuilderContext(t *testing.T, account string, trans [][]string) *Context {
	t.Helper()
	f := excelize.NewFile()
	const sheet = "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "A4", account))
	require.NoError(t, f.SetCellValue(sheet, "A8", "31-01-2025"))
	require.NoError(t, f.SetCellValue(sheet, "B8", account))
	t.Cleanup(func() { f.Close() })
	return &Context{
		File:    f,
		Sheet:   sheet,
		Account: account,
		Trans:   trans,
		Cfg:     config.Default(),
		Log:     runlog.New(),
	}
}

func cellValue(t *testing.T, ctx *Context, ref string) string {
	t.Helper()
	v, err := ctx.File.GetCellValue(ctx.Sheet, ref)
	require.NoError(t, err)
	return v
}

func TestBuilder_MissingAccountLogsAndSkips(t *testing.T) {
	trans := [][]string{{"Account Transactions"}}
	for _, b := range []Builder{
		&monthlyPivot{}, &transactionCopy{}, &payeSummary{},
		&vatSummary{}, &liabilityDifference{}, &journalVsSpend{}, &cashbook{},
	} {
		ctx := newBuilderContext(t, "Ghost Account", trans)
		require.NoError(t, b.Build(ctx), b.Name())
		assert.False(t, ctx.Log.Empty(), b.Name())
	}
}
