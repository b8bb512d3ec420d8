// Package layout is the versioned cell-position contract for the INNControl
// workbook. Every component reads row/column positions from here rather than
// scattering literals through the engine.
package layout

// Sheet names expected in the input workbook.
const (
	SheetFAR          = "FAR"
	SheetTransactions = "Account Transactions"
	SheetMappings     = "Mappings"
	SheetPL           = "P&L"
)

// FAR sheet positions (1-based rows/columns).
const (
	// MetaScanRows is how many leading FAR rows are scanned for the
	// year-end and management-accounts date tokens.
	MetaScanRows = 5

	// FARScanStartRow is the first row that can hold a category table name.
	FARScanStartRow = 6

	// FARRateRowOffset, FARHeaderRowOffset and FARDataRowOffset are row
	// offsets from a table-name row to its rate line, header row and first
	// data row.
	FARRateRowOffset   = 1
	FARHeaderRowOffset = 2
	FARDataRowOffset   = 3

	// FARTerminatorCol is the column whose value "Total" ends a data block.
	FARTerminatorCol = 2

	// FARTableGapRows separates a rendered totals row from the next table
	// name row.
	FARTableGapRows = 2
)

// FAR data block columns (1-based), matching the static header order.
const (
	FARColPurchaseDate = 1
	FARColDetails      = 2
	FARColCost         = 3
	FARColAddition     = 4
	FARColTotalCost    = 5
	FARColRate         = 6
	FARColAccumDep     = 7
)

// Account Transactions sheet positions (1-based).
const (
	// TransClientCell holds the client name copied onto every split sheet.
	TransClientCell = "A2"

	// TransHeaderRow is the fixed header row of the transactions sheet.
	TransHeaderRow = 5

	// TransDateCol and TransDetailsCol are the fallback positions used when
	// the header row carries no matching labels.
	TransDateCol    = 1
	TransDetailsCol = 3

	// TransCostCol is the fixed column an asset purchase amount is read from.
	TransCostCol = 8

	// TransCreditCol and TransDebitCol are the amount columns the FormatN
	// summaries aggregate (H and I in the source workbook).
	TransCreditCol = 8
	TransDebitCol  = 9

	// TransTypeCol, TransContactCol and TransRefCol feed the transaction
	// classification rules in the payroll and cashbook summaries.
	TransTypeCol    = 2
	TransContactCol = 3
	TransRefCol     = 5

	// TransSubAccountCol holds the "NNNNNNN Name" sub-account tag; the name
	// starts at the eighth character.
	TransSubAccountCol     = 18
	TransSubAccountNameIdx = 7
)

// Split account sheet positions (1-based rows unless a cell is named).
const (
	AccountNameCell  = "A4"
	PeriodDateCell   = "A8"
	SummaryValueCell = "C8"
	SummaryValueRow  = 8
	SummaryValueCol  = 3

	// SummaryStartRow is where every FormatN summary table begins.
	SummaryStartRow = 15

	// TaxTableStartCol is the first column (I) of the format5 corporation
	// tax table.
	TaxTableStartCol = 9
)

// Mappings sheet positions.
const (
	MappingsFirstRow  = 2
	MappingsNameCol   = 1
	MappingsFormatCol = 2
)
