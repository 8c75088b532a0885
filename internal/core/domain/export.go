package domain

// ExportFormat identifies an interchange format for record export.
type ExportFormat string

const (
	// ExportCSV writes a UTF-8 CSV with a byte-order mark so
	// spreadsheet programs detect the encoding.
	ExportCSV ExportFormat = "csv"

	// ExportXLSX writes a native Excel workbook.
	ExportXLSX ExportFormat = "xlsx"
)

// AllExportFormats returns all supported export formats.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{ExportCSV, ExportXLSX}
}

// IsValid checks if the export format is supported.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportCSV, ExportXLSX:
		return true
	}
	return false
}

// String returns the string representation of the format.
func (f ExportFormat) String() string {
	return string(f)
}

// Extension returns the file extension for the format, dot included.
func (f ExportFormat) Extension() string {
	return "." + string(f)
}
