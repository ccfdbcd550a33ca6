package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrWriteWorkbook = errors.New("write workbook")
	ErrWriteCSV      = errors.New("write csv")
)
