package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEmptySyncBatch     = errors.New("sync batch must contain at least one record")
	ErrAlreadyCheckedOut  = errors.New("employee has already checked in and out today")
	ErrEmptyImport        = errors.New("import file has no data rows")
	ErrImportHeader       = errors.New("import file must have employee_id and date columns")
)
