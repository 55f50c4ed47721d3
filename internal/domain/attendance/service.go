package attendance

import "context"

type AttendanceService interface {
	// Record resolves the status against the employee schedule and upserts the day.
	Record(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Sync merges a batch of offline kiosk records.
	Sync(ctx context.Context, batch SyncBatch) (SyncResponse, error)

	// Punch records a kiosk tap: the first of the day checks in, the second checks out.
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// Import upserts punch rows from an .xls or .xlsx workbook.
	Import(ctx context.Context, filename string, data []byte) (ImportResult, error)
}
