package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	defaults       schedule.Config
	location       *time.Location

	now     func() time.Time
	runInTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	defaults schedule.Config,
	location *time.Location,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		defaults:       defaults,
		location:       location,
		now:            time.Now,
		runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
	}
}

// today returns the current calendar date in the service location, as a UTC midnight.
func (s *AttendanceServiceImpl) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *AttendanceServiceImpl) resolve(emp employee.Employee, checkIn *string, manual string) attendance.Status {
	sched := emp.Schedule(s.defaults)
	return attendance.ResolveStatus(attendance.StatusInput{
		CheckInTime:          checkIn,
		WorkStartTime:        &sched.WorkStartTime,
		LateThresholdMinutes: sched.LateThresholdMinutes,
		ManualStatus:         attendance.Status(manual),
	})
}

func withEmployee(a attendance.Attendance, emp employee.Employee) attendance.AttendanceResponse {
	a.EmployeeName = &emp.Name
	a.JobTitle = emp.JobTitle
	return attendance.ToResponse(a)
}

// Record implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Record(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !validator.IsValidUUID(req.EmployeeID) {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
	}
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day := s.today()
	if req.AttendanceDate != "" {
		day, _ = validator.IsValidDate(req.AttendanceDate)
	}

	checkIn := attendance.NormalizeClock(req.CheckInTime)
	record := attendance.Attendance{
		CompanyID:      companyID,
		EmployeeID:     emp.ID,
		AttendanceDate: day,
		Status:         s.resolve(emp, checkIn, req.Status),
		CheckInTime:    checkIn,
		CheckOutTime:   attendance.NormalizeClock(req.CheckOutTime),
		Source:         attendance.SourceManual,
		Notes:          req.Notes,
	}

	saved, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	slog.Info("attendance recorded", "employee_id", emp.ID, "date", day.Format("2006-01-02"), "status", saved.Status)
	return withEmployee(saved, emp), nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !validator.IsValidUUID(req.ID) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	existing, err := s.attendanceRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckInTime != nil {
		existing.CheckInTime = attendance.NormalizeClock(req.CheckInTime)
	}
	if req.CheckOutTime != nil {
		existing.CheckOutTime = attendance.NormalizeClock(req.CheckOutTime)
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}

	if req.Status != nil {
		if attendance.Status(*req.Status) == attendance.StatusAuto {
			emp, err := s.employeeRepo.GetByID(ctx, existing.EmployeeID, companyID)
			if err != nil {
				return attendance.AttendanceResponse{}, err
			}
			existing.Status = s.resolve(emp, existing.CheckInTime, "")
		} else {
			existing.Status = attendance.Status(*req.Status)
		}
	}

	updated, err := s.attendanceRepo.Update(ctx, existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	updated.EmployeeName = existing.EmployeeName
	updated.JobTitle = existing.JobTitle

	return attendance.ToResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	if !validator.IsValidUUID(id) {
		return attendance.ErrAttendanceNotFound
	}
	return s.attendanceRepo.Delete(ctx, id, companyID)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0-0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// Sync implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Sync(ctx context.Context, batch attendance.SyncBatch) (attendance.SyncResponse, error) {
	if err := batch.Validate(); err != nil {
		return attendance.SyncResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return attendance.SyncResponse{}, err
	}

	// One roster lookup for the whole batch.
	seen := make(map[string]struct{}, len(batch))
	ids := make([]string, 0, len(batch))
	for _, rec := range batch {
		if _, ok := seen[rec.EmployeeID]; !ok {
			seen[rec.EmployeeID] = struct{}{}
			ids = append(ids, rec.EmployeeID)
		}
	}
	employees, err := s.employeeRepo.GetByIDs(ctx, ids, companyID)
	if err != nil {
		return attendance.SyncResponse{}, fmt.Errorf("failed to load employees for sync: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	result := attendance.SyncResponse{}
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		for _, rec := range batch {
			emp, ok := byID[rec.EmployeeID]
			if !ok {
				slog.Warn("sync record skipped, unknown employee", "employee_id", rec.EmployeeID, "company_id", companyID)
				result.Skipped++
				continue
			}
			day, _ := validator.IsValidDate(rec.AttendanceDate)

			existing, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, emp.ID, day, companyID)
			if err != nil {
				return err
			}

			merged := mergeSyncRecord(rec, existing)
			merged.CompanyID = companyID
			merged.EmployeeID = emp.ID
			merged.AttendanceDate = day
			merged.Status = s.resolve(emp, merged.CheckInTime, rec.Status)

			if _, err := s.attendanceRepo.Upsert(txCtx, merged); err != nil {
				return fmt.Errorf("failed to sync attendance for employee %s on %s: %w", emp.ID, rec.AttendanceDate, err)
			}
			result.Synced++
		}
		return nil
	})
	if err != nil {
		return attendance.SyncResponse{}, err
	}

	result.Success = true
	slog.Info("kiosk batch synced", "company_id", companyID, "synced", result.Synced, "skipped", result.Skipped)
	return result, nil
}

// mergeSyncRecord folds an incoming kiosk record onto the stored one for the same day.
// Check-in prefers the incoming value, check-out keeps the later time, notes prefer incoming.
func mergeSyncRecord(rec attendance.SyncRecord, existing *attendance.Attendance) attendance.Attendance {
	merged := attendance.Attendance{
		CheckInTime:     attendance.NormalizeClock(rec.CheckInTime),
		CheckOutTime:    attendance.NormalizeClock(rec.CheckOutTime),
		Notes:           rec.Notes,
		Source:          attendance.SourceKiosk,
		SyncedFromLocal: true,
	}
	if rec.Notes != nil && strings.TrimSpace(*rec.Notes) == "" {
		merged.Notes = nil
	}
	if existing == nil {
		return merged
	}

	if merged.CheckInTime == nil {
		merged.CheckInTime = existing.CheckInTime
	}
	merged.CheckOutTime = attendance.LaterClock(merged.CheckOutTime, existing.CheckOutTime)
	if merged.Notes == nil {
		merged.Notes = existing.Notes
	}
	return merged
}

// Punch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	if !validator.IsValidUUID(req.EmployeeID) {
		return attendance.PunchResponse{}, employee.ErrEmployeeNotFound
	}
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if !emp.IsActive {
		return attendance.PunchResponse{}, employee.ErrEmployeeNotActive
	}

	now := s.now().In(s.location)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	clock := now.Format("15:04")

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day, companyID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	if existing != nil && existing.CheckInTime != nil {
		if existing.CheckOutTime != nil {
			return attendance.PunchResponse{}, attendance.ErrAlreadyCheckedOut
		}
		existing.CheckOutTime = &clock
		updated, err := s.attendanceRepo.Update(ctx, *existing)
		if err != nil {
			return attendance.PunchResponse{}, err
		}
		slog.Info("kiosk check-out", "employee_id", emp.ID, "time", clock)
		return attendance.PunchResponse{
			Action:       attendance.PunchCheckOut,
			EmployeeName: emp.Name,
			Time:         clock,
			Attendance:   withEmployee(updated, emp),
		}, nil
	}

	status := s.resolve(emp, &clock, "")
	if emp.Schedule(s.defaults).IsOffDay(now) {
		status = attendance.StatusPresent
	}

	saved, err := s.attendanceRepo.Upsert(ctx, attendance.Attendance{
		CompanyID:      companyID,
		EmployeeID:     emp.ID,
		AttendanceDate: day,
		Status:         status,
		CheckInTime:    &clock,
		Source:         attendance.SourceKiosk,
	})
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	slog.Info("kiosk check-in", "employee_id", emp.ID, "time", clock, "status", status)
	return attendance.PunchResponse{
		Action:       attendance.PunchCheckIn,
		EmployeeName: emp.Name,
		Time:         clock,
		Attendance:   withEmployee(saved, emp),
	}, nil
}

var (
	importEmployeeColumns = []string{"employee_id", "employee", "id"}
	importDateColumns     = []string{"date", "attendance_date"}
	importCheckInColumns  = []string{"check_in", "check_in_time", "in"}
	importCheckOutColumns = []string{"check_out", "check_out_time", "out"}
)

func firstColumn(index map[string]int, names []string) int {
	for _, n := range names {
		if i, ok := index[n]; ok {
			return i
		}
	}
	return -1
}

// Import implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Import(ctx context.Context, filename string, data []byte) (attendance.ImportResult, error) {
	companyID, err := auth.CompanyIDFromContext(ctx)
	if err != nil {
		return attendance.ImportResult{}, err
	}

	rows, err := spreadsheet.ReadRows(filename, data)
	if err != nil {
		return attendance.ImportResult{}, err
	}
	if len(rows) < 2 {
		return attendance.ImportResult{}, attendance.ErrEmptyImport
	}

	index := spreadsheet.HeaderIndex(rows[0])
	colEmployee := firstColumn(index, importEmployeeColumns)
	colDate := firstColumn(index, importDateColumns)
	if colEmployee < 0 || colDate < 0 {
		return attendance.ImportResult{}, attendance.ErrImportHeader
	}
	colIn := firstColumn(index, importCheckInColumns)
	colOut := firstColumn(index, importCheckOutColumns)
	colStatus := firstColumn(index, []string{"status"})
	colNotes := firstColumn(index, []string{"notes", "note"})

	employees, err := s.employeeRepo.GetAllByCompanyID(ctx, companyID)
	if err != nil {
		return attendance.ImportResult{}, fmt.Errorf("failed to load employees for import: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	type importRow struct {
		num    int
		record attendance.Attendance
	}
	var pending []importRow

	result := attendance.ImportResult{Errors: []attendance.ImportRowError{}}
	skip := func(rowNum int, msg string) {
		result.Skipped++
		result.Errors = append(result.Errors, attendance.ImportRowError{Row: rowNum, Message: msg})
	}

	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		employeeID := strings.ToLower(spreadsheet.Cell(row, colEmployee))
		emp, ok := byID[employeeID]
		if !ok {
			skip(rowNum, employee.ErrEmployeeNotFound.Error())
			continue
		}

		day, err := spreadsheet.ParseDate(spreadsheet.Cell(row, colDate))
		if err != nil {
			skip(rowNum, err.Error())
			continue
		}

		checkIn, err := optionalClock(row, colIn)
		if err != nil {
			skip(rowNum, err.Error())
			continue
		}
		checkOut, err := optionalClock(row, colOut)
		if err != nil {
			skip(rowNum, err.Error())
			continue
		}

		manual := strings.ToLower(spreadsheet.Cell(row, colStatus))
		if manual != "" && manual != string(attendance.StatusAuto) && !attendance.Status(manual).Valid() {
			skip(rowNum, fmt.Sprintf("invalid status %q", manual))
			continue
		}

		var notes *string
		if n := spreadsheet.Cell(row, colNotes); n != "" {
			notes = &n
		}

		pending = append(pending, importRow{num: rowNum, record: attendance.Attendance{
			CompanyID:      companyID,
			EmployeeID:     emp.ID,
			AttendanceDate: day,
			Status:         s.resolve(emp, checkIn, manual),
			CheckInTime:    checkIn,
			CheckOutTime:   checkOut,
			Source:         attendance.SourceManual,
			Notes:          notes,
		}})
	}

	// A failed write rolls back the whole file.
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		for _, row := range pending {
			if _, err := s.attendanceRepo.Upsert(txCtx, row.record); err != nil {
				return fmt.Errorf("failed to import row %d: %w", row.num, err)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.ImportResult{}, err
	}
	result.Imported = len(pending)

	slog.Info("attendance imported", "company_id", companyID, "file", filename, "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func optionalClock(row []string, col int) (*string, error) {
	v := spreadsheet.Cell(row, col)
	if v == "" {
		return nil, nil
	}
	clock, err := spreadsheet.ParseClock(v)
	if err != nil {
		return nil, err
	}
	return &clock, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
