package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-leave/internal/employee"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HolidayDirectory is the read-only lookup of non-working dates. The holiday
// module satisfies it.
type HolidayDirectory interface {
	NonWorkingDates(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id, comment string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, comment string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
	GetByID(ctx context.Context, actorID, id string) (LeaveResponse, error)
	List(ctx context.Context, actorID, status string) ([]LeaveResponse, error)
	Balance(ctx context.Context, actorID, employeeID string) (BalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory employee.Directory
	holidays  HolidayDirectory
	ledger    employee.BalanceRepository
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory employee.Directory,
	holidays HolidayDirectory,
	ledger employee.BalanceRepository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithClock(db, repo, directory, holidays, ledger, outbox, time.Now, logger...)
}

// NewServiceWithClock injects the clock used for "today" in past-date and
// cross-year checks; tests pin it to a fixed date.
func NewServiceWithClock(
	db *sql.DB,
	repo Repository,
	directory employee.Directory,
	holidays HolidayDirectory,
	ledger employee.BalanceRepository,
	outbox kafka.OutboxRepository,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		holidays:  holidays,
		ledger:    ledger,
		outbox:    outbox,
		now:       now,
		logger:    l,
	}
}

func (s *service) Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if start.After(end) {
		return LeaveResponse{}, leaveerrors.ErrInvalidRange
	}

	today := normalizeDate(s.now())
	if start.Before(today) {
		return LeaveResponse{}, leaveerrors.ErrPastDate
	}
	if start.Year() != today.Year() || end.Year() != today.Year() {
		return LeaveResponse{}, leaveerrors.ErrCrossYearNotAllowed
	}

	emp, err := s.directory.Lookup(ctx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	holidayDates, err := s.holidays.NonWorkingDates(ctx, start, end)
	if err != nil {
		s.logger.Error("apply leave holiday lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	totalDays := CountWorkingDays(start, end, NewDateSet(holidayDates...))
	if totalDays == 0 {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}

	// Advisory check only; the balance is not reserved here. The atomic
	// conditional debit at approval time is the real mutation point.
	balance := emp.Balances[req.LeaveType]
	if balance.Remaining < totalDays {
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance.
			WithDetails("available %d day(s), requested %d", balance.Remaining, totalDays)
	}

	if !durationExempt(req.LeaveType) && totalDays > emp.MaxConsecutiveDays {
		return LeaveResponse{}, leaveerrors.ErrExceedsConsecutiveLimit.
			WithDetails("limit %d day(s), requested %d", emp.MaxConsecutiveDays, totalDays)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.FindActiveByEmployee(ctx, actorID)
	if err != nil {
		s.logger.Error("apply leave active range scan failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if conflict := firstConflict(start, end, active); conflict != nil {
		return LeaveResponse{}, leaveerrors.ErrOverlapConflict.
			WithDetails("conflicts with request %s (%s to %s)",
				conflict.ID.String(),
				conflict.StartDate.Format("2006-01-02"),
				conflict.EndDate.Format("2006-01-02"),
			)
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		IsUrgent:   req.IsUrgent,
		Status:     StatusPending,
		AppliedAt:  s.now().UTC(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		// The (employee, daterange) exclusion constraint backstops the scan
		// above when two applications race past it.
		if isOverlapViolation(err) {
			return LeaveResponse{}, leaveerrors.ErrOverlapConflict
		}
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.enqueueEvent(ctx, tx, events.TypeLeaveSubmitted, l, emp.ManagerID, "")

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", actorID),
		zap.Int("total_days", totalDays),
	)
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id, comment string) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, actorID, id, comment string) (LeaveResponse, error) {
	if comment == "" {
		return LeaveResponse{}, leaveerrors.ErrCommentRequired
	}
	return s.decide(ctx, actorID, id, StatusRejected, comment)
}

// decide runs the pending -> approved/rejected transition. The record row is
// locked FOR UPDATE and the ledger debit is a conditional write, so the whole
// transition either applies fully or not at all.
func (s *service) decide(ctx context.Context, actorID, id, targetStatus, comment string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ledgerTx := s.ledger.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("decide leave fetch failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	if actorID == l.EmployeeID.String() {
		return LeaveResponse{}, leaveerrors.ErrSelfApprovalForbidden
	}

	actor, err := s.directory.Lookup(ctx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}
	owner, err := s.directory.Lookup(ctx, l.EmployeeID.String())
	if err != nil {
		return LeaveResponse{}, err
	}

	switch actor.Role {
	case employee.RoleAdmin:
		// admins approve across departments
	case employee.RoleManager:
		if actor.DepartmentID != owner.DepartmentID {
			return LeaveResponse{}, leaveerrors.ErrOutOfScope
		}
	default:
		return LeaveResponse{}, leaveerrors.ErrOutOfScope
	}

	if targetStatus == StatusApproved {
		remaining, err := ledgerTx.Remaining(ctx, l.EmployeeID.String(), l.LeaveType)
		if err != nil {
			if errors.Is(err, employee.ErrBalanceNotFound) {
				return LeaveResponse{}, leaveerrors.ErrInsufficientBalance.
					WithDetails("available 0 day(s), requested %d", l.TotalDays)
			}
			return LeaveResponse{}, err
		}
		if remaining < l.TotalDays {
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance.
				WithDetails("available %d day(s), requested %d", remaining, l.TotalDays)
		}

		if err := ledgerTx.Debit(ctx, l.EmployeeID.String(), l.LeaveType, l.TotalDays); err != nil {
			if errors.Is(err, employee.ErrInsufficientRemaining) {
				// The conditional write matched no row even though the check
				// inside this transaction passed.
				s.logger.Error("leave debit invariant violated",
					zap.String("leave_id", id),
					zap.String("employee_id", l.EmployeeID.String()),
					zap.Int("days", l.TotalDays),
				)
				return LeaveResponse{}, leaveerrors.ErrLedgerInvariant
			}
			s.logger.Error("decide leave debit failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	now := s.now().UTC()
	l.Status = targetStatus
	l.ApproverID = &actorUUID
	l.ProcessedAt = &now
	if comment != "" {
		l.ManagerComment = &comment
	}

	if err := qtx.UpdateStatus(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	eventType := events.TypeLeaveApproved
	if targetStatus == StatusRejected {
		eventType = events.TypeLeaveRejected
	}
	s.enqueueEvent(ctx, tx, eventType, l, owner.ManagerID, comment)

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.String("approver_id", actorID),
	)
	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ledgerTx := s.ledger.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("cancel leave fetch failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if actorID != l.EmployeeID.String() {
		return LeaveResponse{}, leaveerrors.ErrNotRecordOwner
	}

	switch l.Status {
	case StatusCancelled:
		return LeaveResponse{}, leaveerrors.ErrAlreadyCancelled
	case StatusPending, StatusApproved:
		// cancellable
	default:
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	if l.Status == StatusApproved {
		// Refund exactly what was debited at approval time.
		if err := ledgerTx.Credit(ctx, l.EmployeeID.String(), l.LeaveType, l.TotalDays); err != nil {
			if errors.Is(err, employee.ErrRefundExceedsTaken) {
				s.logger.Error("leave refund invariant violated",
					zap.String("leave_id", id),
					zap.String("employee_id", l.EmployeeID.String()),
					zap.Int("days", l.TotalDays),
				)
				return LeaveResponse{}, leaveerrors.ErrLedgerInvariant
			}
			s.logger.Error("cancel leave refund failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	now := s.now().UTC()
	l.Status = StatusCancelled
	l.ProcessedAt = &now

	if err := qtx.UpdateStatus(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.enqueueEvent(ctx, tx, events.TypeLeaveCancelled, l, "", "")

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if err := s.authorizeRead(ctx, actorID, l.EmployeeID.String()); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, actorID, status string) ([]LeaveResponse, error) {
	actor, err := s.directory.Lookup(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var leaves []Leave
	switch actor.Role {
	case employee.RoleAdmin:
		leaves, err = s.repo.FindAll(ctx, status)
	case employee.RoleManager:
		leaves, err = s.repo.FindAllByDepartment(ctx, actor.DepartmentID, status)
	default:
		leaves, err = s.repo.FindAllByEmployee(ctx, actorID, status)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Balance(ctx context.Context, actorID, employeeID string) (BalanceResponse, error) {
	if err := s.authorizeRead(ctx, actorID, employeeID); err != nil {
		return BalanceResponse{}, err
	}

	emp, err := s.directory.Lookup(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	resp := BalanceResponse{
		EmployeeID:      emp.ID,
		TotalLeaveTaken: emp.TotalLeaveTaken,
		Balances:        make(map[string]BalanceEntry, len(emp.Balances)),
	}
	for leaveType, b := range emp.Balances {
		resp.Balances[leaveType] = BalanceEntry{
			Allocated: b.Allocated,
			Remaining: b.Remaining,
			Taken:     b.Allocated - b.Remaining,
		}
	}
	return resp, nil
}

// authorizeRead allows the employee themselves, a manager in the same
// department, or an admin.
func (s *service) authorizeRead(ctx context.Context, actorID, employeeID string) error {
	if actorID == employeeID {
		return nil
	}

	actor, err := s.directory.Lookup(ctx, actorID)
	if err != nil {
		return err
	}
	switch actor.Role {
	case employee.RoleAdmin:
		return nil
	case employee.RoleManager:
		owner, err := s.directory.Lookup(ctx, employeeID)
		if err != nil {
			return err
		}
		if actor.DepartmentID == owner.DepartmentID {
			return nil
		}
	}
	return leaveerrors.ErrOutOfScope
}

// enqueueEvent records a lifecycle event in the outbox inside the current
// transaction. Failures are logged and swallowed: notification fan-out is
// best-effort and never rolls back a transition.
func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType string, l *Leave, managerID, comment string) {
	if s.outbox == nil {
		return
	}

	event := events.LeaveLifecycleEvent{
		EventType:      eventType,
		LeaveID:        l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		ManagerID:      managerID,
		LeaveType:      l.LeaveType,
		TotalDays:      l.TotalDays,
		Status:         l.Status,
		ManagerComment: comment,
		OccurredAt:     s.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encode leave event failed, event dropped",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("enqueue leave event failed, event dropped",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23P01 exclusion_violation, 23505 unique_violation
		return pgErr.Code == "23P01" || (pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leaves_employee_period")
	}
	return false
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		IsUrgent:   l.IsUrgent,
		Status:     l.Status,
		AppliedAt:  l.AppliedAt.Format(time.RFC3339),
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.ProcessedAt != nil {
		v := l.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	resp.ManagerComment = l.ManagerComment
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
