package daterequest

import (
	"context"
	"fmt"
	"log/slog"
)

// Notifier delivers in-app and email notifications. Failures are logged and
// never fail the request operation.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, body, entityType, entityID string) error
}

type Service struct {
	store    StoreAPI
	notifier Notifier
}

func NewService(store StoreAPI, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Create records a new request in Draft. Nothing is routed for approval
// until the owner submits it.
func (s *Service) Create(ctx context.Context, in CreateInput) (DateRequest, error) {
	if in.EmployeeID == "" {
		return DateRequest{}, fmt.Errorf("employeeId is required")
	}
	if !ValidType(in.RequestType) {
		return DateRequest{}, ErrInvalidType
	}

	totalDays, err := CalculateTotalDays(in.FromDate, in.ToDate)
	if err != nil {
		return DateRequest{}, err
	}

	name, err := s.store.EmployeeName(ctx, in.EmployeeID)
	if err != nil {
		return DateRequest{}, err
	}

	r := DateRequest{
		EmployeeID:      in.EmployeeID,
		EmployeeName:    name,
		RequestType:     in.RequestType,
		ProjectID:       in.ProjectID,
		FromDate:        in.FromDate,
		ToDate:          in.ToDate,
		TotalDays:       totalDays,
		Reason:          in.Reason,
		AutoCreateTasks: in.AutoCreateTasks,
		ProjectScope:    in.ProjectScope,
		Status:          StatusDraft,
	}
	if err := s.linkAssignment(ctx, &r); err != nil {
		return DateRequest{}, err
	}
	return s.store.Insert(ctx, r)
}

// linkAssignment attaches the employee's active assignment on the request's
// project. Scope and approver are copied from the assignment only when the
// request does not carry its own values yet.
func (s *Service) linkAssignment(ctx context.Context, r *DateRequest) error {
	if r.ProjectID == "" || r.AssignmentID != "" {
		return nil
	}
	a, found, err := s.store.ActiveAssignment(ctx, r.EmployeeID, r.ProjectID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	r.AssignmentID = a.ID
	if r.ProjectScope == "" {
		r.ProjectScope = a.ProjectScope
	}
	if r.ApproverID == "" {
		r.ApproverID = a.ApproverID
	}
	return nil
}

// OpenForAssignment creates a request already routed for approval, covering
// a freshly created assignment's period. The assignment's approver is used
// when it is someone other than the employee, otherwise the project manager.
func (s *Service) OpenForAssignment(ctx context.Context, employeeID, projectID, assignmentID, startDate, endDate, approverID, projectScope, reason string) (string, error) {
	totalDays, err := CalculateTotalDays(startDate, endDate)
	if err != nil {
		return "", err
	}

	name, err := s.store.EmployeeName(ctx, employeeID)
	if err != nil {
		return "", err
	}

	employeeUserID, err := s.store.EmployeeUserID(ctx, employeeID)
	if err != nil {
		return "", err
	}

	managerID := ""
	if p, err := s.store.Project(ctx, projectID); err == nil {
		managerID = p.ManagerUserID
	}
	approver := ResolveApprover(employeeUserID, approverID, managerID)

	r, err := s.store.Insert(ctx, DateRequest{
		EmployeeID:      employeeID,
		EmployeeName:    name,
		RequestType:     TypeProjectDateUpdate,
		ProjectID:       projectID,
		AssignmentID:    assignmentID,
		FromDate:        startDate,
		ToDate:          endDate,
		TotalDays:       totalDays,
		Reason:          reason,
		AutoCreateTasks: true,
		ProjectScope:    projectScope,
		ApproverID:      approver,
		Status:          StatusPendingApproval,
	})
	if err != nil {
		return "", err
	}

	if approver != "" {
		s.notify(ctx, approver, "request_pending", "Date request awaiting approval",
			fmt.Sprintf("%s requested %s from %s to %s", r.EmployeeName, r.RequestType, r.FromDate, r.ToDate), r.ID)
	}
	return r.ID, nil
}

// Submit moves the owner's Draft to Pending Approval, resolving the approver
// at submit time from the active assignment and the project manager.
func (s *Service) Submit(ctx context.Context, actorUserID, id string) (DateRequest, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return DateRequest{}, err
	}

	ownerUserID, err := s.store.EmployeeUserID(ctx, r.EmployeeID)
	if err != nil {
		return DateRequest{}, err
	}
	if ownerUserID == "" || ownerUserID != actorUserID {
		return DateRequest{}, ErrForbidden
	}

	// An assignment created after the draft still gets linked here, so the
	// approval can propagate dates to it.
	if r.AssignmentID == "" && r.ProjectID != "" {
		linked := r
		if err := s.linkAssignment(ctx, &linked); err != nil {
			return DateRequest{}, err
		}
		if linked.AssignmentID != "" {
			in := UpdateInput{assignmentID: &linked.AssignmentID}
			if r.ProjectScope == "" && linked.ProjectScope != "" {
				in.projectScope = &linked.ProjectScope
			}
			if r, err = s.store.Update(ctx, id, in, 0); err != nil {
				return DateRequest{}, err
			}
		}
	}

	approver, err := s.resolveApprover(ctx, r, ownerUserID)
	if err != nil {
		return DateRequest{}, err
	}

	ok, err := s.store.MarkSubmitted(ctx, id, approver)
	if err != nil {
		return DateRequest{}, err
	}
	if !ok {
		return DateRequest{}, ErrInvalidTransition
	}

	if approver != "" {
		s.notify(ctx, approver, "request_pending", "Date request awaiting approval",
			fmt.Sprintf("%s requested %s from %s to %s", r.EmployeeName, r.RequestType, r.FromDate, r.ToDate), r.ID)
	}

	return s.store.Get(ctx, id)
}

func (s *Service) resolveApprover(ctx context.Context, r DateRequest, ownerUserID string) (string, error) {
	assignmentApprover := ""
	managerID := ""
	if r.ProjectID != "" {
		if a, found, err := s.store.ActiveAssignment(ctx, r.EmployeeID, r.ProjectID); err != nil {
			return "", err
		} else if found {
			assignmentApprover = a.ApproverID
		}
		p, err := s.store.Project(ctx, r.ProjectID)
		if err != nil {
			return "", err
		}
		managerID = p.ManagerUserID
	}
	return ResolveApprover(ownerUserID, assignmentApprover, managerID), nil
}

// Decide approves or rejects a pending request. The transition commits via a
// status-guarded update, so a request already decided by a concurrent call
// fails with ErrInvalidTransition. Approval side effects run after the
// commit; their failure surfaces as a DependencyError while the request
// stays Approved.
func (s *Service) Decide(ctx context.Context, actorUserID string, moderator bool, id string, approve bool, comments string) (DateRequest, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return DateRequest{}, err
	}

	if err := s.authorizeDecision(ctx, r, actorUserID, moderator); err != nil {
		return DateRequest{}, err
	}

	status := StatusRejected
	if approve {
		status = StatusApproved
	}

	ok, err := s.store.MarkDecided(ctx, id, status, comments, actorUserID)
	if err != nil {
		return DateRequest{}, err
	}
	if !ok {
		return DateRequest{}, ErrInvalidTransition
	}

	decided, err := s.store.Get(ctx, id)
	if err != nil {
		return DateRequest{}, err
	}

	ownerUserID, _ := s.store.EmployeeUserID(ctx, r.EmployeeID)
	if ownerUserID != "" && ownerUserID != actorUserID {
		verb := "rejected"
		if approve {
			verb = "approved"
		}
		s.notify(ctx, ownerUserID, "request_decided", "Date request "+verb,
			fmt.Sprintf("Your %s request from %s to %s was %s", r.RequestType, r.FromDate, r.ToDate, verb), r.ID)
	}

	if approve {
		if err := s.applyApproval(ctx, decided, ownerUserID); err != nil {
			return decided, err
		}
	}

	return decided, nil
}

func (s *Service) authorizeDecision(ctx context.Context, r DateRequest, actorUserID string, moderator bool) error {
	if moderator {
		return nil
	}
	if r.ApproverID != "" {
		if r.ApproverID == actorUserID {
			return nil
		}
		return ErrForbidden
	}
	// No approver could be resolved: the owner decides their own request.
	ownerUserID, err := s.store.EmployeeUserID(ctx, r.EmployeeID)
	if err != nil {
		return err
	}
	if ownerUserID != "" && ownerUserID == actorUserID {
		return nil
	}
	return ErrForbidden
}

// applyApproval runs the follow-up actions of an approval. Date propagation
// to the project and the linked assignment happens only for Project Date
// Update requests; the task is synthesized only when the request asked for
// it. Each stage failure is a DependencyError naming the stage.
func (s *Service) applyApproval(ctx context.Context, r DateRequest, ownerUserID string) error {
	if r.ProjectID == "" {
		return nil
	}
	if r.RequestType != TypeProjectDateUpdate && !r.AutoCreateTasks {
		return nil
	}

	p, err := s.store.Project(ctx, r.ProjectID)
	if err != nil {
		return &DependencyError{RequestID: r.ID, Stage: "load project", Err: err}
	}

	if r.RequestType == TypeProjectDateUpdate {
		if err := s.store.UpdateProjectSchedule(ctx, r.ProjectID, r.FromDate, r.ToDate); err != nil {
			return &DependencyError{RequestID: r.ID, Stage: "update project schedule", Err: err}
		}
		if r.AssignmentID != "" {
			if err := s.store.UpdateAssignmentDates(ctx, r.AssignmentID, r.FromDate, r.ToDate); err != nil {
				return &DependencyError{RequestID: r.ID, Stage: "update assignment dates", Err: err}
			}
		}
	}

	if !r.AutoCreateTasks {
		return nil
	}

	title := TaskTitle(p.Title, r.ID)
	exists, err := s.store.TaskExists(ctx, r.ProjectID, title)
	if err != nil {
		return &DependencyError{RequestID: r.ID, Stage: "check task", Err: err}
	}
	if !exists {
		seed := TaskSeed{
			ProjectID:    r.ProjectID,
			Title:        title,
			Description:  fmt.Sprintf("Task created from date request %s for %s.", r.ID, p.Title),
			AssignedTo:   ownerUserID,
			StartDate:    r.FromDate,
			DueDate:      r.ToDate,
			ProjectScope: r.ProjectScope,
		}
		if _, err := s.store.CreateTask(ctx, seed); err != nil {
			return &DependencyError{RequestID: r.ID, Stage: "create task", Err: err}
		}
	}

	return nil
}

// UpdatePending edits a request that has not been decided yet. Terminal
// requests are immutable.
func (s *Service) UpdatePending(ctx context.Context, actorUserID, id string, in UpdateInput) (DateRequest, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return DateRequest{}, err
	}

	ownerUserID, err := s.store.EmployeeUserID(ctx, r.EmployeeID)
	if err != nil {
		return DateRequest{}, err
	}
	if ownerUserID == "" || ownerUserID != actorUserID {
		return DateRequest{}, ErrForbidden
	}
	if Terminal(r.Status) {
		return DateRequest{}, ErrNotEditable
	}

	if in.RequestType != nil && !ValidType(*in.RequestType) {
		return DateRequest{}, ErrInvalidType
	}

	from := r.FromDate
	to := r.ToDate
	if in.FromDate != nil {
		from = *in.FromDate
	}
	if in.ToDate != nil {
		to = *in.ToDate
	}
	totalDays, err := CalculateTotalDays(from, to)
	if err != nil {
		return DateRequest{}, err
	}

	// Moving the request to another project invalidates the linked
	// assignment; relink against the new project.
	if in.ProjectID != nil && *in.ProjectID != r.ProjectID {
		relink := DateRequest{EmployeeID: r.EmployeeID, ProjectID: *in.ProjectID}
		if err := s.linkAssignment(ctx, &relink); err != nil {
			return DateRequest{}, err
		}
		in.assignmentID = &relink.AssignmentID
		if relink.ProjectScope != "" {
			in.projectScope = &relink.ProjectScope
		}
	}

	return s.store.Update(ctx, id, in, totalDays)
}

func (s *Service) Get(ctx context.Context, id string) (DateRequest, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]DateRequest, error) {
	return s.store.ListForEmployee(ctx, employeeID, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, status string, limit, offset int) ([]DateRequest, error) {
	return s.store.ListAll(ctx, status, limit, offset)
}

func (s *Service) PendingForApprover(ctx context.Context, approverUserID string, limit, offset int) ([]DateRequest, error) {
	return s.store.PendingForApprover(ctx, approverUserID, limit, offset)
}

func (s *Service) notify(ctx context.Context, userID, kind, title, body, requestID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, kind, title, body, "date_request", requestID); err != nil {
		slog.Warn("failed to send date request notification",
			"userId", userID, "requestId", requestID, "error", err)
	}
}
