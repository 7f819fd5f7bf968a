package daterequest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
)

type fakeStore struct {
	requests        map[string]*DateRequest
	nextID          int
	employees       map[string]string // employee id -> user id
	names           map[string]string // employee id -> name
	projects        map[string]ProjectRef
	assignments     map[string]AssignmentRef // employee|project -> ref
	tasks           []TaskSeed
	taskErr         error
	projectErr      error
	scheduleErr     error
	projectDates    map[string][2]string
	assignmentDates map[string][2]string
	activated       map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests:        map[string]*DateRequest{},
		employees:       map[string]string{},
		names:           map[string]string{},
		projects:        map[string]ProjectRef{},
		assignments:     map[string]AssignmentRef{},
		projectDates:    map[string][2]string{},
		assignmentDates: map[string][2]string{},
		activated:       map[string]bool{},
	}
}

func (f *fakeStore) Insert(_ context.Context, r DateRequest) (DateRequest, error) {
	f.nextID++
	r.ID = "req-" + strconv.Itoa(f.nextID)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := r
	f.requests[r.ID] = &cp
	return r, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (DateRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return DateRequest{}, ErrNotFound
	}
	return *r, nil
}

func (f *fakeStore) Update(_ context.Context, id string, in UpdateInput, totalDays int) (DateRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return DateRequest{}, ErrNotFound
	}
	if in.RequestType != nil {
		r.RequestType = *in.RequestType
	}
	if in.FromDate != nil {
		r.FromDate = *in.FromDate
	}
	if in.ToDate != nil {
		r.ToDate = *in.ToDate
	}
	if in.Reason != nil {
		r.Reason = *in.Reason
	}
	if in.ProjectID != nil {
		r.ProjectID = *in.ProjectID
	}
	if in.assignmentID != nil {
		r.AssignmentID = *in.assignmentID
	}
	if in.projectScope != nil {
		r.ProjectScope = *in.projectScope
	}
	if totalDays > 0 {
		r.TotalDays = totalDays
	}
	return *r, nil
}

func (f *fakeStore) MarkSubmitted(_ context.Context, id, approverID string) (bool, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != StatusDraft {
		return false, nil
	}
	r.Status = StatusPendingApproval
	r.ApproverID = approverID
	return true, nil
}

func (f *fakeStore) MarkDecided(_ context.Context, id, status, comments, decidedBy string) (bool, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != StatusPendingApproval {
		return false, nil
	}
	r.Status = status
	r.Comments = comments
	r.DecidedBy = decidedBy
	return true, nil
}

func (f *fakeStore) ListForEmployee(_ context.Context, employeeID string, _, _ int) ([]DateRequest, error) {
	var out []DateRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context, status string, _, _ int) ([]DateRequest, error) {
	var out []DateRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) PendingForApprover(_ context.Context, approverUserID string, _, _ int) ([]DateRequest, error) {
	var out []DateRequest
	for _, r := range f.requests {
		if r.ApproverID == approverUserID && r.Status == StatusPendingApproval {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) EmployeeUserID(_ context.Context, employeeID string) (string, error) {
	return f.employees[employeeID], nil
}

func (f *fakeStore) EmployeeName(_ context.Context, employeeID string) (string, error) {
	return f.names[employeeID], nil
}

func (f *fakeStore) Project(_ context.Context, projectID string) (ProjectRef, error) {
	if f.projectErr != nil {
		return ProjectRef{}, f.projectErr
	}
	p, ok := f.projects[projectID]
	if !ok {
		return ProjectRef{}, errors.New("project not found")
	}
	return p, nil
}

func (f *fakeStore) ActiveAssignment(_ context.Context, employeeID, projectID string) (AssignmentRef, bool, error) {
	a, ok := f.assignments[employeeID+"|"+projectID]
	return a, ok, nil
}

func (f *fakeStore) UpdateProjectSchedule(_ context.Context, projectID, fromDate, toDate string) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.projectDates[projectID] = [2]string{fromDate, toDate}
	f.activated[projectID] = true
	p := f.projects[projectID]
	p.Status = "Active"
	f.projects[projectID] = p
	return nil
}

func (f *fakeStore) UpdateAssignmentDates(_ context.Context, assignmentID, fromDate, toDate string) error {
	f.assignmentDates[assignmentID] = [2]string{fromDate, toDate}
	return nil
}

func (f *fakeStore) TaskExists(_ context.Context, projectID, title string) (bool, error) {
	for _, t := range f.tasks {
		if t.ProjectID == projectID && t.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateTask(_ context.Context, seed TaskSeed) (string, error) {
	if f.taskErr != nil {
		return "", f.taskErr
	}
	f.tasks = append(f.tasks, seed)
	return fmt.Sprintf("task-%d", len(f.tasks)), nil
}

type recordingNotifier struct {
	sent []string
}

func (n *recordingNotifier) Notify(_ context.Context, userID, kind, _, _, _, _ string) error {
	n.sent = append(n.sent, userID+":"+kind)
	return nil
}

func setupService() (*Service, *fakeStore, *recordingNotifier) {
	store := newFakeStore()
	store.employees["emp-1"] = "user-emp"
	store.names["emp-1"] = "Jordan Blake"
	store.projects["proj-1"] = ProjectRef{ID: "proj-1", Title: "Website Relaunch", Status: "Planning", ManagerUserID: "user-mgr"}
	notifier := &recordingNotifier{}
	return NewService(store, notifier), store, notifier
}

func createPending(t *testing.T, svc *Service, store *fakeStore) DateRequest {
	t.Helper()
	r, err := svc.Create(context.Background(), CreateInput{
		EmployeeID:      "emp-1",
		RequestType:     TypeProjectDateUpdate,
		ProjectID:       "proj-1",
		FromDate:        "2026-04-01",
		ToDate:          "2026-04-10",
		Reason:          "schedule confirmation",
		AutoCreateTasks: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	r, err = svc.Submit(context.Background(), "user-emp", r.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return r
}

func TestCreateStartsInDraft(t *testing.T) {
	svc, _, _ := setupService()

	r, err := svc.Create(context.Background(), CreateInput{
		EmployeeID:  "emp-1",
		RequestType: TypeLeave,
		FromDate:    "2026-05-04",
		ToDate:      "2026-05-08",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Status != StatusDraft {
		t.Errorf("status = %q, want Draft", r.Status)
	}
	if r.TotalDays != 5 {
		t.Errorf("totalDays = %d, want 5", r.TotalDays)
	}
	if r.EmployeeName != "Jordan Blake" {
		t.Errorf("employeeName = %q", r.EmployeeName)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _, _ := setupService()

	_, err := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-1", RequestType: "Vacation", FromDate: "2026-05-04", ToDate: "2026-05-08",
	})
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("unknown type: got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-1", RequestType: TypeLeave, FromDate: "2026-05-08", ToDate: "2026-05-04",
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("inverted range: got %v", err)
	}
}

func TestSubmitRoutesToProjectManager(t *testing.T) {
	svc, store, notifier := setupService()

	r := createPending(t, svc, store)
	if r.Status != StatusPendingApproval {
		t.Fatalf("status = %q, want Pending Approval", r.Status)
	}
	if r.ApproverID != "user-mgr" {
		t.Fatalf("approver = %q, want user-mgr", r.ApproverID)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "user-mgr:request_pending" {
		t.Fatalf("notifications = %v", notifier.sent)
	}
}

func TestSubmitPrefersAssignmentApprover(t *testing.T) {
	svc, store, _ := setupService()
	store.assignments["emp-1|proj-1"] = AssignmentRef{ID: "asg-1", ApproverID: "user-lead"}

	r := createPending(t, svc, store)
	if r.ApproverID != "user-lead" {
		t.Fatalf("approver = %q, want user-lead", r.ApproverID)
	}
}

func TestSubmitOnlyByOwner(t *testing.T) {
	svc, _, _ := setupService()

	r, _ := svc.Create(context.Background(), CreateInput{
		EmployeeID: "emp-1", RequestType: TypeLeave, FromDate: "2026-05-04", ToDate: "2026-05-08",
	})
	if _, err := svc.Submit(context.Background(), "user-other", r.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("submit by stranger: got %v, want ErrForbidden", err)
	}
}

func TestSubmitTwiceFails(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	if _, err := svc.Submit(context.Background(), "user-emp", r.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second submit: got %v, want ErrInvalidTransition", err)
	}
}

func TestApproveRunsSideEffects(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	decided, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, "looks good")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Errorf("status = %q, want Approved", decided.Status)
	}

	if dates := store.projectDates["proj-1"]; dates != [2]string{"2026-04-01", "2026-04-10"} {
		t.Errorf("project dates = %v", dates)
	}
	if !store.activated["proj-1"] {
		t.Error("planning project was not activated")
	}

	if len(store.tasks) != 1 {
		t.Fatalf("tasks created = %d, want 1", len(store.tasks))
	}
	task := store.tasks[0]
	if task.Title != "Website Relaunch - "+r.ID {
		t.Errorf("task title = %q", task.Title)
	}
	if task.AssignedTo != "user-emp" {
		t.Errorf("task assignee = %q", task.AssignedTo)
	}
	if task.StartDate != "2026-04-01" || task.DueDate != "2026-04-10" {
		t.Errorf("task dates = %s..%s", task.StartDate, task.DueDate)
	}
	want := fmt.Sprintf("Task created from date request %s for Website Relaunch.", r.ID)
	if task.Description != want {
		t.Errorf("task description = %q, want %q", task.Description, want)
	}
}

func TestApproveLeaveLeavesProjectUntouched(t *testing.T) {
	svc, store, _ := setupService()

	r, err := svc.Create(context.Background(), CreateInput{
		EmployeeID:  "emp-1",
		RequestType: TypeLeave,
		ProjectID:   "proj-1",
		FromDate:    "2026-07-01",
		ToDate:      "2026-07-05",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "user-emp", r.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, "")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Fatalf("status = %q, want Approved", decided.Status)
	}
	if len(store.projectDates) != 0 {
		t.Errorf("leave approval rewrote project dates: %v", store.projectDates)
	}
	if store.activated["proj-1"] {
		t.Error("leave approval activated the project")
	}
	if len(store.tasks) != 0 {
		t.Errorf("leave approval synthesized %d task(s)", len(store.tasks))
	}
}

func TestApproveWithoutTaskFlagSkipsTask(t *testing.T) {
	svc, store, _ := setupService()

	r, err := svc.Create(context.Background(), CreateInput{
		EmployeeID:  "emp-1",
		RequestType: TypeProjectDateUpdate,
		ProjectID:   "proj-1",
		FromDate:    "2026-04-01",
		ToDate:      "2026-04-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "user-emp", r.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}

	if dates := store.projectDates["proj-1"]; dates != [2]string{"2026-04-01", "2026-04-10"} {
		t.Errorf("project dates = %v", dates)
	}
	if len(store.tasks) != 0 {
		t.Errorf("task synthesized without the flag, tasks = %d", len(store.tasks))
	}
}

func TestApproveReactivatesOnHoldProject(t *testing.T) {
	svc, store, _ := setupService()
	store.projects["proj-1"] = ProjectRef{ID: "proj-1", Title: "Website Relaunch", Status: "On Hold", ManagerUserID: "user-mgr"}

	r := createPending(t, svc, store)
	if _, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if !store.activated["proj-1"] {
		t.Error("on hold project was not reactivated")
	}
}

func TestCreateLinksActiveAssignment(t *testing.T) {
	svc, store, _ := setupService()
	store.assignments["emp-1|proj-1"] = AssignmentRef{ID: "asg-9", ApproverID: "user-lead", ProjectScope: "Backend APIs"}

	r := createPending(t, svc, store)
	if r.AssignmentID != "asg-9" {
		t.Fatalf("assignmentId = %q, want asg-9", r.AssignmentID)
	}
	if r.ProjectScope != "Backend APIs" {
		t.Fatalf("projectScope = %q, want copied from assignment", r.ProjectScope)
	}

	if _, err := svc.Decide(context.Background(), "user-lead", false, r.ID, true, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if dates := store.assignmentDates["asg-9"]; dates != [2]string{"2026-04-01", "2026-04-10"} {
		t.Errorf("assignment dates = %v, want the approved period", dates)
	}
	if len(store.tasks) != 1 || store.tasks[0].ProjectScope != "Backend APIs" {
		t.Errorf("task scope not copied, tasks = %+v", store.tasks)
	}
}

func TestSubmitLinksAssignmentCreatedAfterDraft(t *testing.T) {
	svc, store, _ := setupService()

	r, err := svc.Create(context.Background(), CreateInput{
		EmployeeID:      "emp-1",
		RequestType:     TypeProjectDateUpdate,
		ProjectID:       "proj-1",
		FromDate:        "2026-04-01",
		ToDate:          "2026-04-10",
		AutoCreateTasks: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.AssignmentID != "" {
		t.Fatalf("draft linked before any assignment existed: %q", r.AssignmentID)
	}

	store.assignments["emp-1|proj-1"] = AssignmentRef{ID: "asg-2", ApproverID: "user-lead", ProjectScope: "Frontend"}
	r, err = svc.Submit(context.Background(), "user-emp", r.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.AssignmentID != "asg-2" {
		t.Fatalf("assignmentId = %q, want asg-2", r.AssignmentID)
	}
	if r.ProjectScope != "Frontend" {
		t.Errorf("projectScope = %q, want Frontend", r.ProjectScope)
	}
}

func TestApproveIsIdempotentOnTask(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	store.tasks = append(store.tasks, TaskSeed{ProjectID: "proj-1", Title: "Website Relaunch - " + r.ID})

	if _, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if len(store.tasks) != 1 {
		t.Fatalf("duplicate task created, tasks = %d", len(store.tasks))
	}
}

func TestRejectSkipsSideEffects(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	decided, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, false, "dates clash")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != StatusRejected {
		t.Errorf("status = %q, want Rejected", decided.Status)
	}
	if decided.Comments != "dates clash" {
		t.Errorf("comments = %q", decided.Comments)
	}
	if len(store.tasks) != 0 {
		t.Error("rejection created a task")
	}
	if len(store.projectDates) != 0 {
		t.Error("rejection touched project dates")
	}
}

func TestDecideTwiceFails(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	if _, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, ""); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	if _, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, false, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second decide: got %v, want ErrInvalidTransition", err)
	}
}

func TestDecideAuthorization(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	if _, err := svc.Decide(context.Background(), "user-random", false, r.ID, true, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger decide: got %v, want ErrForbidden", err)
	}

	// Moderators may decide regardless of the routed approver.
	if _, err := svc.Decide(context.Background(), "user-hr", true, r.ID, true, ""); err != nil {
		t.Fatalf("moderator decide: %v", err)
	}
}

func TestSelfApprovalWhenNoApprover(t *testing.T) {
	svc, store, _ := setupService()
	// The employee manages the project themselves, so nobody else can approve.
	store.projects["proj-1"] = ProjectRef{ID: "proj-1", Title: "Website Relaunch", Status: "Planning", ManagerUserID: "user-emp"}

	r := createPending(t, svc, store)
	if r.ApproverID != "" {
		t.Fatalf("approver = %q, want unset", r.ApproverID)
	}

	decided, err := svc.Decide(context.Background(), "user-emp", false, r.ID, true, "")
	if err != nil {
		t.Fatalf("self approval: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Errorf("status = %q", decided.Status)
	}
}

func TestApprovalSideEffectFailureKeepsApproved(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	store.taskErr = errors.New("insert failed")

	_, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, "")
	var dep *DependencyError
	if !errors.As(err, &dep) {
		t.Fatalf("got %v, want DependencyError", err)
	}
	if dep.Stage != "create task" {
		t.Errorf("stage = %q", dep.Stage)
	}

	got, _ := svc.Get(context.Background(), r.ID)
	if got.Status != StatusApproved {
		t.Errorf("status after side effect failure = %q, want Approved", got.Status)
	}
}

func TestOpenForAssignment(t *testing.T) {
	svc, _, notifier := setupService()

	id, err := svc.OpenForAssignment(context.Background(),
		"emp-1", "proj-1", "asg-1", "2026-06-01", "2026-06-30", "user-lead", "Backend APIs",
		"Project assignment as Developer at 50% allocation")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	r, _ := svc.Get(context.Background(), id)
	if r.Status != StatusPendingApproval {
		t.Errorf("status = %q, want Pending Approval", r.Status)
	}
	if r.RequestType != TypeProjectDateUpdate {
		t.Errorf("type = %q", r.RequestType)
	}
	if !r.AutoCreateTasks {
		t.Error("assignment request did not ask for task synthesis")
	}
	if r.ProjectScope != "Backend APIs" {
		t.Errorf("projectScope = %q", r.ProjectScope)
	}
	if r.ApproverID != "user-lead" {
		t.Errorf("approver = %q, want user-lead", r.ApproverID)
	}
	if r.TotalDays != 30 {
		t.Errorf("totalDays = %d, want 30", r.TotalDays)
	}
	if r.AssignmentID != "asg-1" {
		t.Errorf("assignmentId = %q", r.AssignmentID)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("notifications = %v", notifier.sent)
	}
}

func TestOpenForAssignmentSelfApproverFallsBackToManager(t *testing.T) {
	svc, _, _ := setupService()

	id, err := svc.OpenForAssignment(context.Background(),
		"emp-1", "proj-1", "asg-1", "2026-06-01", "2026-06-30", "user-emp", "", "reason")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r, _ := svc.Get(context.Background(), id)
	if r.ApproverID != "user-mgr" {
		t.Fatalf("approver = %q, want user-mgr", r.ApproverID)
	}
}

func TestUpdatePending(t *testing.T) {
	svc, store, _ := setupService()

	r := createPending(t, svc, store)
	to := "2026-04-15"
	updated, err := svc.UpdatePending(context.Background(), "user-emp", r.ID, UpdateInput{ToDate: &to})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.TotalDays != 15 {
		t.Errorf("totalDays = %d, want 15", updated.TotalDays)
	}

	if _, err := svc.UpdatePending(context.Background(), "user-other", r.ID, UpdateInput{ToDate: &to}); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger update: got %v", err)
	}

	if _, err := svc.Decide(context.Background(), "user-mgr", false, r.ID, true, ""); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if _, err := svc.UpdatePending(context.Background(), "user-emp", r.ID, UpdateInput{ToDate: &to}); !errors.Is(err, ErrNotEditable) {
		t.Errorf("update after approval: got %v, want ErrNotEditable", err)
	}
}
