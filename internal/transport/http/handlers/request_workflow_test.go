package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"smartpro/internal/app/server"
	"smartpro/internal/platform/config"
)

// Full approval journey against a real database. Runs only when
// TEST_DATABASE_URL points at a disposable Postgres instance.
func TestDateRequestApprovalWorkflow(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	adminEmail := "admin-" + suffix + "@test.local"

	cfg := config.Config{
		Addr:                 ":0",
		DatabaseURL:          dbURL,
		JWTSecret:            "test-secret",
		Environment:          "development",
		SeedAdminEmail:       adminEmail,
		SeedAdminPassword:    "admin-password",
		RunMigrations:        true,
		RunSeed:              true,
		MaxBodyBytes:         1 << 20,
		ProjectReminderDays:  3,
		TaskReminderDays:     2,
		ReminderInterval:     0,
		WeeklyReportInterval: 0,
		ReportDir:            t.TempDir(),
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}

	srv := httptest.NewServer(app.Router())
	defer srv.Close()

	adminToken := login(t, srv, adminEmail, "admin-password")

	managerEmail := "manager-" + suffix + "@test.local"
	employeeEmail := "employee-" + suffix + "@test.local"

	managerUserID := createUser(t, srv, adminToken, managerEmail, "project_manager")
	employeeUserID := createUser(t, srv, adminToken, employeeEmail, "employee")

	createEmployee(t, srv, adminToken, managerUserID, "Morgan Vale", managerEmail)
	employeeID := createEmployee(t, srv, adminToken, employeeUserID, "Riley Chen", employeeEmail)

	managerToken := login(t, srv, managerEmail, "password-1")
	employeeToken := login(t, srv, employeeEmail, "password-1")

	// Manager sets up the project.
	projectData := call(t, srv, http.MethodPost, "/api/v1/projects", managerToken, map[string]any{
		"title":            "Platform Migration " + suffix,
		"projectManagerId": managerUserID,
	}, http.StatusCreated)
	projectID := projectData["id"].(string)

	// Employee drafts and submits a date request for the project.
	requestData := call(t, srv, http.MethodPost, "/api/v1/date-requests", employeeToken, map[string]any{
		"employeeId":      employeeID,
		"requestType":     "Project Date Update",
		"projectId":       projectID,
		"fromDate":        "2026-04-01",
		"toDate":          "2026-04-10",
		"reason":          "agreed project window",
		"autoCreateTasks": true,
	}, http.StatusCreated)
	requestID := requestData["id"].(string)
	if requestData["status"] != "Draft" {
		t.Fatalf("new request status = %v", requestData["status"])
	}
	if requestData["totalDays"].(float64) != 10 {
		t.Fatalf("totalDays = %v, want 10", requestData["totalDays"])
	}

	submitted := call(t, srv, http.MethodPost, "/api/v1/date-requests/"+requestID+"/submit", employeeToken, nil, http.StatusOK)
	if submitted["status"] != "Pending Approval" {
		t.Fatalf("submitted status = %v", submitted["status"])
	}
	if submitted["approverId"] != managerUserID {
		t.Fatalf("approver = %v, want manager", submitted["approverId"])
	}

	// The request shows up in the manager's inbox.
	pendingRaw := callRaw(t, srv, http.MethodGet, "/api/v1/date-requests/pending", managerToken, nil, http.StatusOK)
	var pendingList []map[string]any
	decodeData(t, pendingRaw, &pendingList)
	if len(pendingList) == 0 {
		t.Fatal("manager inbox is empty")
	}

	// Approve. Project gets the dates and goes Active, a task is synthesized.
	approved := call(t, srv, http.MethodPost, "/api/v1/date-requests/"+requestID+"/approve", managerToken,
		map[string]any{"comments": "confirmed"}, http.StatusOK)
	if approved["status"] != "Approved" {
		t.Fatalf("approved status = %v", approved["status"])
	}

	projectAfter := call(t, srv, http.MethodGet, "/api/v1/projects/"+projectID, managerToken, nil, http.StatusOK)
	if projectAfter["status"] != "Active" {
		t.Errorf("project status = %v, want Active", projectAfter["status"])
	}
	if projectAfter["startDate"] != "2026-04-01" || projectAfter["endDate"] != "2026-04-10" {
		t.Errorf("project dates = %v..%v", projectAfter["startDate"], projectAfter["endDate"])
	}

	tasksRaw := callRaw(t, srv, http.MethodGet, "/api/v1/tasks?projectId="+projectID, managerToken, nil, http.StatusOK)
	var taskList []map[string]any
	decodeData(t, tasksRaw, &taskList)
	if len(taskList) != 1 {
		t.Fatalf("tasks after approval = %d, want 1", len(taskList))
	}
	if taskList[0]["status"] != "Open" || taskList[0]["priority"] != "Medium" {
		t.Errorf("synthesized task = %v", taskList[0])
	}

	// A second decision attempt conflicts.
	call(t, srv, http.MethodPost, "/api/v1/date-requests/"+requestID+"/reject", managerToken, nil, http.StatusConflict)

	// Terminal requests are immutable.
	call(t, srv, http.MethodPatch, "/api/v1/date-requests/"+requestID, employeeToken,
		map[string]any{"reason": "changed my mind"}, http.StatusConflict)

	// The employee got a decision notification.
	notifRaw := callRaw(t, srv, http.MethodGet, "/api/v1/notifications?unread=true", employeeToken, nil, http.StatusOK)
	var notifList []map[string]any
	decodeData(t, notifRaw, &notifList)
	found := false
	for _, n := range notifList {
		if n["kind"] == "request_decided" {
			found = true
		}
	}
	if !found {
		t.Error("no decision notification for the employee")
	}
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	data := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("no token for %s", email)
	}
	return token
}

func createUser(t *testing.T, srv *httptest.Server, adminToken, email, role string) string {
	t.Helper()
	data := call(t, srv, http.MethodPost, "/api/v1/admin/users", adminToken, map[string]any{
		"email":    email,
		"password": "password-1",
		"role":     role,
	}, http.StatusCreated)
	return data["id"].(string)
}

func createEmployee(t *testing.T, srv *httptest.Server, adminToken, userID, name, email string) string {
	t.Helper()
	data := call(t, srv, http.MethodPost, "/api/v1/admin/employees", adminToken, map[string]any{
		"userId":       userID,
		"employeeName": name,
		"email":        email,
	}, http.StatusCreated)
	return data["id"].(string)
}

// call performs a request and returns the envelope's data object.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body any, wantStatus int) map[string]any {
	t.Helper()
	raw := callRaw(t, srv, method, path, token, body, wantStatus)
	var data map[string]any
	if len(raw) > 0 {
		decodeData(t, raw, &data)
	}
	return data
}

func callRaw(t *testing.T, srv *httptest.Server, method, path, token string, body any, wantStatus int) json.RawMessage {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}

	if resp.StatusCode != wantStatus {
		msg := ""
		if envelope.Error != nil {
			msg = envelope.Error.Message
		}
		t.Fatalf("%s %s: status %d, want %d (%s)", method, path, resp.StatusCode, wantStatus, msg)
	}

	return envelope.Data
}

func decodeData(t *testing.T, raw json.RawMessage, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}
