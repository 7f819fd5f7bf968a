package daterequest

import (
	"errors"
	"time"
)

var validTypes = map[string]bool{
	TypeProjectDateUpdate: true,
	TypeLeave:             true,
	TypeWorkFromHome:      true,
	TypeTraining:          true,
	TypeTimeOff:           true,
	TypeOvertime:          true,
}

func ValidType(requestType string) bool {
	return validTypes[requestType]
}

// CalculateTotalDays returns the inclusive day count of the request period.
// A single-day request (from == to) counts as one day.
func CalculateTotalDays(fromDate, toDate string) (int, error) {
	from, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		return 0, errors.New("invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", toDate)
	if err != nil {
		return 0, errors.New("invalid to date, expected YYYY-MM-DD")
	}
	if from.After(to) {
		return 0, ErrInvalidDateRange
	}
	return int(to.Sub(from).Hours()/24) + 1, nil
}

// ResolveApprover picks who must approve a request. The assignment's approver
// wins unless it is the requester; the project manager is the fallback under
// the same rule. An empty result means nobody else is responsible and the
// requester may approve their own request.
func ResolveApprover(employeeUserID, assignmentApproverID, projectManagerID string) string {
	if assignmentApproverID != "" && assignmentApproverID != employeeUserID {
		return assignmentApproverID
	}
	if projectManagerID != "" && projectManagerID != employeeUserID {
		return projectManagerID
	}
	return ""
}

// TaskTitle is the deterministic title of the task synthesized on approval.
// The request id in the title is what makes re-approval attempts idempotent.
func TaskTitle(projectTitle, requestID string) string {
	return projectTitle + " - " + requestID
}

// Terminal reports whether a status accepts no further transitions.
func Terminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
