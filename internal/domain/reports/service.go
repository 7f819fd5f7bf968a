package reports

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"smartpro/internal/domain/notifications"
)

type Service struct {
	store     *Store
	notifier  *notifications.Service
	reportDir string
}

func NewService(db *pgxpool.Pool, notifier *notifications.Service, reportDir string) *Service {
	return &Service{
		store:     NewStore(db),
		notifier:  notifier,
		reportDir: reportDir,
	}
}

func (s *Service) Dashboard(ctx context.Context, userID, employeeID string) (Dashboard, error) {
	return s.store.Dashboard(ctx, userID, employeeID)
}

// WeeklyManagerReports renders a PDF status digest per manager and notifies
// them. Returns a summary for the job log.
func (s *Service) WeeklyManagerReports(ctx context.Context) (string, error) {
	digests, err := s.store.ManagerDigests(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	generated := 0
	for _, d := range digests {
		path := filepath.Join(s.reportDir,
			fmt.Sprintf("weekly-%s-%s.pdf", d.ManagerUserID, time.Now().Format("2006-01-02")))
		if err := WriteDigestPDF(path, d, time.Now()); err != nil {
			slog.Warn("failed to generate weekly report", "managerId", d.ManagerUserID, "error", err)
			continue
		}
		generated++

		title := "Weekly project status report"
		body := fmt.Sprintf("Your weekly status report covering %d project(s) is ready: %s", len(d.Projects), path)
		if err := s.notifier.Notify(ctx, d.ManagerUserID, notifications.KindWeeklyReport, title, body, "report", ""); err != nil {
			slog.Warn("failed to notify manager about weekly report", "managerId", d.ManagerUserID, "error", err)
		}
	}

	return fmt.Sprintf("weekly reports generated: %d of %d", generated, len(digests)), nil
}
