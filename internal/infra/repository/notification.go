package repository

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	jobStatusQueued = "queued"
	jobStatusSent   = "sent"
	jobStatusFailed = "failed"
)

const (
	createJobSQL = `
		INSERT INTO notification_jobs (id, kind, topic, message_key, payload, status, attempts, run_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $8)`

	claimDueJobsSQL = `
		SELECT id, kind, topic, message_key, payload, run_at, attempts, created_at
		FROM notification_jobs
		WHERE status = $1 AND run_at <= $2
		ORDER BY run_at
		LIMIT $3
		FOR UPDATE SKIP LOCKED`

	markJobSQL = `
		UPDATE notification_jobs
		SET status = $2, attempts = COALESCE($3, attempts), run_at = COALESCE($4, run_at), last_error = $5, sent_at = $6, updated_at = now()
		WHERE id = $1`
)

type NotificationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewNotificationRepository(dbtx db.DBTX, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{db: dbtx, logger: logger}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, job shared.NotificationJob) error {
	_, err := r.db.Exec(ctx, createJobSQL,
		job.ID, string(job.Kind), job.Topic, job.Key, job.Payload, jobStatusQueued,
		pgconv.TimeToPgtype(job.RunAt), pgconv.TimeToPgtype(job.CreatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgErr(err), "failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := r.db.Query(ctx, claimDueJobsSQL, jobStatusQueued, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.NotificationJob
	for rows.Next() {
		var (
			job            shared.NotificationJob
			kind           string
			runAt, created pgtype.Timestamptz
			attempts       int32
		)
		if err := rows.Scan(&job.ID, &kind, &job.Topic, &job.Key, &job.Payload, &runAt, &attempts, &created); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan notification job", err)
		}
		job.Kind = shared.NotificationKind(kind)
		job.RunAt = pgconv.TimeFromPgtype(runAt)
		job.CreatedAt = pgconv.TimeFromPgtype(created)
		job.Attempts = int(attempts)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.mark(ctx, id, jobStatusSent, nil, pgtype.Timestamptz{}, pgtype.Text{}, pgconv.TimeToPgtype(at))
}

func (r *NotificationRepository) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, runAt time.Time, lastErr string) error {
	return r.mark(ctx, id, jobStatusQueued, &attempts, pgconv.TimeToPgtype(runAt), pgtype.Text{String: lastErr, Valid: true}, pgtype.Timestamptz{})
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error {
	return r.mark(ctx, id, jobStatusFailed, &attempts, pgtype.Timestamptz{}, pgtype.Text{String: lastErr, Valid: true}, pgtype.Timestamptz{})
}

// A nil attempts keeps the stored count.
func (r *NotificationRepository) mark(
	ctx context.Context,
	id uuid.UUID,
	status string,
	attempts *int,
	runAt pgtype.Timestamptz,
	lastErr pgtype.Text,
	sentAt pgtype.Timestamptz,
) error {
	tag, err := r.db.Exec(ctx, markJobSQL, id, status, attempts, runAt, lastErr, sentAt)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update notification job", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "notification job not found", nil)
	}
	return nil
}
