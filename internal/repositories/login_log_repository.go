package repositories

import (
	"context"

	"dental-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginLogRepository records doctor sign-ins for the account activity view.
type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

func (r *LoginLogRepository) Record(ctx context.Context, log *models.LoginLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO login_logs(doctor_id, login_time, ip_address, user_agent)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		log.DoctorID, log.LoginTime, log.IPAddress, log.UserAgent,
	).Scan(&log.ID, &log.CreatedAt)
}

// Recent returns the latest sign-ins, newest first.
func (r *LoginLogRepository) Recent(ctx context.Context, doctorID, limit int) ([]*models.LoginLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, doctor_id, login_time, ip_address, user_agent, created_at
         FROM login_logs WHERE doctor_id=$1
         ORDER BY login_time DESC LIMIT $2`, doctorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		var entry models.LoginLog
		if err := rows.Scan(&entry.ID, &entry.DoctorID, &entry.LoginTime,
			&entry.IPAddress, &entry.UserAgent, &entry.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &entry)
	}
	return logs, rows.Err()
}
