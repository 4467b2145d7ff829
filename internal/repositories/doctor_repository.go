package repositories

import (
	"context"

	"dental-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DoctorRepository struct {
	DB *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{DB: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *models.Doctor) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO doctors(name, email, password_hash, is_active)
         VALUES($1, $2, $3, TRUE)
         RETURNING id, created_at, updated_at`,
		d.Name, d.Email, d.PasswordHash,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DoctorRepository) Get(ctx context.Context, id int) (*models.Doctor, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, COALESCE(alert_email, '') as alert_email,
                totp_enabled, is_active, created_at, updated_at
         FROM doctors WHERE id=$1`, id)

	var doctor models.Doctor
	err := row.Scan(&doctor.ID, &doctor.Name, &doctor.Email, &doctor.PasswordHash,
		&doctor.AlertEmail, &doctor.TOTPEnabled, &doctor.IsActive, &doctor.CreatedAt, &doctor.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, email, password_hash, COALESCE(alert_email, '') as alert_email,
                totp_enabled, is_active, created_at, updated_at
         FROM doctors WHERE email=$1`, email)

	var doctor models.Doctor
	err := row.Scan(&doctor.ID, &doctor.Name, &doctor.Email, &doctor.PasswordHash,
		&doctor.AlertEmail, &doctor.TOTPEnabled, &doctor.IsActive, &doctor.CreatedAt, &doctor.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepository) Update(ctx context.Context, d *models.Doctor) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE doctors SET name=$1, email=$2, password_hash=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		d.Name, d.Email, d.PasswordHash, d.ID)
	return err
}

// SetAlertEmail stores the inventory alert address; an empty value disables
// email alerts.
func (r *DoctorRepository) SetAlertEmail(ctx context.Context, id int, email string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE doctors SET alert_email=NULLIF($1, ''), updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		email, id)
	return err
}

func (r *DoctorRepository) SetTOTPSecret(ctx context.Context, id int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE doctors SET totp_secret=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		secret, id)
	return err
}

func (r *DoctorRepository) GetTOTPSecret(ctx context.Context, id int) (string, error) {
	var secret string
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(totp_secret, '') FROM doctors WHERE id=$1`, id).Scan(&secret)
	return secret, err
}

func (r *DoctorRepository) SetTOTPEnabled(ctx context.Context, id int, enabled bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE doctors SET totp_enabled=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		enabled, id)
	return err
}
