package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"dental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPatientNotFound is returned when no record matches the file ID.
var ErrPatientNotFound = errors.New("patient not found")

// PatientRepository stores patient records. The dental chart and treatment
// plan live in JSONB columns and are replaced wholesale on every write - the
// document-store contract the rest of the code relies on.
type PatientRepository struct {
	DB *pgxpool.Pool
}

func NewPatientRepository(db *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{DB: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *models.Patient) error {
	chart, err := json.Marshal(p.DentalChart)
	if err != nil {
		return err
	}
	plan, err := marshalPlan(p)
	if err != nil {
		return err
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO patients(doctor_id, file_id, name, age, gender, patient_type, dental_chart, treatment_plan)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		p.DoctorID, p.FileID, p.Name, p.Age, p.Gender, p.PatientType, chart, plan,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PatientRepository) GetByFileID(ctx context.Context, doctorID int, fileID string) (*models.Patient, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, doctor_id, file_id, name, age, gender, patient_type,
                dental_chart, treatment_plan, created_at, updated_at
         FROM patients WHERE doctor_id=$1 AND file_id=$2`, doctorID, fileID)

	patient, err := scanPatient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	return patient, err
}

func (r *PatientRepository) List(ctx context.Context, doctorID int) ([]*models.Patient, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, doctor_id, file_id, name, age, gender, patient_type,
                dental_chart, treatment_plan, created_at, updated_at
         FROM patients WHERE doctor_id=$1 ORDER BY created_at DESC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []*models.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, rows.Err()
}

// UpdateInfo changes demographics only; the file ID is immutable.
func (r *PatientRepository) UpdateInfo(ctx context.Context, p *models.Patient) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE patients SET name=$1, age=$2, gender=$3, updated_at=CURRENT_TIMESTAMP
         WHERE doctor_id=$4 AND file_id=$5`,
		p.Name, p.Age, p.Gender, p.DoctorID, p.FileID)
	return err
}

// ReplaceChart writes the full chart document back.
func (r *PatientRepository) ReplaceChart(ctx context.Context, doctorID int, fileID string, chart interface{}) error {
	data, err := json.Marshal(chart)
	if err != nil {
		return err
	}
	tag, err := r.DB.Exec(ctx,
		`UPDATE patients SET dental_chart=$1, updated_at=CURRENT_TIMESTAMP
         WHERE doctor_id=$2 AND file_id=$3`, data, doctorID, fileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// ReplacePlan writes the full treatment plan document back.
func (r *PatientRepository) ReplacePlan(ctx context.Context, doctorID int, fileID string, plan interface{}) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return err
	}
	tag, err := r.DB.Exec(ctx,
		`UPDATE patients SET treatment_plan=$1, updated_at=CURRENT_TIMESTAMP
         WHERE doctor_id=$2 AND file_id=$3`, data, doctorID, fileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func marshalPlan(p *models.Patient) ([]byte, error) {
	if p.TreatmentPlan == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.TreatmentPlan)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPatient decodes one row, validating the stored chart and plan
// documents so malformed records surface as SchemaError on read.
func scanPatient(row rowScanner) (*models.Patient, error) {
	var patient models.Patient
	var chartRaw, planRaw []byte
	err := row.Scan(&patient.ID, &patient.DoctorID, &patient.FileID, &patient.Name,
		&patient.Age, &patient.Gender, &patient.PatientType,
		&chartRaw, &planRaw, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		return nil, err
	}

	patient.DentalChart, err = models.DecodeChart(patient.FileID, chartRaw)
	if err != nil {
		return nil, err
	}
	patient.TreatmentPlan, err = models.DecodePlan(patient.FileID, planRaw)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
