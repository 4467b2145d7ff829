package models

import "time"

type LoginLog struct {
	ID        int       `json:"id"`
	DoctorID  int       `json:"doctor_id"`
	LoginTime time.Time `json:"login_time"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
