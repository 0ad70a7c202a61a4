package model

import "time"

type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientList struct {
	Patients []Patient `json:"patients"`
}

type Note struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteList struct {
	Notes []Note `json:"notes"`
}
