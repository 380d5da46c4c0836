package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is the document stored in the "students" collection.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	NIM          string             `bson:"nim"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	StudyProgram string             `bson:"study_program"`
	Semester     int                `bson:"semester"`
	GPA          float64            `bson:"gpa"`
	CreatedBy    string             `bson:"created_by"`
	GUID         string             `bson:"guid"`
	Version      int64              `bson:"version"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
	DeletedAt    *time.Time         `bson:"deleted_at"`
	IsDeleted    bool               `bson:"is_deleted"`
}

// StudentCreate is the payload for POST /students/create. Semester and GPA are
// pointers so that "required" can reject a missing field without also
// rejecting legitimate zero values (a 0.0 GPA is valid input).
type StudentCreate struct {
	NIM          string   `json:"nim" validate:"required,min=8,max=15"`
	Name         string   `json:"name" validate:"required,min=3,max=100"`
	Email        string   `json:"email" validate:"required,email"`
	StudyProgram string   `json:"study_program" validate:"required,min=3,max=100"`
	Semester     *int     `json:"semester" validate:"required,gte=1,lte=14"`
	GPA          *float64 `json:"gpa" validate:"required,gte=0,lte=4"`
}

// StudentUpdate is the patch payload for PUT /students/{id}.
type StudentUpdate struct {
	Name         *string  `json:"name" validate:"omitempty,min=3,max=100"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	StudyProgram *string  `json:"study_program" validate:"omitempty,min=3,max=100"`
	Semester     *int     `json:"semester" validate:"omitempty,gte=1,lte=14"`
	GPA          *float64 `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	Version      *int64   `json:"version"`
}

// StudentFilter narrows GET /students/ listings.
type StudentFilter struct {
	StudyProgram string
	Semester     *int
}

// StudentResponse is the outbound representation of a Student.
type StudentResponse struct {
	ID           string     `json:"id"`
	NIM          string     `json:"nim"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	StudyProgram string     `json:"study_program"`
	Semester     int        `json:"semester"`
	GPA          float64    `json:"gpa"`
	CreatedBy    string     `json:"created_by"`
	GUID         string     `json:"guid"`
	Version      int64      `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// StudentList is the data block returned by GET /students/.
type StudentList struct {
	Items []*StudentResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int64              `json:"page"`
	Size  int64              `json:"size"`
}

// ToResponse maps the stored document to its outbound representation.
func (s *Student) ToResponse() *StudentResponse {
	return &StudentResponse{
		ID:           s.ID.Hex(),
		NIM:          s.NIM,
		Name:         s.Name,
		Email:        s.Email,
		StudyProgram: s.StudyProgram,
		Semester:     s.Semester,
		GPA:          s.GPA,
		CreatedBy:    s.CreatedBy,
		GUID:         s.GUID,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		DeletedAt:    s.DeletedAt,
	}
}
