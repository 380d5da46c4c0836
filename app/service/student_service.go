package service

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"uas_backend/app/model"
)

// StudentRepository is the slice of the versioned record store the student
// service needs. Satisfied by *repository.VersionedRepository[model.Student].
type StudentRepository interface {
	Create(ctx context.Context, doc bson.M) (*model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, skip, limit int64, filter bson.M) ([]model.Student, int64, error)
	Update(ctx context.Context, id string, patch bson.M, expectedVersion *int64) (*model.Student, error)
	SoftDelete(ctx context.Context, id string) error
}

type StudentService interface {
	Create(ctx context.Context, req model.StudentCreate, createdBy string) (*model.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*model.StudentResponse, error)
	List(ctx context.Context, skip, limit int64, filter model.StudentFilter) (*model.StudentList, error)
	Update(ctx context.Context, id string, req model.StudentUpdate) (*model.StudentResponse, error)
	Delete(ctx context.Context, id string) error
}

type StudentServiceImpl struct {
	repo StudentRepository
}

func NewStudentService(repo StudentRepository) StudentService {
	return &StudentServiceImpl{repo: repo}
}

// Create persists a new student record stamped with the authenticated user
// who created it. NIM uniqueness among non-deleted students is the store's
// partial unique index, not an application-level check.
func (s *StudentServiceImpl) Create(ctx context.Context, req model.StudentCreate, createdBy string) (*model.StudentResponse, error) {
	doc := bson.M{
		"nim":           req.NIM,
		"name":          req.Name,
		"email":         req.Email,
		"study_program": req.StudyProgram,
		"semester":      *req.Semester,
		"gpa":           *req.GPA,
		"created_by":    createdBy,
		"guid":          "STUDENT-" + uuid.NewString(),
	}

	student, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	return student.ToResponse(), nil
}

func (s *StudentServiceImpl) GetByID(ctx context.Context, id string) (*model.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return student.ToResponse(), nil
}

func (s *StudentServiceImpl) List(ctx context.Context, skip, limit int64, filter model.StudentFilter) (*model.StudentList, error) {
	query := bson.M{}
	if filter.StudyProgram != "" {
		query["study_program"] = filter.StudyProgram
	}
	if filter.Semester != nil {
		query["semester"] = *filter.Semester
	}

	students, total, err := s.repo.List(ctx, skip, limit, query)
	if err != nil {
		return nil, err
	}

	items := make([]*model.StudentResponse, 0, len(students))
	for i := range students {
		items = append(items, students[i].ToResponse())
	}

	return &model.StudentList{
		Items: items,
		Total: total,
		Page:  skip/limit + 1,
		Size:  limit,
	}, nil
}

func (s *StudentServiceImpl) Update(ctx context.Context, id string, req model.StudentUpdate) (*model.StudentResponse, error) {
	patch := bson.M{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.StudyProgram != nil {
		patch["study_program"] = *req.StudyProgram
	}
	if req.Semester != nil {
		patch["semester"] = *req.Semester
	}
	if req.GPA != nil {
		patch["gpa"] = *req.GPA
	}

	student, err := s.repo.Update(ctx, id, patch, req.Version)
	if err != nil {
		return nil, err
	}
	return student.ToResponse(), nil
}

func (s *StudentServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}
