package course

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListPublicPreviews(ctx context.Context) ([]models.CoursePreview, error)
	PreviewsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CoursePreview, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	CreateEnrollment(ctx context.Context, userID, courseID uuid.UUID) error
	CoursesByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type searchRepo interface {
	Search(ctx context.Context, query string) ([]uuid.UUID, error)
	Index(ctx context.Context, preview models.CoursePreview) error
}

// CourseService covers the marketplace reads the learner flow needs:
// browse, search, preview, and enrollment.
type CourseService struct {
	log         logger.Log
	courseRepo  courseRepo
	enrollments enrollmentRepo
	search      searchRepo
}

func NewCourseService(log logger.Log, c courseRepo, e enrollmentRepo, s searchRepo) *CourseService {
	return &CourseService{
		log:         log,
		courseRepo:  c,
		enrollments: e,
		search:      s,
	}
}

func (s *CourseService) ListCoursePreview(ctx context.Context) ([]models.CoursePreview, error) {
	return s.courseRepo.ListPublicPreviews(ctx)
}

func (s *CourseService) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.Status != models.StatusPublic {
		return nil, app_errors.ErrCourseNotPublished
	}
	return course, nil
}

// SearchCourses runs the catalog full-text query and hydrates previews from
// postgres in the order the index returned them.
func (s *CourseService) SearchCourses(ctx context.Context, query string) ([]models.CoursePreview, error) {
	if query == "" {
		return s.courseRepo.ListPublicPreviews(ctx)
	}
	ids, err := s.search.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.courseRepo.PreviewsByIDs(ctx, ids)
}

// ReindexCatalog writes every public course into the search index. Run at
// startup so the index catches up with courses published while it was away;
// a failed document is logged and skipped, not fatal.
func (s *CourseService) ReindexCatalog(ctx context.Context) error {
	previews, err := s.courseRepo.ListPublicPreviews(ctx)
	if err != nil {
		return err
	}
	for _, p := range previews {
		if err := s.search.Index(ctx, p); err != nil {
			s.log.ErrorErr("failed to index course", err, "course_id", p.ID)
		}
	}
	s.log.Info("catalog reindexed", "courses", len(previews))
	return nil
}

func (s *CourseService) Enroll(ctx context.Context, userID, courseID uuid.UUID) error {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.Status != models.StatusPublic {
		return app_errors.ErrCourseNotPublished
	}
	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if enrolled {
		return app_errors.ErrAlreadyEnrolled
	}
	return s.enrollments.CreateEnrollment(ctx, userID, courseID)
}

func (s *CourseService) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.CoursePreview, error) {
	ids, err := s.enrollments.CoursesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.courseRepo.PreviewsByIDs(ctx, ids)
}
