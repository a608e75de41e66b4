package service

import (
	"CourseFlow/internal/service/auth"
	"CourseFlow/internal/service/course"
	"CourseFlow/internal/service/lesson"
	"CourseFlow/internal/service/lesson/progress"
	"CourseFlow/internal/service/quiz"
	"CourseFlow/internal/service/video"
)

type Collection struct {
	AuthService     *auth.AuthService
	CourseService   *course.CourseService
	LessonService   *lesson.LessonService
	ProgressService *progress.ProgressService
	QuizService     *quiz.QuizService
	VideoService    *video.VideoService
}
