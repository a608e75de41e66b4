package http

import (
	"CourseFlow/internal/delivery/http/controllers"
	"CourseFlow/internal/delivery/http/controllers/auth"
	"CourseFlow/internal/delivery/http/controllers/course"
	"CourseFlow/internal/delivery/http/controllers/lesson"
	"CourseFlow/internal/delivery/http/controllers/middleware"
	"CourseFlow/internal/delivery/http/controllers/quiz"
	"CourseFlow/internal/models"
	"CourseFlow/internal/service"
	"CourseFlow/pkg/logger"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := auth.NewAuthHandler(l, u.AuthService)
	courseController := course.NewCourseHandler(l, u.CourseService)
	lessonController := lesson.NewLessonHandler(l, u.LessonService, u.VideoService, u.ProgressService)
	quizController := quiz.NewQuizHandler(l, u.QuizService)

	authProvider := middleware.NewAuthMiddlewareProvider(l, u.AuthService)

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authProvider.AuthMiddleware, authController.Me)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authController.Login)
			authGroup.POST("/register", authController.Register)
			authGroup.POST("/refresh", authController.Refresh)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:course_id/preview", courseController.CourseByID)

			learner := courses.Group("", authProvider.AuthMiddleware, middleware.RequireRoles(models.LearnerRole))
			{
				learner.POST("/:course_id/enroll", courseController.Enroll)
				learner.GET("/enrolled", courseController.EnrolledCourses)
				learner.GET("/:course_id/outline", lessonController.CourseOutline)

				learner.GET("/lessons/:lesson_id", lessonController.LessonDetail)
				learner.GET("/lessons/:lesson_id/view", lessonController.LessonView)
				learner.GET("/lessons/:lesson_id/video-url", lessonController.VideoURL)
				learner.POST("/lessons/:lesson_id/progress", lessonController.SaveProgress)
				learner.POST("/lessons/:lesson_id/ended", lessonController.VideoEnded)
				learner.PATCH("/lessons/:lesson_id/complete", lessonController.SetCompletion)

				learner.POST("/lessons/:lesson_id/quiz/attempts", quizController.StartAttempt)
			}
		}

		attempts := v1.Group("/quiz/attempts", authProvider.AuthMiddleware, middleware.RequireRoles(models.LearnerRole))
		{
			attempts.POST("/:attempt_id/submit", quizController.SubmitAttempt)
			attempts.GET("/:attempt_id/result", quizController.AttemptResult)
		}
	}
	return r
}
