package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ysfmrbt/skillwise/internal/config"
	authsvc "github.com/ysfmrbt/skillwise/internal/services/auth"
	categoriessvc "github.com/ysfmrbt/skillwise/internal/services/categories"
	coursessvc "github.com/ysfmrbt/skillwise/internal/services/courses"
	enrollmentssvc "github.com/ysfmrbt/skillwise/internal/services/enrollments"
	feedbacksvc "github.com/ysfmrbt/skillwise/internal/services/feedback"
	lessonssvc "github.com/ysfmrbt/skillwise/internal/services/lessons"
	mediasvc "github.com/ysfmrbt/skillwise/internal/services/media"
	userssvc "github.com/ysfmrbt/skillwise/internal/services/users"
	"github.com/ysfmrbt/skillwise/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService       *authsvc.Service
	UserService       *userssvc.Service
	CategoryService   *categoriessvc.Service
	CourseService     *coursessvc.Service
	LessonService     *lessonssvc.Service
	EnrollmentService *enrollmentssvc.Service
	FeedbackService   *feedbacksvc.Service
	MediaService      *mediasvc.Service
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService, handlers.CookieSettings{
		Secure: deps.Config.IsProduction(),
	})
	usersHandler := handlers.NewUsersHandler(deps.UserService)
	categoriesHandler := handlers.NewCategoriesHandler(deps.CategoryService)
	coursesHandler := handlers.NewCoursesHandler(deps.CourseService)
	lessonsHandler := handlers.NewLessonsHandler(deps.LessonService)
	enrollmentsHandler := handlers.NewEnrollmentsHandler(deps.EnrollmentService)
	feedbackHandler := handlers.NewFeedbackHandler(deps.FeedbackService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	staffMW := RequireRole("INSTRUCTOR", "ADMIN", "SUPER_ADMIN")
	adminMW := RequireRole("ADMIN", "SUPER_ADMIN")
	superAdminMW := RequireRole("SUPER_ADMIN")
	studentWriteMW := RequireRole("STUDENT", "ADMIN", "SUPER_ADMIN")

	r.Get("/healthz", healthHandler.Get)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.SignIn)
		r.Post("/register", authHandler.Register)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Get("/profile", authHandler.Profile)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authMW)
		r.With(adminMW).Get("/", usersHandler.List)
		r.With(superAdminMW).Post("/", usersHandler.Create)
		r.With(staffMW).Get("/by-role/{role}", usersHandler.ListByRole)
		r.With(adminMW).Get("/{id}", usersHandler.Get)
		r.With(adminMW).Patch("/{id}", usersHandler.Update)
		r.With(superAdminMW).Patch("/{id}/role", usersHandler.UpdateRole)
		r.With(superAdminMW).Delete("/{id}", usersHandler.Delete)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", categoriesHandler.List)
		r.Get("/{id}", categoriesHandler.Get)
		r.With(adminMW).Post("/", categoriesHandler.Create)
		r.With(adminMW).Patch("/{id}", categoriesHandler.Update)
		r.With(superAdminMW).Delete("/{id}", categoriesHandler.Delete)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", coursesHandler.List)
		r.Get("/{id}", coursesHandler.Get)
		r.With(staffMW).Post("/", coursesHandler.Create)
		r.With(staffMW).Patch("/{id}", coursesHandler.Update)
		r.With(adminMW).Delete("/{id}", coursesHandler.Delete)
		r.Get("/{id}/feedback-stats", feedbackHandler.CourseStats)
		r.Get("/{id}/materials", mediaHandler.ListMaterials)
		r.With(staffMW).Post("/{id}/materials", mediaHandler.AddMaterial)
	})

	r.Route("/lessons", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", lessonsHandler.List)
		r.Get("/{id}", lessonsHandler.Get)
		r.With(staffMW).Post("/", lessonsHandler.Create)
		r.With(staffMW).Patch("/{id}", lessonsHandler.Update)
		r.With(staffMW).Delete("/{id}", lessonsHandler.Delete)
	})

	r.Route("/enrollments", func(r chi.Router) {
		r.Use(authMW)
		r.With(staffMW).Get("/", enrollmentsHandler.List)
		r.Get("/{id}", enrollmentsHandler.Get)
		r.With(studentWriteMW).Post("/", enrollmentsHandler.Create)
		r.With(studentWriteMW).Delete("/{id}", enrollmentsHandler.Delete)
	})

	r.Route("/feedback", func(r chi.Router) {
		r.Use(authMW)
		r.With(staffMW).Get("/", feedbackHandler.List)
		r.Get("/{id}", feedbackHandler.Get)
		r.With(studentWriteMW).Post("/", feedbackHandler.Create)
		r.With(studentWriteMW).Patch("/{id}", feedbackHandler.Update)
		r.With(studentWriteMW).Delete("/{id}", feedbackHandler.Delete)
	})

	r.Route("/materials", func(r chi.Router) {
		r.Use(authMW)
		r.With(staffMW).Delete("/{id}", mediaHandler.DeleteMaterial)
	})
}
