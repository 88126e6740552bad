package handler

import (
	"techcom/internal/domain"
	"techcom/internal/middleware"
	"techcom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every resource handler mounted under /api.
type Handlers struct {
	Auth           *AuthHandler
	Users          *UserHandler
	Tags           *TagHandler
	Materials      *MaterialHandler
	Quizzes        *QuizHandler
	Questions      *QuestionHandler
	Composition    *CompositionHandler
	JobDescription *JobDescriptionHandler
	Candidates     *CandidateHandler
	Employees      *EmployeeHandler
}

// RegisterRoutes mounts the API on router. Every route except login and
// refresh requires a bearer token; the permission guard decides per route.
func RegisterRoutes(router fiber.Router, authService service.AuthService, h Handlers) {
	protected := middleware.Protected(authService)
	can := middleware.RequirePermission

	auth := router.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)
	auth.Get("/me", protected, h.Auth.Me)

	users := router.Group("/users", protected, can(domain.PermManageUsers))
	users.Post("/create", h.Users.Create)
	users.Get("/get-all", h.Users.GetAll)
	users.Get("/get/:id", h.Users.Get)
	users.Put("/update/:id", h.Users.Update)
	users.Delete("/delete/:id", h.Users.Delete)
	users.Get("/search", h.Users.Search)
	users.Get("/get-deleted", h.Users.GetDeleted)
	users.Post("/restore/:id", h.Users.Restore)

	employees := router.Group("/employees", protected, can(domain.PermManageUsers))
	employees.Post("/create", h.Employees.Create)
	employees.Get("/get-all", h.Employees.GetAll)
	employees.Get("/get/:id", h.Employees.Get)
	employees.Put("/update/:id", h.Employees.Update)
	employees.Delete("/delete/:id", h.Employees.Delete)
	employees.Get("/search", h.Employees.Search)
	employees.Get("/get-deleted", h.Employees.GetDeleted)
	employees.Post("/restore/:id", h.Employees.Restore)

	candidates := router.Group("/candidates", protected, can(domain.PermManageRecruitment))
	candidates.Post("/create", h.Candidates.Create)
	candidates.Get("/get-all", h.Candidates.GetAll)
	candidates.Get("/get/:id", h.Candidates.Get)
	candidates.Put("/update/:id", h.Candidates.Update)
	candidates.Delete("/delete/:id", h.Candidates.Delete)
	candidates.Get("/search", h.Candidates.Search)
	candidates.Get("/get-deleted", h.Candidates.GetDeleted)
	candidates.Post("/restore/:id", h.Candidates.Restore)

	manageJobs := can(domain.PermManageRecruitment)
	jobs := router.Group("/job-descriptions", protected, can(domain.PermViewJobs))
	jobs.Post("/create", manageJobs, h.JobDescription.Create)
	jobs.Get("/get-all", h.JobDescription.GetAll)
	jobs.Get("/get/:id", h.JobDescription.Get)
	jobs.Put("/update/:id", manageJobs, h.JobDescription.Update)
	jobs.Delete("/delete/:id", manageJobs, h.JobDescription.Delete)
	jobs.Get("/search", h.JobDescription.Search)
	jobs.Get("/get-deleted", manageJobs, h.JobDescription.GetDeleted)
	jobs.Post("/restore/:id", manageJobs, h.JobDescription.Restore)

	manage := can(domain.PermManageTraining)

	tags := router.Group("/tags", protected, can(domain.PermViewTraining))
	tags.Post("/create", manage, h.Tags.Create)
	tags.Get("/get-all", h.Tags.GetAll)
	tags.Get("/get/:id", h.Tags.Get)
	tags.Put("/update/:id", manage, h.Tags.Update)
	tags.Delete("/delete/:id", manage, h.Tags.Delete)
	tags.Get("/:id/items", h.Tags.Items)

	materials := router.Group("/training-materials", protected, can(domain.PermViewTraining))
	materials.Post("/create", manage, h.Materials.Create)
	materials.Get("/get-all", h.Materials.GetAll)
	materials.Get("/get/:id", h.Materials.Get)
	materials.Put("/update/:id", manage, h.Materials.Update)
	materials.Delete("/delete/:id", manage, h.Materials.Archive)
	materials.Post("/archive/:id", manage, h.Materials.Archive)
	materials.Get("/search", h.Materials.Search)
	materials.Get("/get-archived", manage, h.Materials.GetArchived)
	materials.Post("/restore/:id", manage, h.Materials.Restore)
	materials.Post("/assign-tags/:id", manage, h.Materials.AssignTags)
	materials.Post("/remove-tags/:id", manage, h.Materials.RemoveTags)
	materials.Get("/relevant-quizzes/:id", manage, h.Materials.RelevantQuizzes)
	materials.Post("/attach-quiz/:id", manage, h.Materials.AttachQuiz)
	materials.Delete("/detach-quiz/:id/:quizId", manage, h.Materials.DetachQuiz)
	materials.Get("/quizzes/:id", h.Materials.Quizzes)
	materials.Get("/download/:filename", h.Materials.Download)

	quizzes := router.Group("/quizzes", protected, can(domain.PermViewTraining))
	quizzes.Post("/create", manage, h.Quizzes.Create)
	quizzes.Get("/get-all", h.Quizzes.GetAll)
	quizzes.Get("/get/:id", h.Quizzes.Get)
	quizzes.Put("/update/:id", manage, h.Quizzes.Update)
	quizzes.Delete("/delete/:id", manage, h.Quizzes.Archive)
	quizzes.Post("/archive/:id", manage, h.Quizzes.Archive)
	quizzes.Get("/search", h.Quizzes.Search)
	quizzes.Get("/get-archived", manage, h.Quizzes.GetArchived)
	quizzes.Post("/restore/:id", manage, h.Quizzes.Restore)
	quizzes.Post("/assign-tags/:id", manage, h.Quizzes.AssignTags)
	quizzes.Post("/remove-tags/:id", manage, h.Quizzes.RemoveTags)

	questions := router.Group("/quiz-questions", protected, manage)
	questions.Post("/create", h.Questions.Create)
	questions.Get("/get-all", h.Questions.GetAll)
	questions.Get("/get/:id", h.Questions.Get)
	questions.Put("/update/:id", h.Questions.Update)
	questions.Delete("/delete/:id", h.Questions.Delete)
	questions.Get("/search", h.Questions.Search)

	composition := router.Group("/question-to-quiz", protected, manage)
	composition.Post("/add", h.Composition.Add)
	composition.Post("/auto-add", h.Composition.AutoAdd)
	composition.Put("/reorder/:quizId", h.Composition.Reorder)
	composition.Delete("/remove/:quizId/:questionId", h.Composition.Remove)
	composition.Get("/get/:quizId", h.Composition.List)
	composition.Get("/stats/:quizId", h.Composition.Stats)
	composition.Post("/create/:quizId", h.Composition.CreateInQuiz)
}
