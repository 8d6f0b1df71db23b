package router

import (
	"log"

	"dumbbell/config"
	"dumbbell/controllers"
	dbpkg "dumbbell/db"
	"dumbbell/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// Initialize wires all routes and middlewares: public routes, authenticated
// routes (token or session + active user) and admin routes.
func Initialize(r *gin.Engine, cfg config.Configuration, database *gorm.DB) {
	controllers.SetConfigurations(cfg)

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg.CorsOrigins))
	r.Use(Logger())
	r.Use(dbpkg.SetDBtoContext(database))

	// DRF-compatible alias
	r.POST("/api-token-auth", controllers.Login)

	api := r.Group("/api/v1")

	// Public (no auth)
	api.POST("/auth/login", controllers.Login)
	api.POST("/addresses", controllers.CreateAddress)
	api.POST("/students", controllers.CreateStudent)
	api.GET("/plans", controllers.GetPlans)
	api.GET("/plans/:id", controllers.GetPlanByID)
	api.GET("/plans/modalities", controllers.GetModalities)
	api.GET("/plans/modalities/:id", controllers.GetModalityByID)

	// Validated routes (token or session + active user)
	validated := api.Group("")
	validated.Use(controllers.AuthRequired())
	validated.Use(Authorizer())

	validated.POST("/auth/logout", controllers.Logout)
	validated.GET("/auth/user", controllers.Me)

	validated.GET("/addresses", controllers.GetAddresses)
	validated.GET("/addresses/:id", controllers.GetAddressByID)
	validated.PUT("/addresses/:id", controllers.UpdateAddress)
	validated.DELETE("/addresses/:id", controllers.DeleteAddress)

	validated.GET("/students", controllers.GetStudents)
	validated.GET("/students/:id", controllers.GetStudentByID)
	validated.PUT("/students/:id", controllers.UpdateStudent)
	validated.PATCH("/students/:id", controllers.UpdateStudent)
	validated.DELETE("/students/:id", controllers.DeleteStudent)

	validated.GET("/cards", controllers.GetCards)
	validated.POST("/cards", controllers.CreateCard)
	validated.GET("/cards/:id", controllers.GetCardByID)
	validated.PUT("/cards/:id", controllers.UpdateCard)
	validated.PATCH("/cards/:id", controllers.UpdateCard)
	validated.DELETE("/cards/:id", controllers.DeleteCard)

	validated.GET("/enrollments", controllers.GetEnrollments)
	validated.POST("/enrollments", controllers.CreateEnrollment)
	validated.GET("/enrollments/:id", controllers.GetEnrollmentByID)
	validated.PUT("/enrollments/:id", controllers.UpdateEnrollment)
	validated.PATCH("/enrollments/:id", controllers.UpdateEnrollment)
	validated.DELETE("/enrollments/:id", controllers.DeleteEnrollment)

	validated.GET("/exercises", controllers.GetExercises)
	validated.GET("/exercises/:id", controllers.GetExerciseByID)

	validated.GET("/workouts", controllers.GetWorkouts)
	validated.POST("/workouts", controllers.CreateWorkout)
	validated.GET("/workouts/:id", controllers.GetWorkoutByID)
	validated.PUT("/workouts/:id", controllers.UpdateWorkout)
	validated.PATCH("/workouts/:id", controllers.UpdateWorkout)
	validated.DELETE("/workouts/:id", controllers.DeleteWorkout)

	// Admin routes
	admin := validated.Group("")
	admin.Use(Adminizer())

	admin.POST("/plans", controllers.CreatePlan)
	admin.PUT("/plans/:id", controllers.UpdatePlan)
	admin.PATCH("/plans/:id", controllers.UpdatePlan)
	admin.DELETE("/plans/:id", controllers.DeletePlan)
	admin.POST("/plans/:id/modalities", controllers.LinkPlanModality)
	admin.DELETE("/plans/:id/modalities/:modality_id", controllers.UnlinkPlanModality)

	admin.POST("/plans/modalities", controllers.CreateModality)
	admin.PUT("/plans/modalities/:id", controllers.UpdateModality)
	admin.PATCH("/plans/modalities/:id", controllers.UpdateModality)
	admin.DELETE("/plans/modalities/:id", controllers.DeleteModality)

	admin.POST("/exercises", controllers.CreateExercise)
	admin.PUT("/exercises/:id", controllers.UpdateExercise)
	admin.PATCH("/exercises/:id", controllers.UpdateExercise)
	admin.DELETE("/exercises/:id", controllers.DeleteExercise)

	log.Printf("Routes initialized")
}
