package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/session"
	"github.com/AvaneeshKarthiks/FinWise/internal/utils"
)

type HandlerManager struct {
	blogHandler      *BlogHandler
	courseHandler    *CourseHandler
	quizHandler      *QuizHandler
	employeeHandler  *EmployeeHandler
	volunteerHandler *VolunteerHandler
	healthHandler    *HealthHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *session.Manager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		blogHandler:      NewBlogHandler(serviceManager.Blog(), logger),
		courseHandler:    NewCourseHandler(serviceManager.Course(), logger),
		quizHandler:      NewQuizHandler(serviceManager.Quiz(), logger),
		employeeHandler:  NewEmployeeHandler(serviceManager.Employee(), sessions, logger),
		volunteerHandler: NewVolunteerHandler(serviceManager.Volunteer(), sessions, logger),
		healthHandler:    NewHealthHandler(serviceManager, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/", hm.healthHandler.Root)
	router.GET("/health", hm.healthHandler.Health)

	blogs := router.Group("/blog")
	{
		blogs.POST("/", hm.blogHandler.CreateBlog)
		blogs.GET("/", hm.blogHandler.ListBlogs)
		blogs.GET("/:id", hm.blogHandler.GetBlog)
		blogs.PUT("/:id", hm.blogHandler.UpdateBlog)
		blogs.PATCH("/:id", hm.blogHandler.UpdateBlog)
		blogs.DELETE("/:id", hm.blogHandler.DeleteBlog)
	}

	courses := router.Group("/course")
	{
		courses.POST("/", hm.courseHandler.CreateCourse)
		courses.GET("/", hm.courseHandler.ListCourses)
		courses.GET("/:id", hm.courseHandler.GetCourse)
		courses.PUT("/:id", hm.courseHandler.UpdateCourse)
		courses.PATCH("/:id", hm.courseHandler.UpdateCourse)
		courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
	}

	quizzes := router.Group("/quiz")
	{
		quizzes.POST("/", hm.quizHandler.CreateQuiz)
		quizzes.GET("/", hm.quizHandler.ListQuizzes)
		quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
		quizzes.PATCH("/:id", hm.quizHandler.UpdateQuiz)
		quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
	}

	volunteers := router.Group("/volunteer")
	{
		volunteers.POST("/register", hm.volunteerHandler.Register)
		volunteers.POST("/login", hm.volunteerHandler.Login)
		volunteers.POST("/logout", hm.volunteerHandler.Logout)
		volunteers.POST("/approve", hm.volunteerHandler.Decide)
		volunteers.GET("/pending", hm.volunteerHandler.ListPending)
		volunteers.GET("/:id/approvals", hm.volunteerHandler.ListApprovals)
	}

	employees := router.Group("/employee")
	{
		employees.POST("/login", hm.employeeHandler.Login)
		employees.POST("/logout", hm.employeeHandler.Logout)
		employees.GET("/me", hm.employeeHandler.Me)
	}
}
