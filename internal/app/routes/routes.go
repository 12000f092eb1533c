package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/controllers"
	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/middleware"
	"github.com/tenacity/erp/internal/pkg/websocket"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Session *controllers.SessionController
	Student *controllers.StudentController
	Fee     *controllers.FeeController
	Hostel  *controllers.HostelController
	Report  *controllers.ReportController
	Chat    *controllers.ChatController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	chatHandler *websocket.Handler,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/session", ctrl.Session.SelectRole)

	// --- Session routes ---
	session := v1.Group("")
	session.Use(authMiddleware.SessionRequired())
	{
		session.POST("/chat", ctrl.Chat.Ask)
		session.GET("/chat/ws", chatHandler.HandleConnection)
	}

	// Student view
	me := session.Group("/me")
	me.Use(middleware.RoleRequired(models.RoleStudent))
	{
		me.GET("", ctrl.Student.GetMe)
		me.POST("/projection", ctrl.Student.ProjectMyGPA)
		me.GET("/portfolio.pdf", ctrl.Student.GetMyPortfolio)
	}

	// Faculty and admin views of student records
	students := session.Group("/students")
	{
		staff := students.Group("")
		staff.Use(middleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
		{
			staff.GET("", ctrl.Student.GetAllStudents)
			staff.GET("/at-risk", ctrl.Student.GetAtRiskStudents)
			staff.GET("/:id", ctrl.Student.GetStudentByID)
			staff.GET("/:id/warnings", ctrl.Student.GetStudentWarnings)
			staff.GET("/:id/portfolio.pdf", ctrl.Student.GetPortfolio)
		}

		faculty := students.Group("")
		faculty.Use(middleware.RoleRequired(models.RoleFaculty))
		{
			faculty.PATCH("/:id", ctrl.Student.UpdateStudent)
			faculty.POST("/:id/absent", ctrl.Student.MarkAbsent)
		}

		admin := students.Group("")
		admin.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("", ctrl.Student.AdmitStudent)
			admin.POST("/:id/certificates", ctrl.Student.AddCertificate)
		}
	}

	// --- Admin routes ---
	admin := session.Group("")
	admin.Use(middleware.RoleRequired(models.RoleAdmin))
	{
		fees := admin.Group("/fees")
		{
			fees.GET("", ctrl.Fee.GetLedger)
			fees.POST("", ctrl.Fee.RecordPayment)
			fees.GET("/:receiptId/receipt.pdf", ctrl.Fee.GetReceipt)
		}

		hostel := admin.Group("/hostel")
		{
			hostel.GET("", ctrl.Hostel.GetOverview)
			hostel.POST("/rooms/:roomId/occupants", ctrl.Hostel.Allocate)
			hostel.DELETE("/rooms/:roomId/occupants/:studentId", ctrl.Hostel.Deallocate)
		}

		reports := admin.Group("/reports")
		{
			reports.GET("/summary", ctrl.Report.GetSummary)
			reports.GET("/students.csv", ctrl.Report.ExportStudentsCSV)
			reports.GET("/institution.pdf", ctrl.Report.GetInstitutionReport)
		}

		admin.POST("/admin/reset", ctrl.Report.ResetData)
	}
}
