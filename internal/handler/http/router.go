package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/contactevin2u/AAHRMS-sub003/internal/handler/http/middleware"
	"github.com/contactevin2u/AAHRMS-sub003/internal/pkg/jwt"
)

func NewRouter(
	jwtService *jwt.Service,
	payrollHandler PayrollHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	scheduleHandler ScheduleHandler,
	claimHandler ClaimHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "aahrms-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", employeeHandler.Create)
				r.Get("/", employeeHandler.ListActive)
				r.Get("/code/{code}", employeeHandler.GetByCode)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Deactivate)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch", attendanceHandler.Punch)
				r.Post("/repair-midnight", attendanceHandler.RepairMidnight)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Route("/shifts", func(r chi.Router) {
					r.Post("/", scheduleHandler.CreateShiftTemplate)
					r.Get("/", scheduleHandler.ListShiftTemplates)
					r.Delete("/{id}", scheduleHandler.DeleteShiftTemplate)
				})
				r.Route("/assignments", func(r chi.Router) {
					r.Post("/", scheduleHandler.Assign)
					r.Get("/", scheduleHandler.ListAssignments)
				})
				r.Route("/holidays", func(r chi.Router) {
					r.Post("/", scheduleHandler.CreateHoliday)
					r.Get("/", scheduleHandler.ListHolidays)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/initialize", leaveHandler.InitializeYear)
				r.Get("/balances", leaveHandler.GetBalances)
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.SubmitRequest)
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
				})
			})

			r.Route("/claims", func(r chi.Router) {
				r.Post("/", claimHandler.Submit)
				r.Get("/", claimHandler.List)
				r.Post("/{id}/approve", claimHandler.Approve)
				r.Post("/{id}/reject", claimHandler.Reject)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/runs", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateRun)
					r.Post("/bulk", payrollHandler.CreateAllRuns)
					r.Get("/", payrollHandler.ListRuns)
					r.Delete("/", payrollHandler.DeleteAllDrafts)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetRun)
						r.Delete("/", payrollHandler.DeleteRun)
						r.Post("/finalize", payrollHandler.FinalizeRun)
						r.Post("/recalculate", payrollHandler.RecalculateRun)
						r.Get("/bank-file", payrollHandler.BankFile)
					})
				})
				r.Route("/items/{id}", func(r chi.Router) {
					r.Put("/", payrollHandler.UpdateItem)
					r.Delete("/", payrollHandler.DeleteItem)
					r.Post("/recalculate", payrollHandler.RecalculateItem)
					r.Get("/payslip", payrollHandler.Payslip)
					r.Get("/payslip/pdf", payrollHandler.PayslipPDF)
				})
				r.Post("/earnings", payrollHandler.CreateEarningEntry)
			})
		})
	})

	return r
}
