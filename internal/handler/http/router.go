package http

import (
	"log/slog"
	"net/http"

	"github.com/SandeDesign/alloon-sub000/internal/domain/user"
	"github.com/SandeDesign/alloon-sub000/internal/handler/http/middleware"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func ownerOnly(permission user.Permission) func(http.Handler) http.Handler {
	return middleware.RequirePermission(permission, user.ErrOwnerAccessRequired)
}

func managerCan(permission user.Permission) func(http.Handler) http.Handler {
	return middleware.RequirePermission(permission, user.ErrManagerAccessRequired)
}

func NewRouter(
	logger *slog.Logger,
	JWTService jwt.Service,
	allowedOrigins []string,
	payrollHandler PayrollHandler,
	payslipHandler PayslipHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.RequireAccessToken)

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollView, user.ErrManagerAccessRequired))

				r.Get("/tax-table", payrollHandler.GetTaxTable)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)
					r.With(ownerOnly(user.PermissionPayrollSettings)).Put("/", payrollHandler.UpdateSettings)
				})

				r.Route("/periods", func(r chi.Router) {
					r.Post("/", payrollHandler.CreatePeriod)
					r.Get("/", payrollHandler.ListPeriods)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetPeriod)
						r.With(managerCan(user.PermissionPayrollRun)).Delete("/", payrollHandler.DeletePeriod)
						r.With(managerCan(user.PermissionPayrollRun)).Post("/calculate", payrollHandler.RunCalculation)
						r.With(managerCan(user.PermissionPayrollApprove)).Post("/approve", payrollHandler.ApprovePeriod)
						r.With(ownerOnly(user.PermissionPayrollPay)).Post("/pay", payrollHandler.MarkPaid)
						r.With(managerCan(user.PermissionPayrollRun)).Post("/supersede", payrollHandler.SupersedePeriod)
						r.Get("/calculations", payrollHandler.ListPeriodCalculations)
						r.Get("/register.xlsx", payrollHandler.ExportRegister)
						r.With(managerCan(user.PermissionPayslipGenerate)).Post("/payslips", payslipHandler.GeneratePeriodPayslips)
					})
				})

				r.Route("/calculations/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetCalculation)
					r.With(managerCan(user.PermissionPayslipGenerate)).Post("/payslip", payslipHandler.RegeneratePayslip)
				})

				r.Route("/employees/{employeeId}", func(r chi.Router) {
					r.Get("/calculations", payrollHandler.ListEmployeeCalculations)
					r.Get("/payslips", payslipHandler.ListEmployeePayslips)
				})

				r.Route("/payslips/{id}", func(r chi.Router) {
					r.Get("/", payslipHandler.GetPayslip)
					r.With(managerCan(user.PermissionPayslipDownload)).Get("/download", payslipHandler.DownloadPayslip)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}
