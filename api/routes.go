package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/budgetgoal"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/category"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/report"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/pdf"
	"github.com/carson-networks/budget-tracker/internal/service"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	AllowedOrigins []string
	Service        *service.Service
	Operator       *operator.OperatorDelegator
}

// Handler builds the router: /status and /metrics as plain handlers, every
// v1 operation through Huma.
func (r *Rest) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: r.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	statusHandler := status.NewHandler(r.Operator)
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	router.Handle("/metrics", promhttp.Handler())

	api := humachi.New(router, huma.DefaultConfig("Budget Tracker", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))
	r.register(api)

	return router
}

func (r *Rest) register(api huma.API) {
	transactions := r.Service.Transaction
	transaction.NewCreateTransactionHandler(transactions).Register(api)
	transaction.NewListTransactionsHandler(transactions).Register(api)
	transaction.NewDateRangeHandler(transactions).Register(api)
	transaction.NewGetTransactionHandler(transactions).Register(api)
	transaction.NewUpdateTransactionHandler(transactions).Register(api)
	transaction.NewDeleteTransactionHandler(transactions).Register(api)
	transaction.NewSuggestCategoryHandler(r.Service.Category).Register(api)

	goals := r.Service.BudgetGoal
	budgetgoal.NewCreateBudgetGoalHandler(goals).Register(api)
	budgetgoal.NewListBudgetGoalsHandler(goals).Register(api)
	budgetgoal.NewGetBudgetGoalHandler(goals).Register(api)
	budgetgoal.NewUpdateBudgetGoalHandler(goals).Register(api)
	budgetgoal.NewDeleteBudgetGoalHandler(goals).Register(api)
	budgetgoal.NewReconcileBudgetGoalHandler(goals).Register(api)

	categories := r.Service.Category
	category.NewListCategoriesHandler(categories).Register(api)
	category.NewCreateCategoryHandler(categories).Register(api)
	category.NewDeleteCategoryHandler(categories).Register(api)
	category.NewSuggestHandler(categories).Register(api)

	reports := r.Service.Report
	report.NewSpendingHandler(reports).Register(api)
	report.NewMonthlyTotalsHandler(reports).Register(api)
	report.NewCategoryTotalsHandler(reports).Register(api)
	report.NewTrendsHandler(reports).Register(api)
	report.NewExportPDFHandler(reports, pdf.NewFormatter()).Register(api)
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
