package http

import (
	"fmt"
	"net/http"

	"mobiz/internal/core"
	"mobiz/internal/export"
	"mobiz/internal/log"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// handleReady reports ready once both logs can be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	for _, kind := range core.Kinds() {
		if _, err := s.svc.RecordsView(r.Context(), kind); err != nil {
			s.logger.WarnContext(r.Context(), "Readiness check failed", "error", err, "kind", kind.String())
			writeText(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	writeText(w, http.StatusOK, "ready")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.DashboardSnapshot(r.Context())
	if err != nil {
		writeInternalError(w, r, log.OpTotals, "Dashboard totals failed", err)
		return
	}
	writeJSON(w, http.StatusOK, totalsResponse{
		Income:  money(t.Income),
		Expense: money(t.Expense),
		Net:     money(t.Net),
	})
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, core.KindIncome)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	s.listRecords(w, r, core.KindExpense)
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request, kind core.Kind) {
	rows, err := s.svc.RecordsView(r.Context(), kind)
	if err != nil {
		writeInternalError(w, r, log.OpRead, "Read records failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordsResponse(kind, rows))
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	body, err := ParseRequestBody(w, r)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	rec, err := s.svc.AddIncome(r.Context(), body.Get("description"), body.Get("amount"))
	if err != nil {
		if isValidationError(err) {
			writeValidationError(w, r, err)
			return
		}
		writeInternalError(w, r, log.OpAppend, "Income append failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{
		Date:        rec.Date,
		Description: rec.Description,
		Amount:      rec.Amount.String(),
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	body, err := ParseRequestBody(w, r)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	rec, err := s.svc.AddExpense(r.Context(), body.Get("category"), body.Get("description"), body.Get("amount"))
	if err != nil {
		if isValidationError(err) {
			writeValidationError(w, r, err)
			return
		}
		writeInternalError(w, r, log.OpAppend, "Expense append failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{
		Date:        rec.Date,
		Category:    rec.Category,
		Description: rec.Description,
		Amount:      rec.Amount.String(),
	})
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.MonthlySummary(r.Context())
	if err != nil {
		writeInternalError(w, r, log.OpSummary, "Monthly summary failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(sum))
}

func (s *Server) handleYearlySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.YearlySummary(r.Context())
	if err != nil {
		writeInternalError(w, r, log.OpSummary, "Yearly summary failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(sum))
}

// handleReport serves the plain-text profit, monthly and yearly reports.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var (
		text string
		err  error
	)
	switch report := r.PathValue("report"); report {
	case "profit":
		text, err = s.svc.ProfitReportText(r.Context())
	case "monthly":
		text, err = s.svc.MonthlyReportText(r.Context())
	case "yearly":
		text, err = s.svc.YearlyReportText(r.Context())
	default:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown report %q", report)})
		return
	}
	if err != nil {
		writeInternalError(w, r, log.OpSummary, "Report failed", err)
		return
	}
	writeText(w, http.StatusOK, text)
}

func (s *Server) handleChartTotals(w http.ResponseWriter, r *http.Request) {
	series, err := s.svc.ChartSeries(r.Context())
	if err != nil {
		writeInternalError(w, r, log.OpTotals, "Chart totals failed", err)
		return
	}
	writeJSON(w, http.StatusOK, chartTotalsResponse{
		Income:  money(series.Income),
		Expense: money(series.Expense),
	})
}

func (s *Server) handleChartCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svc.CategoryTotals(r.Context())
	if err != nil {
		writeInternalError(w, r, log.OpSummary, "Category totals failed", err)
		return
	}
	resp := chartCategoriesResponse{NoData: len(cats) == 0, Categories: make([]categoryResponse, 0, len(cats))}
	for _, c := range cats {
		resp.Categories = append(resp.Categories, categoryResponse{Name: c.Name, Amount: money(c.Amount)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	body, err := ParseRequestBody(w, r)
	if err != nil {
		writeBadRequest(w, r, err.Error())
		return
	}

	price, err := s.svc.ProjectPrice(body.Get("base"), body.Get("profit_percent"), body.Get("tax_percent"))
	if err != nil {
		writeValidationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{Price: money(price)})
}

// handleExportCSV streams the export table. The table is built before any
// byte is written so a corrupt store still yields a clean 500.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Export(r.Context())
	if err != nil {
		writeInternalError(w, r, log.OpExport, "Export failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.exportName))
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, t); err != nil {
		s.logger.ErrorContext(r.Context(), "Export write failed", "error", err)
	}
}

func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, s.svc.Readme())
}
