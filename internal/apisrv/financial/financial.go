// Package financial exposes the analytics engine over JSON HTTP. All
// request validation happens here, before any data-source query is
// issued; the engine itself never sees malformed input.
package financial

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/technovapc/store-manager/internal/analytics"
	"github.com/technovapc/store-manager/internal/apierr"
)

const (
	defaultForecastMonths = 12
	defaultGrowthRatePct  = 5
)

// Server handles the financial analytics endpoints.
type Server struct {
	svc *analytics.Service
}

// New creates a new financial API server around the analytics service.
func New(svc *analytics.Service) *Server {
	return &Server{svc: svc}
}

// Routes mounts the three financial endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/revenue", s.getRevenue)
	r.Post("/forecast", s.postForecast)
	r.Get("/reports", s.getReports)
	return r
}

func (s *Server) getRevenue(w http.ResponseWriter, r *http.Request) {
	g, err := analytics.ParseGranularity(r.URL.Query().Get("period"))
	if err != nil {
		s.respondError(w, r, apierr.Validation(err.Error()))
		return
	}
	start, err := parseTimeParam(r.URL.Query().Get("start"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	end, err := parseTimeParam(r.URL.Query().Get("end"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	overview, err := s.svc.RevenueOverview(r.Context(), g, start, end)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, newRevenueResponse(overview))
}

type forecastRequest struct {
	ForecastPeriod  *int               `json:"forecastPeriod"`
	GrowthRate      *float64           `json:"growthRate"`
	SeasonalFactors map[string]float64 `json:"seasonalFactors"`
}

func (s *Server) postForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, r, apierr.Validation("malformed request body"))
			return
		}
	}

	months := defaultForecastMonths
	if req.ForecastPeriod != nil {
		months = *req.ForecastPeriod
	}
	growth := decimal.NewFromInt(defaultGrowthRatePct)
	if req.GrowthRate != nil {
		growth = decimal.NewFromFloat(*req.GrowthRate)
	}
	seasonal, err := parseSeasonalFactors(req.SeasonalFactors)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	report, err := s.svc.Forecast(r.Context(), months, growth, seasonal)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, newForecastResponse(report, req.SeasonalFactors))
}

func (s *Server) getReports(w http.ResponseWriter, r *http.Request) {
	typ, err := analytics.ParseReportType(r.URL.Query().Get("type"))
	if err != nil {
		s.respondError(w, r, apierr.Validation(err.Error()))
		return
	}
	start, err := parseTimeParam(r.URL.Query().Get("startDate"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	end, err := parseTimeParam(r.URL.Query().Get("endDate"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	report, err := s.svc.Report(r.Context(), start, end, typ)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	switch rep := report.(type) {
	case analytics.SummaryReport:
		s.respondJSON(w, r, http.StatusOK, newSummaryReportResponse(rep))
	case analytics.DetailedReport:
		s.respondJSON(w, r, http.StatusOK, newDetailedReportResponse(rep))
	case analytics.ExportReport:
		s.respondCSV(w, r, rep)
	default:
		s.respondError(w, r, apierr.Internal(fmt.Errorf("unhandled report variant %T", report)))
	}
}

// respondCSV streams the export variant as an attachment. One row per
// order, amounts fixed to 2 decimals.
func (s *Server) respondCSV(w http.ResponseWriter, r *http.Request, rep analytics.ExportReport) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		`attachment; filename="orders-%s-%s.csv"`,
		rep.Period.From.UTC().Format("2006-01-02"),
		rep.Period.To.UTC().Format("2006-01-02"),
	))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Order ID", "Date", "Customer Name", "Customer Email", "Status", "Total Amount", "Items"})
	for _, o := range rep.Orders {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		_ = cw.Write([]string{
			o.UUID,
			o.Placed.UTC().Format(time.RFC3339),
			o.CustomerName,
			o.CustomerEmail,
			string(o.Status),
			o.TotalAmount.StringFixed(2),
			strconv.Itoa(items),
		})
	}
	cw.Flush()
}

// parseTimeParam parses an optional ISO-8601 query parameter. A present
// but unparseable value is an InvalidDateRange, detected before any
// query is issued.
func parseTimeParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if !govalidator.IsRFC3339(v) {
		return nil, apierr.InvalidDateRange(fmt.Sprintf("unparseable date %q, want ISO-8601", v))
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, apierr.InvalidDateRange(fmt.Sprintf("unparseable date %q, want ISO-8601", v))
	}
	t = t.UTC()
	return &t, nil
}

func parseSeasonalFactors(raw map[string]float64) (map[time.Month]decimal.Decimal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	factors := make(map[time.Month]decimal.Decimal, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 || n > 12 {
			return nil, apierr.Validation(fmt.Sprintf("seasonal factor key %q is not a month number 1-12", k))
		}
		factors[time.Month(n)] = decimal.NewFromFloat(v)
	}
	return factors, nil
}
