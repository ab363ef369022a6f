package financial

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/technovapc/store-manager/internal/analytics"
	"github.com/technovapc/store-manager/internal/apierr"
	"github.com/technovapc/store-manager/internal/entity"
)

// money renders a monetary amount as a bare JSON number, rounded to
// 2 decimals. All rounding of monetary output happens here, once, at
// the serialization boundary.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.Round(2).String())
}

// num renders a non-monetary decimal, such as a growth percentage,
// without forcing a scale.
func num(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type periodResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Name  string    `json:"name,omitempty"`
}

func newPeriodResponse(p entity.TimeRange, name string) periodResponse {
	return periodResponse{Start: p.From.UTC(), End: p.To.UTC(), Name: name}
}

type seriesPointResponse struct {
	Period  string      `json:"period"`
	Revenue json.Number `json:"revenue"`
}

type comparisonResponse struct {
	PreviousPeriodRevenue json.Number `json:"previousPeriodRevenue"`
	Growth                json.Number `json:"growth"`
}

type rankedProductResponse struct {
	ProductID   int         `json:"productId"`
	ProductName string      `json:"productName"`
	ProductType string      `json:"productType"`
	Quantity    int         `json:"quantity"`
	Revenue     json.Number `json:"revenue"`
}

type revenueResponse struct {
	Period               periodResponse          `json:"period"`
	TotalRevenue         json.Number             `json:"totalRevenue"`
	OrderCount           int                     `json:"orderCount"`
	AverageOrderValue    json.Number             `json:"averageOrderValue"`
	RevenueByStatus      map[string]json.Number  `json:"revenueByStatus"`
	RevenueByProductType map[string]json.Number  `json:"revenueByProductType"`
	RevenueOverTime      []seriesPointResponse   `json:"revenueOverTime"`
	Comparison           comparisonResponse      `json:"comparison"`
	TopProducts          []rankedProductResponse `json:"topProducts"`
}

func newRevenueResponse(o *entity.RevenueOverview) revenueResponse {
	return revenueResponse{
		Period:               newPeriodResponse(o.Period, o.PeriodName),
		TotalRevenue:         money(o.Aggregate.TotalRevenue),
		OrderCount:           o.Aggregate.OrderCount,
		AverageOrderValue:    money(o.Aggregate.AvgOrderValue),
		RevenueByStatus:      statusBreakdown(o.Aggregate.RevenueByStatus),
		RevenueByProductType: typeBreakdown(o.Aggregate.RevenueByProductType),
		RevenueOverTime:      seriesPoints(o.OverTime),
		Comparison: comparisonResponse{
			PreviousPeriodRevenue: money(o.Comparison.PreviousTotal),
			Growth:                num(o.Comparison.GrowthPct.Round(2)),
		},
		TopProducts: rankedProducts(o.TopProducts),
	}
}

func statusBreakdown(m map[entity.OrderStatus]decimal.Decimal) map[string]json.Number {
	out := make(map[string]json.Number, len(m))
	for k, v := range m {
		out[string(k)] = money(v)
	}
	return out
}

func typeBreakdown(m map[entity.ProductType]decimal.Decimal) map[string]json.Number {
	out := make(map[string]json.Number, len(m))
	for k, v := range m {
		out[string(k)] = money(v)
	}
	return out
}

func seriesPoints(points []entity.SeriesPoint) []seriesPointResponse {
	out := make([]seriesPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, seriesPointResponse{Period: p.Period, Revenue: money(p.Revenue)})
	}
	return out
}

func rankedProducts(products []entity.RankedProduct) []rankedProductResponse {
	out := make([]rankedProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, rankedProductResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			ProductType: string(p.ProductType),
			Quantity:    p.Quantity,
			Revenue:     money(p.Revenue),
		})
	}
	return out
}

type monthlyRevenueResponse struct {
	Month   string      `json:"month"`
	Revenue json.Number `json:"revenue"`
}

type forecastPointResponse struct {
	Month            string      `json:"month"`
	ProjectedRevenue json.Number `json:"projectedRevenue"`
}

type quarterlyForecastResponse struct {
	Quarter          string      `json:"quarter"`
	ProjectedRevenue json.Number `json:"projectedRevenue"`
}

type forecastResponse struct {
	BaselineMonthlyRevenue json.Number                 `json:"baselineMonthlyRevenue"`
	GrowthAssumption       json.Number                 `json:"growthAssumption"`
	SeasonalFactors        map[string]float64          `json:"seasonalFactors"`
	HistoricalData         []monthlyRevenueResponse    `json:"historicalData"`
	MonthlyForecast        []forecastPointResponse     `json:"monthlyForecast"`
	QuarterlyForecast      []quarterlyForecastResponse `json:"quarterlyForecast"`
	AnnualProjection       json.Number                 `json:"annualProjection"`
	ForecastPeriod         int                         `json:"forecastPeriod"`
}

func newForecastResponse(rep *analytics.ForecastReport, seasonal map[string]float64) forecastResponse {
	// Always an object in the response, even when the request had none.
	if seasonal == nil {
		seasonal = map[string]float64{}
	}
	history := make([]monthlyRevenueResponse, 0, len(rep.History))
	for _, h := range rep.History {
		history = append(history, monthlyRevenueResponse{Month: h.Month, Revenue: money(h.Revenue)})
	}
	monthly := make([]forecastPointResponse, 0, len(rep.Monthly))
	for _, m := range rep.Monthly {
		monthly = append(monthly, forecastPointResponse{Month: m.Month, ProjectedRevenue: money(m.ProjectedRevenue)})
	}
	quarterly := make([]quarterlyForecastResponse, 0, len(rep.Quarterly))
	for _, q := range rep.Quarterly {
		quarterly = append(quarterly, quarterlyForecastResponse{Quarter: q.Quarter, ProjectedRevenue: money(q.ProjectedRevenue)})
	}
	return forecastResponse{
		BaselineMonthlyRevenue: money(rep.BaselineMonthlyRevenue),
		GrowthAssumption:       num(rep.GrowthAssumption),
		SeasonalFactors:        seasonal,
		HistoricalData:         history,
		MonthlyForecast:        monthly,
		QuarterlyForecast:      quarterly,
		AnnualProjection:       money(rep.AnnualProjection),
		ForecastPeriod:         rep.Months,
	}
}

type orderItemResponse struct {
	ProductID   int         `json:"productId"`
	ProductName string      `json:"productName"`
	ProductType string      `json:"productType"`
	UnitPrice   json.Number `json:"unitPrice"`
	Quantity    int         `json:"quantity"`
}

type orderResponse struct {
	OrderID       string              `json:"orderId"`
	Date          time.Time           `json:"date"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	Status        string              `json:"status"`
	TotalAmount   json.Number         `json:"totalAmount"`
	Items         []orderItemResponse `json:"items"`
}

func newOrderResponse(o entity.OrderRecord) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductType: string(it.ProductType),
			UnitPrice:   money(it.UnitPrice),
			Quantity:    it.Quantity,
		})
	}
	return orderResponse{
		OrderID:       o.UUID,
		Date:          o.Placed.UTC(),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
		TotalAmount:   money(o.TotalAmount),
		Items:         items,
	}
}

type summaryReportResponse struct {
	ReportType        string                 `json:"reportType"`
	Period            periodResponse         `json:"period"`
	TotalRevenue      json.Number            `json:"totalRevenue"`
	OrderCount        int                    `json:"orderCount"`
	AverageOrderValue json.Number            `json:"averageOrderValue"`
	RevenueByStatus   map[string]json.Number `json:"revenueByStatus"`
}

func newSummaryReportResponse(rep analytics.SummaryReport) summaryReportResponse {
	return summaryReportResponse{
		ReportType:        string(analytics.ReportTypeSummary),
		Period:            newPeriodResponse(rep.Period, ""),
		TotalRevenue:      money(rep.Aggregate.TotalRevenue),
		OrderCount:        rep.Aggregate.OrderCount,
		AverageOrderValue: money(rep.Aggregate.AvgOrderValue),
		RevenueByStatus:   statusBreakdown(rep.Aggregate.RevenueByStatus),
	}
}

type detailedReportResponse struct {
	summaryReportResponse
	RevenueByProductType map[string]json.Number  `json:"revenueByProductType"`
	TopProducts          []rankedProductResponse `json:"topProducts"`
	Orders               []orderResponse         `json:"orders"`
}

func newDetailedReportResponse(rep analytics.DetailedReport) detailedReportResponse {
	summary := newSummaryReportResponse(rep.SummaryReport)
	summary.ReportType = string(analytics.ReportTypeDetailed)
	orders := make([]orderResponse, 0, len(rep.Orders))
	for _, o := range rep.Orders {
		orders = append(orders, newOrderResponse(o))
	}
	return detailedReportResponse{
		summaryReportResponse: summary,
		RevenueByProductType:  typeBreakdown(rep.Aggregate.RevenueByProductType),
		TopProducts:           rankedProducts(rep.TopProducts),
		Orders:                orders,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't encode response",
			slog.String("err", err.Error()),
			slog.String("path", r.URL.Path),
		)
	}
}

// respondError maps any error to the API taxonomy. Unclassified errors
// reach the client as a generic internal error; the cause stays in the
// logs only.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		if errors.Is(err, analytics.ErrInvalidDateRange) {
			ae = apierr.InvalidDateRange(err.Error())
		} else {
			ae = apierr.Internal(err)
		}
	}
	if ae.Status >= http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("err", err.Error()),
			slog.String("path", r.URL.Path),
		)
	}
	s.respondJSON(w, r, ae.Status, errorResponse{Code: ae.Code, Message: ae.Message})
}
