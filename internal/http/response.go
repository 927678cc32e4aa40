package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"mobiz/internal/core"
	"mobiz/internal/log"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type totalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

type bucketResponse struct {
	Key     string `json:"key"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

type summaryResponse struct {
	Buckets []bucketResponse `json:"buckets"`
}

type chartTotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type categoryResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type chartCategoriesResponse struct {
	NoData     bool               `json:"no_data"`
	Categories []categoryResponse `json:"categories"`
}

// recordResponse carries stored values verbatim.
type recordResponse struct {
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type recordsResponse struct {
	Kind    string           `json:"kind"`
	Records []recordResponse `json:"records"`
}

type priceResponse struct {
	Price string `json:"price"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toSummaryResponse(sum core.Summary) summaryResponse {
	out := summaryResponse{Buckets: make([]bucketResponse, 0, len(sum))}
	for _, b := range sum {
		out.Buckets = append(out.Buckets, bucketResponse{
			Key:     b.Key,
			Income:  money(b.Income),
			Expense: money(b.Expense),
			Net:     money(b.Net()),
		})
	}
	return out
}

func toRecordsResponse(kind core.Kind, rows [][]string) recordsResponse {
	out := recordsResponse{Kind: kind.String(), Records: make([]recordResponse, 0, len(rows))}
	for _, f := range rows {
		switch kind {
		case core.KindIncome:
			out.Records = append(out.Records, recordResponse{Date: f[0], Description: f[1], Amount: f[2]})
		case core.KindExpense:
			out.Records = append(out.Records, recordResponse{Date: f[0], Category: f[1], Description: f[2], Amount: f[3]})
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// isValidationError reports errors caused by the request input.
func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidInput,
		core.ErrEmptyDescription,
		core.ErrEmptyCategory,
		core.ErrDelimiterInField,
		core.ErrUnknownKind,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeValidationError answers 422 with the validation message.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:     err.Error(),
		RequestID: log.RequestID(r.Context()),
	})
}

// writeInternalError logs err and answers 500 without exposing details.
func writeInternalError(w http.ResponseWriter, r *http.Request, op, msg string, err error) {
	ctx := r.Context()
	fields := log.NewFields().WithRequestID(log.RequestID(ctx))
	fields[log.FieldPath] = r.URL.Path
	log.NewStructuredLogger(log.FromContext(ctx)).LogError(ctx, msg, err, log.ComponentLedger, op, fields)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:     "internal error",
		RequestID: log.RequestID(r.Context()),
	})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:     msg,
		RequestID: log.RequestID(r.Context()),
	})
}
