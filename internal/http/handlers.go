package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"arbeitszeit/internal/core"
	applog "arbeitszeit/internal/log"
)

// handleCalendar returns the fixed-year calendar model.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":   s.tracker.Year(),
		"months": core.Months,
	})
}

// handleMonth returns the materialized day rows of one month.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	monthIndex, ok := s.monthIndexParam(w, r.URL.Query().Get("index"))
	if !ok {
		return
	}
	rows, err := s.tracker.MonthRows(r.Context(), monthIndex)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"monthIndex": monthIndex,
		"name":       core.MonthName(monthIndex),
		"rows":       rows,
	})
}

// handleDay records or clears one day.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleSetDay(w, r)
	case http.MethodDelete:
		s.handleClearDay(w, r)
	default:
		methodNotAllowed(w, "POST, DELETE")
	}
}

func (s *Server) handleSetDay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.Error("parse form error", applog.FieldError, err, applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	monthIndex, ok := s.monthIndexParam(w, r.Form.Get("month"))
	if !ok {
		return
	}
	day, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("day")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}

	// Hours text goes through unparsed: coercion is the tracker's policy.
	rec, err := s.tracker.SetDay(r.Context(), monthIndex, day, r.Form.Get("hours"), r.Form.Get("notes"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dateKey": core.DateKey(s.tracker.Year(), monthIndex, day),
		"hours":   rec.Hours,
		"notes":   rec.Notes,
	})
}

func (s *Server) handleClearDay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	monthIndex, ok := s.monthIndexParam(w, q.Get("month"))
	if !ok {
		return
	}
	day, err := strconv.Atoi(strings.TrimSpace(q.Get("day")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}
	if err := s.tracker.ClearDay(r.Context(), monthIndex, day); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSummary returns the month figures, rounded at this display boundary:
// two decimals for hours and currency, integer percent.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	monthIndex, ok := s.monthIndexParam(w, r.URL.Query().Get("index"))
	if !ok {
		return
	}
	sum, err := s.tracker.Summary(r.Context(), monthIndex)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"monthIndex":      sum.MonthIndex,
		"name":            sum.Name,
		"monthHours":      round2(sum.Hours),
		"yearHours":       round2(sum.YearHours),
		"remainingHours":  round2(sum.Remaining),
		"overage":         sum.Remaining < 0,
		"earnings":        round2(sum.Earnings),
		"progressPercent": int(math.Round(sum.ProgressPercent)),
	})
}

// handleCursor reads or moves the selected-month cursor.
func (s *Server) handleCursor(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		monthIndex := s.tracker.SelectedMonth(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"monthIndex": monthIndex,
			"name":       core.MonthName(monthIndex),
		})
	case http.MethodPut:
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form")
			return
		}
		monthIndex, ok := s.monthIndexParam(w, r.Form.Get("month"))
		if !ok {
			return
		}
		if err := s.tracker.SelectMonth(r.Context(), monthIndex); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (s *Server) monthIndexParam(w http.ResponseWriter, raw string) (int, bool) {
	monthIndex, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !core.ValidMonth(monthIndex) {
		writeError(w, http.StatusBadRequest, "invalid month index")
		return 0, false
	}
	return monthIndex, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrMonthIndex), errors.Is(err, core.ErrDayRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", applog.FieldError, err, applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	w.WriteHeader(http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
