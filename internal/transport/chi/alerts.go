package chi

import "net/http"

// defaultAlertLimit is the feed page size when no limit is given.
const defaultAlertLimit = 50

// ListAlerts handles GET /alerts.
func (s *Server) ListAlerts(w http.ResponseWriter, r *http.Request) {
	if s.svc.Alerts == nil {
		writeJSON(w, http.StatusOK, AlertList{Items: []Alert{}})
		return
	}

	params, err := bindListAlerts(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	limit := defaultAlertLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	alerts, err := s.svc.Alerts.Recent(r.Context(), UserFromContext(r.Context()), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]Alert, len(alerts))
	for i, a := range alerts {
		items[i] = Alert{
			JobID:     a.JobID(),
			Title:     a.Title(),
			Company:   a.Company(),
			Keyword:   a.Keyword(),
			Percent:   a.Percent(),
			CreatedAt: a.CreatedAt(),
		}
	}
	writeJSON(w, http.StatusOK, AlertList{Items: items})
}
