package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bher20/evtariff/internal/tariff"
)

// handleGetTariffs lists the stored tariffs
// @Summary List tariffs
// @Description Returns the stored tariffs, initializing the defaults on first use
// @Tags tariffs
// @Produce json
// @Success 200 {array} tariff.Tariff
// @Router /api/tariffs [get]
func (s *Server) handleGetTariffs(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Tariffs(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// handleReplaceTariffs replaces the whole tariff list
// @Summary Replace all tariffs
// @Tags tariffs
// @Accept json
// @Produce json
// @Param tariffs body []tariff.Tariff true "Tariffs"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse
// @Router /api/tariffs [post]
func (s *Server) handleReplaceTariffs(w http.ResponseWriter, r *http.Request) {
	var list []tariff.Tariff
	if err := decode(r, &list); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.svc.ReplaceTariffs(r.Context(), list); err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// handleAddTariff adds a tariff under a new id
// @Summary Add a tariff
// @Tags tariffs
// @Accept json
// @Produce json
// @Param tariff body tariff.Tariff true "Tariff"
// @Success 201 {object} tariff.Tariff
// @Failure 400 {object} errorResponse
// @Router /api/tariffs/new [post]
func (s *Server) handleAddTariff(w http.ResponseWriter, r *http.Request) {
	var t tariff.Tariff
	if err := decode(r, &t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	added, err := s.svc.AddTariff(r.Context(), t)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, added)
}

// handleUpdateTariff replaces one tariff, keeping its id
// @Summary Update a tariff
// @Tags tariffs
// @Accept json
// @Produce json
// @Param id path string true "Tariff ID"
// @Param tariff body tariff.Tariff true "Tariff"
// @Success 200 {object} tariff.Tariff
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/tariffs/{id} [put]
func (s *Server) handleUpdateTariff(w http.ResponseWriter, r *http.Request) {
	var t tariff.Tariff
	if err := decode(r, &t); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	updated, err := s.svc.UpdateTariff(r.Context(), chi.URLParam(r, "id"), t)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// handleDeleteTariff removes a tariff
// @Summary Delete a tariff
// @Tags tariffs
// @Produce json
// @Param id path string true "Tariff ID"
// @Success 200 {object} successResponse
// @Failure 404 {object} errorResponse
// @Router /api/tariffs/{id} [delete]
func (s *Server) handleDeleteTariff(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTariff(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// handleCharging returns EV charging estimates for one tariff
// @Summary EV charging estimates
// @Description Per-scenario cost and duration for charging the configured vehicle; use id "selected" for the preferred tariff
// @Tags charging
// @Produce json
// @Param id path string true "Tariff ID or selected"
// @Success 200 {object} tariff.ChargingEstimates
// @Failure 404 {object} errorResponse
// @Router /api/tariffs/{id}/charging [get]
func (s *Server) handleCharging(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "selected" {
		id = ""
	}
	est, err := s.svc.Estimates(r.Context(), id)
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, est)
}

// @Summary Get usage assumptions
// @Tags household
// @Produce json
// @Success 200 {object} tariff.UsageAssumptions
// @Router /api/usage-assumptions [get]
func (s *Server) handleGetUsage(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Usage(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// @Summary Replace usage assumptions
// @Tags household
// @Accept json
// @Produce json
// @Param usage body tariff.UsageAssumptions true "Usage"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse
// @Router /api/usage-assumptions [post]
func (s *Server) handleReplaceUsage(w http.ResponseWriter, r *http.Request) {
	var u tariff.UsageAssumptions
	if err := decode(r, &u); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.svc.ReplaceUsage(r.Context(), u); err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// @Summary Get view preferences
// @Tags household
// @Produce json
// @Success 200 {object} tariff.Preferences
// @Router /api/preferences [get]
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Preferences(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// @Summary Replace view preferences
// @Tags household
// @Accept json
// @Produce json
// @Param preferences body tariff.Preferences true "Preferences"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse
// @Router /api/preferences [post]
func (s *Server) handleReplacePreferences(w http.ResponseWriter, r *http.Request) {
	var p tariff.Preferences
	if err := decode(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.svc.ReplacePreferences(r.Context(), p); err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// handleComparison ranks the tariffs by annual cost
// @Summary Compare tariffs
// @Description Every tariff with its estimated annual cost, cheapest first
// @Tags tariffs
// @Produce json
// @Success 200 {array} tariff.TariffWithCost
// @Failure 500 {object} errorResponse
// @Router /api/comparison [get]
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Comparison(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
