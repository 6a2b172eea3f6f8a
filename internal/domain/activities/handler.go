package activities

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-log/internal/domain/recurrence"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/activities", func(ar chi.Router) {
		ar.Post("/", createActivityHandler(svc))
		ar.Get("/", listActivitiesHandler(svc))
	})

	r.Route("/activities", func(ar chi.Router) {
		ar.Get("/{activityID}", getActivityHandler(svc))
		ar.Patch("/{activityID}", updateActivityHandler(svc))
		ar.Delete("/{activityID}", deleteActivityHandler(svc))
	})
}

type recurrencePayload struct {
	Frequency string     `json:"frequency" enums:"none,daily,weekly,monthly,yearly"`
	Interval  int        `json:"interval"`
	NextAt    *time.Time `json:"next_at,omitempty"`
	EndAt     *time.Time `json:"end_at,omitempty"`
}

func (p *recurrencePayload) toInfo() (*recurrence.Info, error) {
	if p == nil {
		return nil, nil
	}
	freq, ok := recurrence.ParseFrequency(p.Frequency)
	if !ok {
		return nil, errors.New("frequency must be none, daily, weekly, monthly or yearly")
	}
	info := recurrence.Info{
		Frequency: freq,
		Interval:  p.Interval,
		NextAt:    p.NextAt,
		EndAt:     p.EndAt,
	}.Normalize()
	return &info, nil
}

func toRecurrencePayload(info *recurrence.Info) *recurrencePayload {
	if info == nil {
		return nil
	}
	return &recurrencePayload{
		Frequency: string(info.Frequency),
		Interval:  info.Interval,
		NextAt:    info.NextAt,
		EndAt:     info.EndAt,
	}
}

type createActivityRequest struct {
	Name       string             `json:"name"`
	Notes      string             `json:"notes"`
	OccurredAt string             `json:"occurred_at"` // RFC3339, opcional (default: ahora)
	Recurrence *recurrencePayload `json:"recurrence"`
}

type activityResponse struct {
	ID         string             `json:"id"`
	PetID      string             `json:"pet_id"`
	Name       string             `json:"name"`
	Notes      string             `json:"notes"`
	OccurredAt time.Time          `json:"occurred_at"`
	Recurrence *recurrencePayload `json:"recurrence,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// createActivityHandler godoc
// @Summary Registrar actividad
// @Description Registra una actividad de cuidado (comida, paseo, medicación) para la mascota indicada.
// @Tags activities
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createActivityRequest true "Datos de la actividad; occurred_at en RFC3339"
// @Success 201 {object} activityResponse
// @Failure 400 {string} string "invalid json / occurred_at inválido"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/activities [post]
func createActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createActivityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var occurred time.Time
		if req.OccurredAt != "" {
			t, err := time.Parse(time.RFC3339, req.OccurredAt)
			if err != nil {
				http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
				return
			}
			occurred = t
		}

		rec, err := req.Recurrence.toInfo()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), chi.URLParam(r, "petID"), CreateInput{
			Name:       req.Name,
			Notes:      req.Notes,
			OccurredAt: occurred,
			Recurrence: rec,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toActivityResponse(a))
	}
}

func listActivitiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]activityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toActivityResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "activityID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toActivityResponse(a))
	}
}

type updateActivityRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	PetID      *string            `json:"pet_id"`
	Name       *string            `json:"name"`
	Notes      *string            `json:"notes"`
	OccurredAt *string            `json:"occurred_at"` // RFC3339
	Recurrence *recurrencePayload `json:"recurrence"`  // null = limpiar
}

func updateActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		// Para soportar "recurrence": null (= limpiar) hay que detectar
		// presencia del campo, igual que birth_date en el PATCH de pets.
		var raw map[string]json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateActivityRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			PetID: req.PetID,
			Name:  req.Name,
			Notes: req.Notes,
		}

		if req.OccurredAt != nil {
			t, err := time.Parse(time.RFC3339, *req.OccurredAt)
			if err != nil {
				http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
				return
			}
			in.OccurredAt = &t
		}

		if v, exists := raw["recurrence"]; exists {
			if string(v) == "null" {
				in.ClearRecurrence = true
			} else {
				rec, err := req.Recurrence.toInfo()
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				in.Recurrence = rec
				if rec == nil {
					// frequency "none" explícita equivale a limpiar
					in.ClearRecurrence = true
				}
			}
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "activityID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toActivityResponse(a))
	}
}

func deleteActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := svc.Delete(r.Context(), chi.URLParam(r, "activityID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !removed {
			http.Error(w, "activity not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toActivityResponse(a Activity) activityResponse {
	return activityResponse{
		ID:         a.ID,
		PetID:      a.PetID,
		Name:       a.Name,
		Notes:      a.Notes,
		OccurredAt: a.OccurredAt,
		Recurrence: toRecurrencePayload(a.Recurrence),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "activity not found", http.StatusNotFound)
	case errors.Is(err, ErrPetNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Duplicado a propósito (ver nota en pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
