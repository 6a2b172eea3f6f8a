package reminders

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-log/internal/domain/recurrence"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/reminders", func(rr chi.Router) {
		rr.Post("/", createReminderHandler(svc))
		rr.Get("/", listRemindersHandler(svc))
	})

	r.Route("/reminders", func(rr chi.Router) {
		rr.Get("/due", listDueRemindersHandler(svc))
		rr.Get("/{reminderID}", getReminderHandler(svc))
		rr.Patch("/{reminderID}", updateReminderHandler(svc))
		rr.Delete("/{reminderID}", deleteReminderHandler(svc))
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

type createReminderRequest struct {
	Name       string             `json:"name"`
	Notes      string             `json:"notes"`
	RemindAt   *string            `json:"remind_at"` // RFC3339, opcional
	Recurrence *recurrencePayload `json:"recurrence"`
}

type reminderResponse struct {
	ID         string             `json:"id"`
	PetID      string             `json:"pet_id"`
	Name       string             `json:"name"`
	Notes      string             `json:"notes"`
	RemindAt   *time.Time         `json:"remind_at,omitempty"`
	Recurrence *recurrencePayload `json:"recurrence,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// createReminderHandler godoc
// @Summary Crear recordatorio
// @Description Crea un recordatorio para la mascota indicada. Sin remind_at queda "listo en cualquier momento".
// @Tags reminders
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createReminderRequest true "Datos del recordatorio; remind_at en RFC3339"
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "invalid json / remind_at inválido"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/reminders [post]
func createReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var remindAt *time.Time
		if req.RemindAt != nil && *req.RemindAt != "" {
			t, err := time.Parse(time.RFC3339, *req.RemindAt)
			if err != nil {
				http.Error(w, "remind_at must be RFC3339", http.StatusBadRequest)
				return
			}
			remindAt = &t
		}

		rec, err := req.Recurrence.toInfo()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rem, err := svc.Create(r.Context(), chi.URLParam(r, "petID"), CreateInput{
			Name:       req.Name,
			Notes:      req.Notes,
			RemindAt:   remindAt,
			Recurrence: rec,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toReminderResponse(rem))
	}
}

func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, toReminderResponse(rem))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// listDueRemindersHandler acepta ?at=RFC3339 (default: ahora).
func listDueRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at := time.Now()
		if v := r.URL.Query().Get("at"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "at must be RFC3339", http.StatusBadRequest)
				return
			}
			at = t
		}

		items, err := svc.Due(r.Context(), at)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, toReminderResponse(rem))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, err := svc.GetByID(r.Context(), chi.URLParam(r, "reminderID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReminderResponse(rem))
	}
}

type updateReminderRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	PetID      *string            `json:"pet_id"`
	Name       *string            `json:"name"`
	Notes      *string            `json:"notes"`
	RemindAt   *string            `json:"remind_at"`  // RFC3339; null = limpiar
	Recurrence *recurrencePayload `json:"recurrence"` // null = limpiar
}

func updateReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		// remind_at y recurrence admiten null (= limpiar); hay que detectar
		// presencia del campo, igual que birth_date en el PATCH de pets.
		var raw map[string]json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateReminderRequest
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

		if v, exists := raw["remind_at"]; exists {
			if string(v) == "null" {
				in.ClearRemindAt = true
			} else {
				t, err := time.Parse(time.RFC3339, deref(req.RemindAt))
				if err != nil {
					http.Error(w, "remind_at must be RFC3339 or null", http.StatusBadRequest)
					return
				}
				in.RemindAt = &t
			}
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
					in.ClearRecurrence = true
				}
			}
		}

		rem, err := svc.Update(r.Context(), chi.URLParam(r, "reminderID"), in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponse(rem))
	}
}

func deleteReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := svc.Delete(r.Context(), chi.URLParam(r, "reminderID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !removed {
			http.Error(w, "reminder not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toReminderResponse(rem Reminder) reminderResponse {
	return reminderResponse{
		ID:         rem.ID,
		PetID:      rem.PetID,
		Name:       rem.Name,
		Notes:      rem.Notes,
		RemindAt:   rem.RemindAt,
		Recurrence: toRecurrencePayload(rem.Recurrence),
		CreatedAt:  rem.CreatedAt,
		UpdatedAt:  rem.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "reminder not found", http.StatusNotFound)
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
