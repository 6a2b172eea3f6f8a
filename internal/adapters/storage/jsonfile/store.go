package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pet-care-log/internal/domain/activities"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/domain/reminders"
	"pet-care-log/internal/platform/logger"
)

const snapshotFile = "petlog.json"

// Store mantiene las tres colecciones (mascotas, actividades, recordatorios)
// en memoria y las persiste como un único snapshot JSON. Cada mutación se
// aplica y se persiste dentro de la misma sección crítica: como mucho hay
// una escritura en vuelo y al liberar el lock el archivo ya refleja el
// cambio. Las lecturas comparten RLock.
//
// No hay singleton: el Store se construye una vez y se inyecta en los
// servicios vía sus vistas PetRepo/ActivityRepo/ReminderRepo.
type Store struct {
	mu   sync.RWMutex
	path string
	log  logger.Logger

	pets     map[string]pets.Pet
	petOrder []string

	activities    map[string]activities.Activity
	activityOrder []string

	reminders     map[string]reminders.Reminder
	reminderOrder []string
}

// Open prepara el directorio de datos y hace la carga inicial del snapshot.
// Un snapshot ilegible en esta carga implícita se registra y se descarta
// (la tienda arranca vacía); los llamadores explícitos de Load sí reciben
// el error.
func Open(dataDir string, log logger.Logger) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{
		path:       filepath.Join(dataDir, snapshotFile),
		log:        log,
		pets:       make(map[string]pets.Pet),
		activities: make(map[string]activities.Activity),
		reminders:  make(map[string]reminders.Reminder),
	}

	if err := s.Load(context.Background()); err != nil {
		s.log.Warn("snapshot load failed, starting empty", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
	}

	return s, nil
}

// Path devuelve la ruta del archivo de snapshot.
func (s *Store) Path() string {
	return s.path
}

// Load lee el snapshot y reemplaza las colecciones en memoria por completo,
// preservando el orden del archivo. Si el archivo no existe deja el estado
// tal cual (primer arranque = vacío).
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}

	s.replaceAll(snap)
	return nil
}

// Save persiste el estado actual completo. Escritura atómica: archivo
// temporal + rename, para que un corte a mitad de escritura no deje el
// snapshot truncado.
func (s *Store) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx)
}

// save exige que el caller tenga el write lock.
func (s *Store) save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.toSnapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func (s *Store) replaceAll(snap snapshot) {
	s.pets = make(map[string]pets.Pet, len(snap.Pets))
	s.petOrder = s.petOrder[:0]
	for _, rec := range snap.Pets {
		p := rec.toDomain()
		s.pets[p.ID] = p
		s.petOrder = append(s.petOrder, p.ID)
	}

	s.activities = make(map[string]activities.Activity, len(snap.Activities))
	s.activityOrder = s.activityOrder[:0]
	for _, rec := range snap.Activities {
		a := rec.toDomain()
		s.activities[a.ID] = a
		s.activityOrder = append(s.activityOrder, a.ID)
	}

	s.reminders = make(map[string]reminders.Reminder, len(snap.Reminders))
	s.reminderOrder = s.reminderOrder[:0]
	for _, rec := range snap.Reminders {
		r := rec.toDomain()
		s.reminders[r.ID] = r
		s.reminderOrder = append(s.reminderOrder, r.ID)
	}
}

func (s *Store) toSnapshot() snapshot {
	snap := snapshot{
		Pets:       make([]petRecord, 0, len(s.petOrder)),
		Activities: make([]activityRecord, 0, len(s.activityOrder)),
		Reminders:  make([]reminderRecord, 0, len(s.reminderOrder)),
	}
	for _, id := range s.petOrder {
		snap.Pets = append(snap.Pets, toPetRecord(s.pets[id]))
	}
	for _, id := range s.activityOrder {
		snap.Activities = append(snap.Activities, toActivityRecord(s.activities[id]))
	}
	for _, id := range s.reminderOrder {
		snap.Reminders = append(snap.Reminders, toReminderRecord(s.reminders[id]))
	}
	return snap
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// PetRepo devuelve la vista pets.Repository sobre la tienda.
func (s *Store) PetRepo() pets.Repository {
	return petRepo{s}
}

// ActivityRepo devuelve la vista activities.Repository sobre la tienda.
func (s *Store) ActivityRepo() activities.Repository {
	return activityRepo{s}
}

// ReminderRepo devuelve la vista reminders.Repository sobre la tienda.
func (s *Store) ReminderRepo() reminders.Repository {
	return reminderRepo{s}
}
