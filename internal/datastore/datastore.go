// Package datastore implements the in-memory record store backing the query
// agent. The four tables are loaded and validated once at construction and
// are read-only afterwards, so a single store can be shared freely.
package datastore

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/errors"
	"github.com/aerowise/aerowise-go/internal/model"
)

// Dataset file names expected in a dataset directory.
const (
	SpeciesFile      = "species.json"
	ObservationsFile = "observations.json"
	ZonesFile        = "zones.json"
	IncidentsFile    = "incidents.json"
)

// Store holds the validated biodiversity tables and their id indexes.
// All access is read-only; callers must not modify returned slices.
type Store struct {
	species      []model.Species
	observations []model.Observation
	zones        []model.Zone
	incidents    []model.Incident

	speciesByID     map[string]*model.Species
	zonesByID       map[string]*model.Zone
	observationByID map[string]*model.Observation
}

// Stats summarizes the loaded dataset for the console stats command.
type Stats struct {
	Species               int
	BirdSpecies           int
	PlantSpecies          int
	Observations          int
	Zones                 int
	Incidents             int
	HighSeverityIncidents int
}

// Open loads the record store from the configured dataset directory, or from
// the embedded sample dataset when no path is set.
func Open(settings *conf.Settings) (*Store, error) {
	if settings.Dataset.Path == "" {
		return Load(EmbeddedDataset())
	}
	if _, err := os.Stat(settings.Dataset.Path); err != nil {
		return nil, errors.Newf("dataset directory not accessible: %v", err).
			Component("datastore").
			Category(errors.CategoryDatasetLoad).
			Context("path", settings.Dataset.Path).
			Build()
	}
	return Load(os.DirFS(settings.Dataset.Path))
}

// Load reads the four dataset files from fsys, validates them and builds the
// id indexes. Any parse or validation failure is fatal for the whole agent.
func Load(fsys fs.FS) (*Store, error) {
	s := &Store{}

	if err := readTable(fsys, SpeciesFile, &s.species); err != nil {
		return nil, err
	}
	if err := readTable(fsys, ZonesFile, &s.zones); err != nil {
		return nil, err
	}
	if err := readTable(fsys, ObservationsFile, &s.observations); err != nil {
		return nil, err
	}
	if err := readTable(fsys, IncidentsFile, &s.incidents); err != nil {
		return nil, err
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.buildIndexes()
	return s, nil
}

// readTable decodes a single JSON table file into out.
func readTable[T any](fsys fs.FS, name string, out *[]T) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Newf("failed to read dataset file: %v", err).
			Component("datastore").
			Category(errors.CategoryDatasetLoad).
			Context("file", name).
			Build()
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Newf("failed to parse dataset file: %v", err).
			Component("datastore").
			Category(errors.CategoryDatasetLoad).
			Context("file", name).
			Build()
	}
	return nil
}

// validate enforces the dataset schema invariants: unique ids, required
// fields and resolvable mandatory foreign keys. Optional foreign keys
// (observation zone, incident species) are allowed to dangle; handlers
// substitute placeholders for those at query time.
func (s *Store) validate() error {
	speciesIDs := make(map[string]bool, len(s.species))
	for i := range s.species {
		sp := &s.species[i]
		if err := requireFields(SpeciesFile, sp.ID, map[string]string{
			"scientific_name": sp.ScientificName,
			"common_name":     sp.CommonName,
		}); err != nil {
			return err
		}
		if sp.Class != model.ClassBird && sp.Class != model.ClassPlant {
			return validationErr(SpeciesFile, sp.ID, fmt.Sprintf("invalid class %q", sp.Class))
		}
		if speciesIDs[sp.ID] {
			return validationErr(SpeciesFile, sp.ID, "duplicate id")
		}
		speciesIDs[sp.ID] = true
	}

	zoneIDs := make(map[string]bool, len(s.zones))
	for i := range s.zones {
		z := &s.zones[i]
		if err := requireFields(ZonesFile, z.ID, map[string]string{"name": z.Name}); err != nil {
			return err
		}
		if len(z.Boundary) == 0 {
			return validationErr(ZonesFile, z.ID, "boundary polygon has no points")
		}
		if zoneIDs[z.ID] {
			return validationErr(ZonesFile, z.ID, "duplicate id")
		}
		zoneIDs[z.ID] = true
	}

	obsIDs := make(map[string]bool, len(s.observations))
	for i := range s.observations {
		obs := &s.observations[i]
		if obs.ID == "" {
			return validationErr(ObservationsFile, "", "missing id")
		}
		if obsIDs[obs.ID] {
			return validationErr(ObservationsFile, obs.ID, "duplicate id")
		}
		obsIDs[obs.ID] = true
		if obs.Timestamp.IsZero() {
			return validationErr(ObservationsFile, obs.ID, "missing timestamp")
		}
		if obs.Count < 1 {
			return validationErr(ObservationsFile, obs.ID, fmt.Sprintf("count must be >= 1, got %d", obs.Count))
		}
		if !speciesIDs[obs.SpeciesID] {
			return validationErr(ObservationsFile, obs.ID, fmt.Sprintf("unknown species_id %q", obs.SpeciesID))
		}
	}

	incidentIDs := make(map[string]bool, len(s.incidents))
	for i := range s.incidents {
		inc := &s.incidents[i]
		if inc.ID == "" {
			return validationErr(IncidentsFile, "", "missing id")
		}
		if incidentIDs[inc.ID] {
			return validationErr(IncidentsFile, inc.ID, "duplicate id")
		}
		incidentIDs[inc.ID] = true
		if inc.Timestamp.IsZero() {
			return validationErr(IncidentsFile, inc.ID, "missing timestamp")
		}
		switch inc.Severity {
		case model.SeverityLow, model.SeverityMedium, model.SeverityHigh:
		default:
			return validationErr(IncidentsFile, inc.ID, fmt.Sprintf("invalid severity %q", inc.Severity))
		}
	}

	return nil
}

func requireFields(file, id string, fields map[string]string) error {
	if id == "" {
		return validationErr(file, "", "missing id")
	}
	for name, value := range fields {
		if value == "" {
			return validationErr(file, id, "missing "+name)
		}
	}
	return nil
}

func validationErr(file, id, msg string) error {
	return errors.Newf("invalid record: %s", msg).
		Component("datastore").
		Category(errors.CategoryValidation).
		Context("file", file).
		Context("id", id).
		Build()
}

func (s *Store) buildIndexes() {
	s.speciesByID = make(map[string]*model.Species, len(s.species))
	for i := range s.species {
		s.speciesByID[s.species[i].ID] = &s.species[i]
	}
	s.zonesByID = make(map[string]*model.Zone, len(s.zones))
	for i := range s.zones {
		s.zonesByID[s.zones[i].ID] = &s.zones[i]
	}
	s.observationByID = make(map[string]*model.Observation, len(s.observations))
	for i := range s.observations {
		s.observationByID[s.observations[i].ID] = &s.observations[i]
	}
}

// Species returns the species table in load order.
func (s *Store) Species() []model.Species { return s.species }

// Observations returns the observation table in load order.
func (s *Store) Observations() []model.Observation { return s.observations }

// Zones returns the zone table in load order.
func (s *Store) Zones() []model.Zone { return s.zones }

// Incidents returns the incident table in load order.
func (s *Store) Incidents() []model.Incident { return s.incidents }

// SpeciesByID looks up a species by id.
func (s *Store) SpeciesByID(id string) (*model.Species, bool) {
	sp, ok := s.speciesByID[id]
	return sp, ok
}

// ZoneByID looks up a zone by id.
func (s *Store) ZoneByID(id string) (*model.Zone, bool) {
	z, ok := s.zonesByID[id]
	return z, ok
}

// ObservationByID looks up an observation by id.
func (s *Store) ObservationByID(id string) (*model.Observation, bool) {
	obs, ok := s.observationByID[id]
	return obs, ok
}

// Stats returns summary counts over the loaded tables.
func (s *Store) Stats() Stats {
	st := Stats{
		Species:      len(s.species),
		Observations: len(s.observations),
		Zones:        len(s.zones),
		Incidents:    len(s.incidents),
	}
	for i := range s.species {
		if s.species[i].IsBird() {
			st.BirdSpecies++
		} else {
			st.PlantSpecies++
		}
	}
	for i := range s.incidents {
		if s.incidents[i].Severity == model.SeverityHigh {
			st.HighSeverityIncidents++
		}
	}
	return st
}
