// Package model defines the biodiversity entities held by the record store
// and the response envelope returned by the query agent.
package model

import "time"

// SpeciesClass is the taxonomic class of a species.
type SpeciesClass string

const (
	ClassBird  SpeciesClass = "Bird"
	ClassPlant SpeciesClass = "Plant"
)

// CollisionRisk is a bird species' estimated hazard level to aircraft.
// An empty value means the risk has not been assessed.
type CollisionRisk string

const (
	RiskLow    CollisionRisk = "low"
	RiskMedium CollisionRisk = "medium"
	RiskHigh   CollisionRisk = "high"
)

// ConservationStatus is the IUCN-style threat classification of a species.
// An empty value means the status is not set.
type ConservationStatus string

const (
	StatusLeastConcern       ConservationStatus = "LC"
	StatusNearThreatened     ConservationStatus = "NT"
	StatusVulnerable         ConservationStatus = "VU"
	StatusEndangered         ConservationStatus = "EN"
	StatusCriticallyEndanger ConservationStatus = "CR"
)

// ZoneType categorizes an airport zone.
type ZoneType string

const (
	ZoneRunway    ZoneType = "runway"
	ZoneGrassland ZoneType = "grassland"
	ZoneWetland   ZoneType = "wetland"
	ZoneBuilt     ZoneType = "built"
	ZoneWoodland  ZoneType = "woodland"
)

// IncidentType categorizes a wildlife incident.
type IncidentType string

const (
	IncidentBirdStrike        IncidentType = "bird_strike"
	IncidentWildlifeIntrusion IncidentType = "wildlife_intrusion"
	IncidentOther             IncidentType = "other"
)

// Severity is the gravity of an incident.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Coordinates is a GPS position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Species is a bird or plant species present on the airport grounds.
type Species struct {
	ID                 string             `json:"id"`
	ScientificName     string             `json:"scientific_name"`
	CommonName         string             `json:"common_name"`
	Class              SpeciesClass       `json:"class"`
	Description        string             `json:"description"`
	CollisionRisk      CollisionRisk      `json:"collision_risk,omitempty"`      // birds only
	ConservationStatus ConservationStatus `json:"conservation_status,omitempty"` // empty = unset
	PreferredHabitat   string             `json:"preferred_habitat,omitempty"`
}

// IsBird reports whether the species belongs to the bird class.
func (s *Species) IsBird() bool {
	return s.Class == ClassBird
}

// IsThreatened reports whether the conservation status is NT, VU, EN or CR.
func (s *Species) IsThreatened() bool {
	switch s.ConservationStatus {
	case StatusNearThreatened, StatusVulnerable, StatusEndangered, StatusCriticallyEndanger:
		return true
	default:
		return false
	}
}

// Zone is a delimited area of the airport.
type Zone struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     ZoneType      `json:"type"`
	Boundary []Coordinates `json:"boundary"` // polygon, at least one point
}

// Observation is a single field observation of a species.
type Observation struct {
	ID        string      `json:"id"`
	SpeciesID string      `json:"species_id"`
	Timestamp time.Time   `json:"timestamp"`
	Position  Coordinates `json:"position"`
	ZoneID    string      `json:"zone_id,omitempty"` // optional, may not resolve
	Count     int         `json:"count"`             // individuals observed, >= 1
	Observer  string      `json:"observer"`
	Notes     string      `json:"notes,omitempty"`
	PhotoURL  string      `json:"photo_url,omitempty"`
}

// Incident is a recorded wildlife incident such as a bird strike.
type Incident struct {
	ID          string       `json:"id"`
	Type        IncidentType `json:"type"`
	Timestamp   time.Time    `json:"timestamp"`
	Position    Coordinates  `json:"position"`
	Severity    Severity     `json:"severity"`
	SpeciesID   string       `json:"species_id,omitempty"` // optional
	Description string       `json:"description"`
	Mitigation  string       `json:"mitigation,omitempty"`
}

// ChatResponse is the envelope returned for every question. It is built
// fresh per query and never persisted.
type ChatResponse struct {
	ID              string         `json:"id"`
	Answer          string         `json:"answer"`
	Data            map[string]any `json:"data,omitempty"`
	QueryType       string         `json:"query_type"`
	Confidence      float64        `json:"confidence"`        // always in [0,1]
	ExecutionTimeMs float64        `json:"execution_time_ms"` // >= 0
}
