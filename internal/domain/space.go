package domain

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// SpaceType describes one entry in the fixed catalog of organizable areas.
type SpaceType struct {
	Label     string
	BaseHours float64
}

// SpaceTypes is the catalog of offered space types with their base-hour
// constants. "Custom" carries no base and relies on a manual estimate.
var SpaceTypes = []SpaceType{
	{Label: "Pantry Refresh", BaseHours: 2},
	{Label: "Pantry Deep Clean", BaseHours: 4},
	{Label: "Closet Declutter", BaseHours: 3},
	{Label: "Garage Organization", BaseHours: 6},
	{Label: "Storage Room", BaseHours: 5},
	{Label: "Kitchen Cabinets", BaseHours: 3},
	{Label: "Bathroom Storage", BaseHours: 1.5},
	{Label: "Kids Room", BaseHours: 3},
	{Label: "Home Office", BaseHours: 2.5},
	{Label: "Custom", BaseHours: 0},
}

// fallbackBaseHours is used when a space type is not in the catalog.
const fallbackBaseHours = 3

// SizeMultipliers scales base hours by how large the space is.
var SizeMultipliers = map[string]float64{
	"small":  0.7,
	"medium": 1.0,
	"large":  1.5,
	"xlarge": 2.0,
}

// ClutterMultipliers scales base hours by how cluttered the space is.
var ClutterMultipliers = map[string]float64{
	"light":    0.8,
	"moderate": 1.0,
	"heavy":    1.3,
	"extreme":  1.6,
}

// BaseHoursFor returns the catalog base hours for a space type label.
func BaseHoursFor(label string) float64 {
	for _, t := range SpaceTypes {
		if t.Label == label {
			return t.BaseHours
		}
	}
	return fallbackBaseHours
}

// EstimateSpaceHours derives the working-hours estimate for a space:
// base hours x size multiplier x clutter multiplier, rounded to one decimal.
// Unknown size or clutter classes fall back to a multiplier of 1.
func EstimateSpaceHours(spaceType, size, clutter string) float64 {
	base := BaseHoursFor(spaceType)

	sizeMult, ok := SizeMultipliers[size]
	if !ok {
		sizeMult = 1
	}
	clutterMult, ok := ClutterMultipliers[clutter]
	if !ok {
		clutterMult = 1
	}

	return math.Round(base*sizeMult*clutterMult*10) / 10
}

// SpaceHours is the estimated-hours value of a space. It is either derived
// from the space parameters or manually entered; the Manual tag decides
// whether parameter changes re-derive the value.
type SpaceHours struct {
	Value  float64
	Manual bool
}

type spaceHoursJSON struct {
	Value  float64 `json:"value"`
	Manual bool    `json:"manual,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (h SpaceHours) MarshalJSON() ([]byte, error) {
	return json.Marshal(spaceHoursJSON{Value: h.Value, Manual: h.Manual})
}

// UnmarshalJSON implements json.Unmarshaler. Bare numbers are accepted for
// rows written before the tagged representation existed.
func (h *SpaceHours) UnmarshalJSON(data []byte) error {
	var obj spaceHoursJSON
	if err := json.Unmarshal(data, &obj); err == nil {
		h.Value = obj.Value
		h.Manual = obj.Manual
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	h.Value = n
	h.Manual = false
	return nil
}

// Photo is the metadata of one captured photo. Raw image payloads live on
// the device (or in the external drive folder); only references travel to
// the remote store.
type Photo struct {
	ID                  string    `json:"id"`
	URL                 string    `json:"url"`
	Timestamp           time.Time `json:"timestamp"`
	OriginalName        string    `json:"originalName,omitempty"`
	DescriptiveFilename string    `json:"descriptiveFilename,omitempty"`
	DriveURL            string    `json:"gdriveUrl,omitempty"`
}

// Space is one organizable area within a Job.
type Space struct {
	ID           string     `json:"id"`
	SpaceType    string     `json:"spaceType"`
	Size         string     `json:"size"`
	ClutterLevel string     `json:"clutterLevel"`
	Notes        string     `json:"notes,omitempty"`
	BeforePhotos []Photo    `json:"beforePhotos"`
	AfterPhotos  []Photo    `json:"afterPhotos"`
	Hours        SpaceHours `json:"estimatedHours"`
}

// NewSpace creates a space with catalog defaults and a derived estimate.
func NewSpace() Space {
	s := Space{
		ID:           uuid.New().String(),
		SpaceType:    SpaceTypes[0].Label,
		Size:         "medium",
		ClutterLevel: "moderate",
		BeforePhotos: []Photo{},
		AfterPhotos:  []Photo{},
	}
	s.Hours = SpaceHours{Value: EstimateSpaceHours(s.SpaceType, s.Size, s.ClutterLevel)}
	return s
}

// EffectiveHours returns the hours to charge for this space: the manual
// value when the estimate was overridden, otherwise the derived one.
func (s *Space) EffectiveHours() float64 {
	if s.Hours.Manual {
		return s.Hours.Value
	}
	return EstimateSpaceHours(s.SpaceType, s.Size, s.ClutterLevel)
}

// SetManualHours overrides the estimate with a user-entered value.
// Parameter changes no longer re-derive it until Rederive is called.
func (s *Space) SetManualHours(hours float64) {
	s.Hours = SpaceHours{Value: hours, Manual: true}
}

// Rederive clears a manual override and recomputes the estimate from the
// current space parameters.
func (s *Space) Rederive() {
	s.Hours = SpaceHours{Value: EstimateSpaceHours(s.SpaceType, s.Size, s.ClutterLevel)}
}
