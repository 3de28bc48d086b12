package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quietloop/sona/internal/domain"
)

// libraryFile is the on-disk catalog format
type libraryFile struct {
	Courses  []*domain.Course           `json:"courses"`
	Ambience []*domain.AmbienceCategory `json:"ambience"`
}

// LoadFile reads a catalog from a JSON library file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library file: %w", err)
	}

	var lib libraryFile
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library file: %w", err)
	}

	normalize(lib.Courses)
	return New(lib.Courses, lib.Ambience), nil
}

// normalize assigns dense lesson ordinals per section. Authoring tools
// usually emit them, but adjacency queries depend on them being in order.
func normalize(courses []*domain.Course) {
	for _, course := range courses {
		for _, sec := range course.Sections {
			for i, l := range sec.Lessons {
				l.Position = i
			}
		}
	}
}

// Sample returns the built-in starter catalog used when no library file is
// configured, so the app is browsable out of the box.
func Sample() *Catalog {
	courses := []*domain.Course{
		{
			ID:      "foundations",
			Title:   "Foundations of Breath",
			Summary: "A first course in breath-led meditation.",
			Author:  "Mara Ellison",
			Plan:    domain.PlanFree,
			Sections: []*domain.Section{
				{
					ID:    "foundations-1",
					Title: "Getting Started",
					Lessons: []*domain.Lesson{
						{ID: "f1", Title: "Arriving", Duration: 420, AudioRef: "audio/foundations/arriving.mp3"},
						{ID: "f2", Title: "Counting the Breath", Duration: 540, AudioRef: "audio/foundations/counting.mp3"},
						{ID: "f3", Title: "The Wandering Mind", Duration: 600, AudioRef: "audio/foundations/wandering.mp3"},
					},
				},
				{
					ID:    "foundations-2",
					Title: "Deepening",
					Lessons: []*domain.Lesson{
						{ID: "f4", Title: "Body and Breath", Duration: 720, AudioRef: "audio/foundations/body.mp3"},
						{ID: "f5", Title: "Open Awareness", Duration: 900, AudioRef: "audio/foundations/open.mp3"},
					},
				},
			},
		},
		{
			ID:      "deep-sleep",
			Title:   "Deep Sleep Journey",
			Summary: "Wind-down practices for restful nights.",
			Author:  "Tomas Reyes",
			Plan:    domain.PlanStandard,
			Sections: []*domain.Section{
				{
					ID:    "sleep-1",
					Title: "Evening Wind-Down",
					Lessons: []*domain.Lesson{
						{ID: "d1", Title: "Letting Go of the Day", Duration: 600, AudioRef: "audio/sleep/letting-go.mp3"},
						{ID: "d2", Title: "Progressive Release", Duration: 900, AudioRef: "audio/sleep/release.mp3", Locked: true},
						{ID: "d3", Title: "Drifting", Duration: 1200, AudioRef: "audio/sleep/drifting.mp3", Locked: true},
					},
				},
			},
		},
		{
			ID:      "stress-relief",
			Title:   "Working with Stress",
			Summary: "Short practices for difficult moments.",
			Author:  "Mara Ellison",
			Plan:    domain.PlanPremium,
			Sections: []*domain.Section{
				{
					ID:    "stress-1",
					Title: "In the Moment",
					Lessons: []*domain.Lesson{
						{ID: "st1", Title: "Three Breaths", Duration: 180, AudioRef: "audio/stress/three-breaths.mp3"},
						{ID: "st2", Title: "Naming the Feeling", Duration: 360, AudioRef: "audio/stress/naming.mp3", Locked: true},
						{ID: "st3", Title: "Grounding", Duration: 480, AudioRef: "audio/stress/grounding.mp3", Locked: true},
						{ID: "st4", Title: "Returning", Duration: 420, AudioRef: "audio/stress/returning.mp3", Locked: true},
					},
				},
			},
		},
	}

	categories := []*domain.AmbienceCategory{
		{
			ID:    "rain",
			Title: "Rain",
			Tracks: []*domain.AmbienceTrack{
				{ID: "rain-window", Title: "Rain on a Window", Duration: 1800, AudioRef: "audio/ambience/rain-window.mp3", Plan: domain.PlanFree},
				{ID: "rain-thunder", Title: "Distant Thunder", Duration: 2400, AudioRef: "audio/ambience/thunder.mp3", Plan: domain.PlanBasic},
			},
		},
		{
			ID:    "forest",
			Title: "Forest",
			Tracks: []*domain.AmbienceTrack{
				{ID: "forest-dawn", Title: "Forest at Dawn", Duration: 2100, AudioRef: "audio/ambience/forest-dawn.mp3", Plan: domain.PlanFree},
				{ID: "forest-stream", Title: "Mountain Stream", Duration: 1800, AudioRef: "audio/ambience/stream.mp3", Plan: domain.PlanStandard},
			},
		},
		{
			ID:    "ocean",
			Title: "Ocean",
			Tracks: []*domain.AmbienceTrack{
				{ID: "ocean-shore", Title: "Waves on the Shore", Duration: 2700, AudioRef: "audio/ambience/shore.mp3", Plan: domain.PlanFree},
			},
		},
	}

	normalize(courses)
	return New(courses, categories)
}
