// Package catalog holds the immutable-per-session content catalog:
// courses with nested sections/lessons, and ambience categories/tracks.
package catalog

import (
	"github.com/quietloop/sona/internal/domain"
)

// Catalog is the session's reference content. It is built once at startup
// and never mutated afterwards; all consumers share one instance.
type Catalog struct {
	courses    []*domain.Course
	categories []*domain.AmbienceCategory

	courseByID   map[string]*domain.Course
	categoryByID map[string]*domain.AmbienceCategory
	trackByID    map[string]*domain.AmbienceTrack
}

// New builds a catalog with lookup indexes over the given content
func New(courses []*domain.Course, categories []*domain.AmbienceCategory) *Catalog {
	c := &Catalog{
		courses:      courses,
		categories:   categories,
		courseByID:   make(map[string]*domain.Course, len(courses)),
		categoryByID: make(map[string]*domain.AmbienceCategory, len(categories)),
		trackByID:    make(map[string]*domain.AmbienceTrack),
	}
	for _, course := range courses {
		c.courseByID[course.ID] = course
	}
	for _, cat := range categories {
		c.categoryByID[cat.ID] = cat
		for _, track := range cat.Tracks {
			c.trackByID[track.ID] = track
		}
	}
	return c
}

// Courses returns all courses in catalog order
func (c *Catalog) Courses() []*domain.Course {
	return c.courses
}

// Categories returns all ambience categories in catalog order
func (c *Catalog) Categories() []*domain.AmbienceCategory {
	return c.categories
}

// Course returns the course with the given ID
func (c *Catalog) Course(id string) (*domain.Course, error) {
	course, ok := c.courseByID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return course, nil
}

// Lesson resolves a lesson and its owning course
func (c *Catalog) Lesson(courseID, lessonID string) (*domain.Lesson, *domain.Course, error) {
	course, err := c.Course(courseID)
	if err != nil {
		return nil, nil, err
	}
	lesson := course.FindLesson(lessonID)
	if lesson == nil {
		return nil, nil, domain.ErrLessonNotFound
	}
	return lesson, course, nil
}

// Category returns the ambience category with the given ID
func (c *Catalog) Category(id string) (*domain.AmbienceCategory, error) {
	cat, ok := c.categoryByID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cat, nil
}

// Track returns the ambience track with the given ID
func (c *Catalog) Track(id string) (*domain.AmbienceTrack, error) {
	track, ok := c.trackByID[id]
	if !ok {
		return nil, domain.ErrTrackNotFound
	}
	return track, nil
}
