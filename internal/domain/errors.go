package domain

import "errors"

// Sentinel errors for catalog lookups
var (
	// ErrCourseNotFound indicates the requested course does not exist
	ErrCourseNotFound = errors.New("course not found")

	// ErrLessonNotFound indicates the requested lesson does not exist
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrTrackNotFound indicates the requested ambience track does not exist
	ErrTrackNotFound = errors.New("ambience track not found")

	// ErrCategoryNotFound indicates the requested ambience category does not exist
	ErrCategoryNotFound = errors.New("ambience category not found")
)
