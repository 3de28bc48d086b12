package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouterStartsAtHome(t *testing.T) {
	r := NewRouter()

	assert.Equal(t, ViewHome, r.View())
	assert.Empty(t, r.Params())
}

func TestNavigateToReplacesViewAndParams(t *testing.T) {
	r := NewRouter()

	r.GoCourseDetail("c1")
	assert.Equal(t, ViewCourseDetail, r.View())
	assert.Equal(t, "c1", r.Param(ParamCourseID))

	r.GoFavorites()
	assert.Equal(t, ViewFavorites, r.View())
	assert.Empty(t, r.Param(ParamCourseID), "params are replaced, not merged")
}

func TestNavigateToClosesOverlay(t *testing.T) {
	r := NewRouter()
	r.ToggleOverlay()
	assert.True(t, r.OverlayOpen())

	r.GoCourses()
	assert.False(t, r.OverlayOpen())
}

func TestToggleOverlayKeepsView(t *testing.T) {
	r := NewRouter()
	r.GoCourseDetail("c1")

	r.ToggleOverlay()
	r.ToggleOverlay()

	assert.Equal(t, ViewCourseDetail, r.View())
	assert.Equal(t, "c1", r.Param(ParamCourseID))
	assert.False(t, r.OverlayOpen())
}

func TestParamsCopyIsDetached(t *testing.T) {
	r := NewRouter()
	r.GoUpsell("l5")

	p := r.Params()
	p[ParamContentID] = "mutated"

	assert.Equal(t, "l5", r.Param(ParamContentID))
}

func TestMissingParamIsEmptyNotPanic(t *testing.T) {
	r := NewRouter()
	r.NavigateTo(ViewCourseDetail, nil)

	assert.Equal(t, "", r.Param(ParamCourseID))
}

func TestHelperParamShapes(t *testing.T) {
	r := NewRouter()

	r.GoAmbience("")
	assert.Equal(t, ViewAmbience, r.View())
	assert.Empty(t, r.Params())

	r.GoAmbience("rain")
	assert.Equal(t, "rain", r.Param(ParamCategoryID))

	r.GoUpsell("course-9")
	assert.Equal(t, ViewUpsell, r.View())
	assert.Equal(t, "course-9", r.Param(ParamContentID))

	r.GoNotFound()
	assert.Equal(t, ViewNotFound, r.View())
}
