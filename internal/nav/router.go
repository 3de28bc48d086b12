// Package nav maps a closed set of named views plus parameters to what
// should be on screen. Navigation is deliberately decoupled from playback:
// changing views never stops the player.
package nav

// View names the screen currently shown
type View string

const (
	ViewHome           View = "home"
	ViewCourses        View = "courses"
	ViewCourseDetail   View = "course_detail"
	ViewPlayer         View = "player"
	ViewAmbience       View = "ambience"
	ViewAmbiencePlayer View = "ambience_player"
	ViewFavorites      View = "favorites"
	ViewSettings       View = "settings"
	ViewUpsell         View = "upsell"
	ViewNotFound       View = "not_found"
)

// Param keys. Each view's consumer owns its params contract; the router
// does not validate shapes. Consumers must treat missing params as a
// not-found affordance, never a crash.
const (
	ParamCourseID   = "course_id"
	ParamCategoryID = "category_id"
	ParamContentID  = "content_id"
)

// Params is the opaque parameter bag attached to a view
type Params map[string]string

// Router holds the current view/params pair plus transient overlay state
// (the settings drawer), which is not itself a view.
type Router struct {
	view        View
	params      Params
	overlayOpen bool
}

// NewRouter creates a router showing the home view
func NewRouter() *Router {
	return &Router{view: ViewHome, params: Params{}}
}

// View returns the current view
func (r *Router) View() View {
	return r.view
}

// Params returns a copy of the current parameter bag
func (r *Router) Params() Params {
	out := make(Params, len(r.params))
	for k, v := range r.params {
		out[k] = v
	}
	return out
}

// Param returns a single parameter value, empty when absent
func (r *Router) Param(key string) string {
	return r.params[key]
}

// NavigateTo unconditionally replaces the current view and params, and
// closes any open overlay as a UI convenience.
func (r *Router) NavigateTo(view View, params Params) {
	if params == nil {
		params = Params{}
	}
	r.view = view
	r.params = params
	r.overlayOpen = false
}

// OverlayOpen reports whether the settings drawer overlay is open
func (r *Router) OverlayOpen() bool {
	return r.overlayOpen
}

// ToggleOverlay flips the overlay without changing the view
func (r *Router) ToggleOverlay() {
	r.overlayOpen = !r.overlayOpen
}

// Derived navigation helpers. These centralize the view-name/params-shape
// contracts rather than scattering string literals across callers.

// GoHome shows the home view
func (r *Router) GoHome() {
	r.NavigateTo(ViewHome, nil)
}

// GoCourses shows the course list
func (r *Router) GoCourses() {
	r.NavigateTo(ViewCourses, nil)
}

// GoCourseDetail shows a single course
func (r *Router) GoCourseDetail(courseID string) {
	r.NavigateTo(ViewCourseDetail, Params{ParamCourseID: courseID})
}

// GoPlayer shows the full-screen lesson player
func (r *Router) GoPlayer() {
	r.NavigateTo(ViewPlayer, nil)
}

// GoAmbience shows the ambience track browser
func (r *Router) GoAmbience(categoryID string) {
	if categoryID == "" {
		r.NavigateTo(ViewAmbience, nil)
		return
	}
	r.NavigateTo(ViewAmbience, Params{ParamCategoryID: categoryID})
}

// GoAmbiencePlayer shows the full-screen ambience player
func (r *Router) GoAmbiencePlayer() {
	r.NavigateTo(ViewAmbiencePlayer, nil)
}

// GoFavorites shows favorited courses and tracks
func (r *Router) GoFavorites() {
	r.NavigateTo(ViewFavorites, nil)
}

// GoSettings shows the settings view
func (r *Router) GoSettings() {
	r.NavigateTo(ViewSettings, nil)
}

// GoUpsell shows the subscription upsell for denied content
func (r *Router) GoUpsell(contentID string) {
	r.NavigateTo(ViewUpsell, Params{ParamContentID: contentID})
}

// GoNotFound shows the not-found affordance with a way back
func (r *Router) GoNotFound() {
	r.NavigateTo(ViewNotFound, nil)
}
