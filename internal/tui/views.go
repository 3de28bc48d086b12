package tui

import (
	"fmt"
	"strings"

	"github.com/quietloop/sona/internal/app"
	"github.com/quietloop/sona/internal/domain"
	"github.com/quietloop/sona/internal/nav"
	"github.com/quietloop/sona/internal/playback"
	"github.com/quietloop/sona/internal/tui/styles"
)

// View renders the current screen
func (m Model) View() string {
	snap := m.store.Snapshot()

	var body string
	switch snap.View {
	case nav.ViewHome, nav.ViewCourses:
		body = m.renderCourses()
	case nav.ViewCourseDetail:
		body = m.renderCourseDetail(snap.Params[nav.ParamCourseID])
	case nav.ViewAmbience:
		body = m.renderAmbience(snap.Params[nav.ParamCategoryID])
	case nav.ViewPlayer, nav.ViewAmbiencePlayer:
		body = m.renderPlayer()
	case nav.ViewFavorites:
		body = m.renderFavorites()
	case nav.ViewSettings:
		body = m.renderSettings()
	case nav.ViewUpsell:
		body = m.renderUpsell(snap.Params[nav.ParamContentID])
	case nav.ViewNotFound:
		body = m.renderNotFound()
	default:
		body = styles.DimStyle.Render("Nothing here")
	}

	if m.searching {
		body = m.renderSearch()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(snap.View))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	if snap.Overlay {
		b.WriteString("\n")
		b.WriteString(m.renderHelpOverlay())
	}
	b.WriteString("\n")
	b.WriteString(m.renderNowPlaying(snap))
	b.WriteString(m.renderFooter(snap.View))
	return b.String()
}

func (m Model) renderHeader(view nav.View) string {
	title := "sona"
	plan := m.store.Plan().String()

	tabs := []struct {
		label  string
		active bool
	}{
		{"1 Courses", view == nav.ViewHome || view == nav.ViewCourses || view == nav.ViewCourseDetail},
		{"2 Ambience", view == nav.ViewAmbience || view == nav.ViewAmbiencePlayer},
		{"3 Favorites", view == nav.ViewFavorites},
		{"4 Settings", view == nav.ViewSettings},
	}

	var parts []string
	for _, t := range tabs {
		if t.active {
			parts = append(parts, styles.AccentStyle.Render(t.label))
		} else {
			parts = append(parts, styles.DimStyle.Render(t.label))
		}
	}

	left := styles.TitleStyle.Render(title) + "  " + strings.Join(parts, "  ")
	right := styles.SubtitleStyle.Render(plan)
	return styles.HeaderStyle.Render(left + "   " + right)
}

func (m Model) renderFooter(view nav.View) string {
	var hints []string
	switch view {
	case nav.ViewPlayer, nav.ViewAmbiencePlayer:
		hints = []string{"space pause", "←/→ seek", "n/p next/prev", "f fav", "x close", "h back"}
	case nav.ViewSettings:
		hints = []string{"u switch plan", "h back", "q quit"}
	default:
		hints = []string{"j/k move", "enter open", "/ filter", "s search", "f fav", "0 now playing", "q quit"}
	}

	line := styles.FooterStyle.Render(strings.Join(hints, " · "))
	if m.statusMsg != "" {
		status := styles.SuccessStyle.Render(m.statusMsg)
		if m.statusIsErr {
			status = styles.ErrorStyle.Render(m.statusMsg)
		}
		return status + "\n" + line
	}
	return line
}

// renderNowPlaying shows the persistent playback bar on non-player views
func (m Model) renderNowPlaying(snap app.Snapshot) string {
	sess := snap.Session
	if !sess.Active() || snap.View == nav.ViewPlayer || snap.View == nav.ViewAmbiencePlayer {
		return ""
	}

	mark := styles.PlayMark
	if !sess.Playing {
		mark = styles.PauseMark
	}

	var title string
	switch sess.Kind {
	case playback.KindLesson:
		title = sess.Course.Title + " · " + sess.Lesson.Title
	case playback.KindAmbience:
		title = sess.Track.Title
	}

	line := fmt.Sprintf("%s %s  %s / %s", mark, title,
		domain.FormatSeconds(int(sess.Position)),
		domain.FormatSeconds(int(sess.Duration)))
	return styles.AccentStyle.Render(line) + "  " + styles.DimStyle.Render("(0 to open)") + "\n"
}

func (m Model) renderList(title string, describe func(domain.ListItem) (string, string)) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(styles.DimStyle.Render("/ ") + m.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	items := m.visibleItems()
	if len(items) == 0 {
		b.WriteString(styles.DimStyle.Render("  (empty)"))
		return b.String()
	}

	for i, item := range items {
		line, desc := describe(item)
		if i == m.cursor {
			b.WriteString(styles.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if desc != "" {
			b.WriteString("  " + styles.DimStyle.Render(desc))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCourses() string {
	return m.renderList("Courses", func(item domain.ListItem) (string, string) {
		course, ok := item.(*domain.Course)
		if !ok {
			return item.GetTitle(), ""
		}
		marks := ""
		if m.store.IsFavoriteCourse(course.ID) {
			marks += " " + styles.AccentStyle.Render(styles.FavoriteMark)
		}
		pct := m.store.CoursePercent(course.ID)
		desc := fmt.Sprintf("%s · %d lessons · %d%%", course.Plan, course.LessonCount(), pct)
		return course.Title + marks, desc
	})
}

func (m Model) renderCourseDetail(courseID string) string {
	course, err := m.store.Catalog().Course(courseID)
	if err != nil {
		return styles.ErrorStyle.Render("Course not found")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(course.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(course.Author))
	b.WriteString("  ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%s · %d%% complete",
		domain.FormatSeconds(course.TotalDuration()), m.store.CoursePercent(course.ID))))
	b.WriteString("\n")
	if course.Summary != "" {
		b.WriteString(styles.DimStyle.Render(course.Summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Render sections with lessons, keeping cursor positions aligned with
	// the flattened lesson order used by visibleItems.
	filtered := m.filterInput.Value() != ""
	visible := m.visibleItems()
	visibleSet := make(map[string]int, len(visible))
	for i, item := range visible {
		visibleSet[item.GetID()] = i
	}

	for _, sec := range course.Sections {
		if !filtered {
			b.WriteString(styles.SubtitleStyle.Render(sec.Title))
			b.WriteString("\n")
		}
		for _, lesson := range sec.Lessons {
			pos, shown := visibleSet[lesson.ID]
			if !shown {
				continue
			}
			line := m.lessonLine(course, lesson)
			if pos == m.cursor {
				b.WriteString(styles.SelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) lessonLine(course *domain.Course, lesson *domain.Lesson) string {
	mark := " "
	switch {
	case m.store.IsLessonComplete(course.ID, lesson.ID):
		mark = styles.SuccessStyle.Render(styles.CompleteMark)
	case !m.store.CanPlayLesson(course.ID, lesson.ID):
		mark = styles.LockedStyle.Render(styles.LockMark)
	}
	return fmt.Sprintf("%s %s  %s", mark, lesson.Title,
		styles.DimStyle.Render(domain.FormatSeconds(lesson.Duration)))
}

func (m Model) renderAmbience(categoryID string) string {
	if categoryID == "" {
		return m.renderList("Ambience", func(item domain.ListItem) (string, string) {
			category, ok := item.(*domain.AmbienceCategory)
			if !ok {
				return item.GetTitle(), ""
			}
			return category.Title, fmt.Sprintf("%d tracks", len(category.Tracks))
		})
	}

	category, err := m.store.Catalog().Category(categoryID)
	if err != nil {
		return styles.ErrorStyle.Render("Category not found")
	}
	return m.renderList(category.Title, func(item domain.ListItem) (string, string) {
		return m.trackLine(item)
	})
}

func (m Model) trackLine(item domain.ListItem) (string, string) {
	track, ok := item.(*domain.AmbienceTrack)
	if !ok {
		return item.GetTitle(), ""
	}
	line := track.Title
	if !m.store.CanPlayTrack(track.ID) {
		line = styles.LockedStyle.Render(styles.LockMark) + " " + line
	}
	if m.store.IsFavoriteTrack(track.ID) {
		line += " " + styles.AccentStyle.Render(styles.FavoriteMark)
	}
	return line, domain.FormatSeconds(track.Duration)
}

func (m Model) renderFavorites() string {
	return m.renderList("Favorites", func(item domain.ListItem) (string, string) {
		switch v := item.(type) {
		case *domain.Course:
			return v.Title, fmt.Sprintf("course · %d%%", m.store.CoursePercent(v.ID))
		case *domain.AmbienceTrack:
			line, _ := m.trackLine(v)
			return line, "ambience"
		}
		return item.GetTitle(), ""
	})
}

func (m Model) renderPlayer() string {
	snap := m.store.Snapshot()
	sess := snap.Session

	if !sess.Active() {
		return styles.DimStyle.Render("Nothing playing. Press h to go back.")
	}

	var title, context string
	switch sess.Kind {
	case playback.KindLesson:
		title = sess.Lesson.Title
		context = sess.Course.Title
	case playback.KindAmbience:
		title = sess.Track.Title
		context = "Ambience · loops until stopped"
	}

	state := styles.PlayMark + " Playing"
	if !sess.Playing {
		state = styles.PauseMark + " Paused"
	}

	var pct float64
	if sess.Duration > 0 {
		pct = sess.Position / sess.Duration
		if pct > 1 {
			pct = 1
		}
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(context))
	b.WriteString("\n\n")
	b.WriteString(m.progressBar.ViewAs(pct))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s / %s   %s",
		domain.FormatSeconds(int(sess.Position)),
		domain.FormatSeconds(int(sess.Duration)),
		styles.AccentStyle.Render(state)))
	b.WriteString("\n")

	if sess.Kind == playback.KindLesson {
		b.WriteString("\n")
		if m.store.IsLessonComplete(sess.Course.ID, sess.Lesson.ID) {
			b.WriteString(styles.SuccessStyle.Render(styles.CompleteMark + " Completed"))
			b.WriteString("\n")
		}
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Course progress: %d%%",
			m.store.CoursePercent(sess.Course.ID))))
	}
	return b.String()
}

func (m Model) renderSettings() string {
	snap := m.store.Snapshot()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Settings"))
	b.WriteString("\n\n")

	if snap.User != nil {
		b.WriteString(fmt.Sprintf("  Signed in as  %s\n", snap.User.Name))
		b.WriteString(fmt.Sprintf("  Plan          %s\n", styles.AccentStyle.Render(snap.User.Plan.String())))
	} else {
		b.WriteString("  Signed out\n")
		b.WriteString(fmt.Sprintf("  Plan          %s\n", styles.DimStyle.Render(domain.PlanFree.String())))
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("  Press u to switch plans"))
	return b.String()
}

func (m Model) renderUpsell(contentID string) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Locked content"))
	b.WriteString("\n\n")
	if contentID != "" {
		b.WriteString(styles.DimStyle.Render("  " + contentID))
		b.WriteString("\n\n")
	}
	b.WriteString("  This item requires a higher plan.\n")
	b.WriteString("  Press " + styles.AccentStyle.Render("u") + " to switch plans, or " +
		styles.AccentStyle.Render("h") + " to go back.")
	return b.String()
}

func (m Model) renderNotFound() string {
	return styles.ErrorStyle.Render("Content not found") + "\n\n" +
		styles.DimStyle.Render("It may have been removed from the library. Press h to go back.")
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if len(m.searchResults) == 0 {
		if m.searchInput.Value() != "" {
			b.WriteString(styles.DimStyle.Render("  No matches"))
		}
		return b.String()
	}

	for i, res := range m.searchResults {
		kind := "course"
		if res.TrackID != "" {
			kind = "ambience"
		}
		line := fmt.Sprintf("%s  %s", res.Item.GetTitle(), styles.DimStyle.Render(kind))
		if i == m.searchCursor {
			b.WriteString(styles.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelpOverlay() string {
	rows := []string{
		"j/k, ↑/↓   move",
		"enter      open / play",
		"h          back",
		"space      play / pause",
		"n / p      next / prev lesson",
		"← / →      seek 15s",
		"f          favorite",
		"/          filter    s  search",
		"u          switch plan",
		"q          quit",
	}
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(styles.DimStyle.Render("  " + r))
		b.WriteString("\n")
	}
	return b.String()
}
