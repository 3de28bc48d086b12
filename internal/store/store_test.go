package store

import (
	"testing"

	"github.com/quietloop/sona/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *UserStore {
	t.Helper()
	s, err := NewUserStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProgressRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.GetProgress()
	assert.False(t, ok)

	entries := map[string][]string{"c1": {"l1", "l2"}, "c2": {"x"}}
	require.NoError(t, s.SaveProgress(entries))

	got, ok := s.GetProgress()
	require.True(t, ok)
	assert.Equal(t, entries, got)
}

func TestFavoritesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveFavorites(FavoriteCourses, []string{"a", "b"}))
	require.NoError(t, s.SaveFavorites(FavoriteTracks, []string{"t1"}))

	courses, ok := s.GetFavorites(FavoriteCourses)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, courses)

	tracks, ok := s.GetFavorites(FavoriteTracks)
	require.True(t, ok)
	assert.Equal(t, []string{"t1"}, tracks)
}

func TestUserRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.GetUser()
	assert.False(t, ok)

	user := &domain.User{ID: "u1", Name: "Ava", Plan: domain.PlanStandard}
	require.NoError(t, s.SaveUser(user))

	got, ok := s.GetUser()
	require.True(t, ok)
	assert.Equal(t, user, got)

	s.ClearUser()
	_, ok = s.GetUser()
	assert.False(t, ok)
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewUserStore("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveProgress(map[string][]string{"c1": {"l1"}}))

	got, ok := s.GetProgress()
	require.True(t, ok)
	assert.Equal(t, []string{"l1"}, got["c1"])
}

func TestReopenSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	s, err := NewUserStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveProgress(map[string][]string{"c1": {"l1"}}))
	require.NoError(t, s.SaveUser(&domain.User{ID: "u1", Plan: domain.PlanBasic}))
	require.NoError(t, s.Close())

	s2, err := NewUserStore(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, ok := s2.GetProgress()
	require.True(t, ok)
	assert.Equal(t, []string{"l1"}, got["c1"])

	user, ok := s2.GetUser()
	require.True(t, ok)
	assert.Equal(t, domain.PlanBasic, user.Plan)
}
