package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/tmux-popup-bookmarks/internal/catalog"
	"github.com/atomicstack/tmux-popup-bookmarks/internal/filter"
)

func testView() View {
	return View{
		Index: &catalog.Index{
			Bookmarks: []catalog.BookmarkRow{
				{ID: 1, Name: "alpha", Command: "echo alpha", Desc: "first", Labels: []string{"greek"}},
				{ID: 2, Name: "beta", Command: "echo beta", Exec: true, Labels: []string{"greek", "second"}},
				{ID: 3, Name: "gamma", Command: "echo gamma"},
			},
			Labels: []catalog.LabelRow{
				{ID: 1, Name: "greek", Bookmarks: []string{"alpha", "beta"}},
				{ID: 2, Name: "second", Bookmarks: []string{"beta"}},
			},
		},
		IgnoreCase:   true,
		Autodetect:   true,
		DocumentPath: "/tmp/bookmarks.yaml",
	}
}

func apply(t *testing.T, s State, v View, events ...Event) (State, Effect) {
	t.Helper()
	var eff Effect
	for _, ev := range events {
		s, eff = Transition(s, ev, v)
	}
	return s, eff
}

func typeText(text string) []Event {
	var out []Event
	for _, r := range text {
		out = append(out, Char(r))
	}
	return out
}

func TestInitialState(t *testing.T) {
	s := Initial()
	assert.Equal(t, ModeBookmarks, s.Mode)
	assert.Equal(t, filter.ByName, s.FilterMode)
	assert.Empty(t, s.Filter)
	assert.Zero(t, s.Selection)
}

func TestCharAndBackspaceResetSelection(t *testing.T) {
	v := testView()
	s, _ := apply(t, Initial(), v, Key(EventDown), Key(EventDown))
	assert.Equal(t, 2, s.Selection)

	s, eff := apply(t, s, v, typeText("a")...)
	assert.True(t, eff.None())
	assert.Equal(t, "a", s.Filter)
	assert.Zero(t, s.Selection)
	assert.Len(t, s.VisibleBookmarks(v), 3)

	s, _ = apply(t, s, v, typeText("l")...)
	assert.Equal(t, []catalog.BookmarkRow{v.Index.Bookmarks[0]}, s.VisibleBookmarks(v))

	s, _ = apply(t, s, v, Key(EventBackspace), Key(EventBackspace), Key(EventBackspace))
	assert.Empty(t, s.Filter)
}

func TestBackspaceRemovesWholeRune(t *testing.T) {
	s, _ := apply(t, Initial(), testView(), Char('é'), Key(EventBackspace))
	assert.Empty(t, s.Filter)
}

func TestUpDownClamp(t *testing.T) {
	v := testView()
	s, _ := apply(t, Initial(), v, Key(EventUp))
	assert.Zero(t, s.Selection)
	s, _ = apply(t, s, v, Key(EventDown), Key(EventDown), Key(EventDown), Key(EventDown))
	assert.Equal(t, 2, s.Selection)
	s, _ = apply(t, s, v, typeText("zzz")...)
	s, _ = apply(t, s, v, Key(EventDown))
	assert.Zero(t, s.Selection, "empty list keeps selection at zero")
}

func TestModeCyclingWraps(t *testing.T) {
	v := testView()
	s, _ := apply(t, Initial(), v, typeText("al")...)
	s, _ = apply(t, s, v, Key(EventNextMode))
	assert.Equal(t, ModeLabels, s.Mode)
	assert.Empty(t, s.Filter)
	s, _ = apply(t, s, v, Key(EventNextMode))
	assert.Equal(t, ModeUsage, s.Mode)
	s, _ = apply(t, s, v, Key(EventNextMode))
	assert.Equal(t, ModeBookmarks, s.Mode)
	s, _ = apply(t, s, v, Key(EventPrevMode))
	assert.Equal(t, ModeUsage, s.Mode)
	s, _ = apply(t, s, v, SwitchTo(ModeLabels))
	assert.Equal(t, ModeLabels, s.Mode)
}

func TestModeSwitchResetsFilterMode(t *testing.T) {
	v := testView()
	s, _ := apply(t, Initial(), v, Key(EventToggleByLabel), Char('g'))
	assert.Equal(t, filter.ByLabel, s.FilterMode)
	assert.True(t, s.Forced)
	s, _ = apply(t, s, v, SwitchTo(ModeBookmarks))
	assert.Equal(t, filter.ByName, s.FilterMode)
	assert.False(t, s.Forced)
	assert.Empty(t, s.Filter)
}

func TestUsageIgnoresTyping(t *testing.T) {
	v := testView()
	s, eff := apply(t, Initial(), v, SwitchTo(ModeUsage), Char('x'), Key(EventBackspace), Key(EventEnter))
	assert.Equal(t, ModeUsage, s.Mode)
	assert.Empty(t, s.Filter)
	assert.True(t, eff.None())
}

func TestToggleByLabelAndBack(t *testing.T) {
	v := testView()
	s, _ := apply(t, Initial(), v, Key(EventToggleByLabel))
	assert.Equal(t, filter.ByLabel, s.FilterMode)
	s, _ = apply(t, s, v, typeText("second")...)
	require.Len(t, s.VisibleBookmarks(v), 1)
	assert.Equal(t, "beta", s.VisibleBookmarks(v)[0].Name)
	s, _ = apply(t, s, v, Key(EventToggleByLabel))
	assert.Equal(t, filter.ByName, s.FilterMode)
	assert.True(t, s.Forced)
	assert.Equal(t, "second", s.Filter)

	labels, _ := apply(t, Initial(), v, SwitchTo(ModeLabels), Key(EventToggleByLabel))
	assert.Equal(t, filter.ByName, labels.FilterMode, "label toggle only applies to bookmarks")
}

func TestAutodetectID(t *testing.T) {
	v := testView()
	s, _ := apply(t, Initial(), v, Char('2'))
	assert.Equal(t, filter.ByID, s.EffectiveFilterMode(v))
	row, ok := s.SelectedBookmark(v)
	require.True(t, ok)
	assert.Equal(t, "beta", row.Name)

	v.Autodetect = false
	assert.Equal(t, filter.ByName, s.EffectiveFilterMode(v))
	assert.Empty(t, s.VisibleBookmarks(v))
}

func TestManualModeOverridesAutodetect(t *testing.T) {
	v := testView()
	s, _ := apply(t, Initial(), v, Key(EventToggleByID), Key(EventToggleByID), Char('2'))
	assert.Equal(t, filter.ByName, s.FilterMode)
	assert.True(t, s.Forced)
	assert.Equal(t, filter.ByName, s.EffectiveFilterMode(v))
	assert.Empty(t, s.VisibleBookmarks(v))
}

func TestEnterDeliversSelected(t *testing.T) {
	v := testView()
	_, eff := apply(t, Initial(), v, Key(EventDown), Key(EventEnter))
	assert.Equal(t, Effect{Kind: EffectDeliver, Text: "echo beta", Exec: true}, eff)

	_, eff = apply(t, Initial(), v, Char('z'), Key(EventEnter))
	assert.True(t, eff.None(), "nothing to deliver from an empty list")
}

func TestEnterOnLabelFiltersBookmarks(t *testing.T) {
	v := testView()
	s, eff := apply(t, Initial(), v, SwitchTo(ModeLabels), Key(EventDown), Key(EventEnter))
	assert.True(t, eff.None())
	assert.Equal(t, ModeBookmarks, s.Mode)
	assert.Equal(t, filter.ByLabel, s.FilterMode)
	assert.Equal(t, "second", s.Filter)
	assert.True(t, s.Forced)
	require.Len(t, s.VisibleBookmarks(v), 1)
	assert.Equal(t, "beta", s.VisibleBookmarks(v)[0].Name)
}

func TestExitEditReload(t *testing.T) {
	v := testView()
	_, eff := apply(t, Initial(), v, Key(EventEscape))
	assert.Equal(t, EffectExit, eff.Kind)
	_, eff = apply(t, Initial(), v, Key(EventInterrupt))
	assert.Equal(t, EffectExit, eff.Kind)
	_, eff = apply(t, Initial(), v, Key(EventEdit))
	assert.Equal(t, Effect{Kind: EffectOpenEditor, Path: "/tmp/bookmarks.yaml"}, eff)
	s, eff := apply(t, Initial(), v, Char('a'), Key(EventReload))
	assert.Equal(t, EffectReload, eff.Kind)
	assert.Equal(t, "a", s.Filter, "reload leaves state to the host")
}

func TestDescribeAndCopy(t *testing.T) {
	v := testView()
	s, eff := apply(t, Initial(), v, Key(EventDescribe))
	assert.Equal(t, Effect{Kind: EffectDescribe, Text: "first"}, eff)
	assert.True(t, s.ShowDesc)
	s, _ = apply(t, s, v, Key(EventDescribe))
	assert.False(t, s.ShowDesc)

	_, eff = apply(t, Initial(), v, Key(EventDown), Key(EventDown), Key(EventCopy))
	assert.Equal(t, Effect{Kind: EffectCopy, Text: "echo gamma"}, eff)

	_, eff = apply(t, Initial(), v, SwitchTo(ModeLabels), Key(EventCopy))
	assert.True(t, eff.None())
}

func TestSelectionStaysInRange(t *testing.T) {
	v := testView()
	s := Initial()
	events := []Event{
		Key(EventDown), Key(EventDown), Char('b'), Key(EventDown), Key(EventDown),
		Key(EventBackspace), SwitchTo(ModeLabels), Key(EventDown), Key(EventDown),
		Key(EventToggleByID), Char('9'), Key(EventUp), Key(EventNextMode),
	}
	for _, ev := range events {
		s, _ = Transition(s, ev, v)
		n := s.VisibleLen(v)
		if n == 0 {
			assert.Zero(t, s.Selection, ev.Kind.String())
		} else {
			assert.GreaterOrEqual(t, s.Selection, 0)
			assert.Less(t, s.Selection, n, ev.Kind.String())
		}
	}
}

func TestNilIndex(t *testing.T) {
	s, eff := apply(t, Initial(), View{}, Char('a'), Key(EventDown), Key(EventEnter))
	assert.True(t, eff.None())
	assert.Zero(t, s.Selection)
}
