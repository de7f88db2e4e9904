package navigation_test

import (
	"testing"

	"github.com/rpggio/recipebox/internal/domain/navigation"
	"github.com/stretchr/testify/require"
)

func TestApply_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		from   navigation.State
		intent navigation.Intent
		want   navigation.State
	}{
		{"home from detail", navigation.State{Screen: navigation.ScreenDetail, ResourceID: "a"}, navigation.Home(), navigation.State{Screen: navigation.ScreenList}},
		{"create from list", navigation.Initial(), navigation.Create(), navigation.State{Screen: navigation.ScreenCreate}},
		{"detail from list", navigation.Initial(), navigation.Detail("a"), navigation.State{Screen: navigation.ScreenDetail, ResourceID: "a"}},
		{"edit from detail", navigation.State{Screen: navigation.ScreenDetail, ResourceID: "a"}, navigation.Edit("a"), navigation.State{Screen: navigation.ScreenEdit, ResourceID: "a"}},
		{"home from not found", navigation.State{Screen: navigation.ScreenNotFound}, navigation.Home(), navigation.State{Screen: navigation.ScreenList}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := navigation.Apply(tt.from, tt.intent)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestApply_NotFoundIsTerminal(t *testing.T) {
	nf := navigation.State{Screen: navigation.ScreenNotFound}
	for _, intent := range []navigation.Intent{navigation.Create(), navigation.Detail("a"), navigation.Edit("a")} {
		got, err := navigation.Apply(nf, intent)
		require.ErrorIs(t, err, navigation.ErrTerminal)
		require.Equal(t, nf, got)
	}
}

func TestApply_MissingID(t *testing.T) {
	got, err := navigation.Apply(navigation.Initial(), navigation.Detail(""))
	require.ErrorIs(t, err, navigation.ErrMissingID)
	require.Equal(t, navigation.Initial(), got)
}

func TestApply_RoundTrip(t *testing.T) {
	s, err := navigation.Apply(navigation.Initial(), navigation.Detail("abc"))
	require.NoError(t, err)
	s, err = navigation.Apply(s, navigation.Home())
	require.NoError(t, err)
	s, err = navigation.Apply(s, navigation.Detail("abc"))
	require.NoError(t, err)
	require.True(t, s.Is(navigation.ScreenDetail, "abc"))
}

func TestResolve(t *testing.T) {
	none := func(string) bool { return false }
	all := func(string) bool { return true }
	edit := navigation.State{Screen: navigation.ScreenEdit, ResourceID: "gone"}
	detail := navigation.State{Screen: navigation.ScreenDetail, ResourceID: "gone"}

	require.Equal(t, navigation.State{Screen: navigation.ScreenList}, navigation.Resolve(edit, none, true))
	require.Equal(t, edit, navigation.Resolve(edit, none, false))
	require.Equal(t, edit, navigation.Resolve(edit, all, true))
	require.Equal(t, detail, navigation.Resolve(detail, none, true))
}

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want navigation.Intent
	}{
		{"/", navigation.Home()},
		{"/create", navigation.Create()},
		{"/recipe/abc", navigation.Detail("abc")},
		{"/edit/abc", navigation.Edit("abc")},
		{"/recipe/", navigation.Intent{Kind: navigation.GoUnknown}},
		{"/edit/a/b", navigation.Intent{Kind: navigation.GoUnknown}},
		{"/nowhere", navigation.Intent{Kind: navigation.GoUnknown}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, navigation.Parse(tt.path), "path %q", tt.path)
	}
}

func TestPath_InvertsParse(t *testing.T) {
	states := []navigation.State{
		navigation.Initial(),
		{Screen: navigation.ScreenCreate},
		{Screen: navigation.ScreenDetail, ResourceID: "x1"},
		{Screen: navigation.ScreenEdit, ResourceID: "x1"},
	}
	for _, s := range states {
		got, err := navigation.Apply(navigation.Initial(), navigation.Parse(navigation.Path(s)))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}
