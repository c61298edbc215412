package hotkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		name    string
		combo   string
		want    []string
		wantErr bool
	}{
		{name: "default windows key combo", combo: "super+h", want: []string{"command", "h"}},
		{name: "win alias", combo: "win+h", want: []string{"command", "h"}},
		{name: "mixed case with spaces", combo: " Ctrl + Shift + Space ", want: []string{"ctrl", "shift", "space"}},
		{name: "control alias", combo: "control+q", want: []string{"ctrl", "q"}},
		{name: "single key", combo: "f12", want: []string{"f12"}},
		{name: "empty segment", combo: "ctrl++h", wantErr: true},
		{name: "trailing plus", combo: "ctrl+", wantErr: true},
		{name: "blank", combo: "  ", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCombo(tc.combo)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNewRejectsInvalidCombo(t *testing.T) {
	_, err := New("ctrl++", nil)
	require.Error(t, err)
}

func TestManagerKeysCopies(t *testing.T) {
	manager, err := New("ctrl+shift+h", nil)
	require.NoError(t, err)

	keys := manager.Keys()
	require.Equal(t, []string{"ctrl", "shift", "h"}, keys)

	keys[0] = "mutated"
	require.Equal(t, []string{"ctrl", "shift", "h"}, manager.Keys())
}
