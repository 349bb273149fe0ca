// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Cancel, "Cancel"},
		{Press, "Press"},
		{Press | Release, "Press|Release"},
		{Enter | Leave | Move, "Move|Enter|Leave"},
		{TapDown, "TapDown"},
		{GestureEnd, "GestureEnd"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%b).String() = %q, want %q", uint(tc.kind), got, tc.want)
		}
	}
}

func TestButtonsContain(t *testing.T) {
	b := ButtonPrimary | ButtonTertiary
	if !b.Contain(ButtonPrimary) || !b.Contain(ButtonTertiary) {
		t.Error("Contain missed a held button")
	}
	if b.Contain(ButtonSecondary) {
		t.Error("Contain reported an unheld button")
	}
	if got := b.String(); got != "ButtonPrimary|ButtonTertiary" {
		t.Errorf("Buttons.String() = %q", got)
	}
}
