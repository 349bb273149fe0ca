// SPDX-License-Identifier: Unlicense OR MIT

package installer

import "testing"

var testProduct = Product{
	Name:           "product",
	ClientsKey:     "clients/product",
	ClientStateKey: "clientstate/product",
}

func hiveWithVersion(version string) *MemHive {
	h := NewMemHive()
	if version != "" {
		h.Set(true, testProduct.ClientsKey, versionField, version)
	}
	return h
}

func TestInitializeVersion(t *testing.T) {
	var state ProductState

	// No state at all.
	if state.Initialize(NewMemHive(), true, testProduct) {
		t.Error("Initialize succeeded with no hive data")
	}
	// Empty version value.
	h := NewMemHive()
	h.Set(true, testProduct.ClientsKey, versionField, "")
	if state.Initialize(h, true, testProduct) {
		t.Error("Initialize succeeded with an empty version")
	}
	// Unparsable version value.
	if state.Initialize(hiveWithVersion("bogus"), true, testProduct) {
		t.Error("Initialize succeeded with a malformed version")
	}
	if state.Initialized() {
		t.Error("state reports initialized after failures")
	}

	h = hiveWithVersion("10.3.22.7")
	if !state.Initialize(h, true, testProduct) {
		t.Fatal("Initialize failed with a valid version")
	}
	if got := state.Version().String(); got != "10.3.22.7" {
		t.Errorf("Version = %q, want 10.3.22.7", got)
	}
	if state.OldVersion() != nil {
		t.Error("OldVersion present without opv")
	}
}

func TestInitializeOldVersion(t *testing.T) {
	var state ProductState

	// A damaged rollback version is dropped, not fatal.
	h := hiveWithVersion("10.3.22.7")
	h.Set(true, testProduct.ClientsKey, oldVersionField, "notaversion")
	if !state.Initialize(h, true, testProduct) {
		t.Fatal("Initialize failed over a malformed opv")
	}
	if state.OldVersion() != nil {
		t.Error("malformed opv surfaced as a version")
	}

	h.Set(true, testProduct.ClientsKey, oldVersionField, "10.3.22.6")
	if !state.Initialize(h, true, testProduct) {
		t.Fatal("Initialize failed")
	}
	if state.OldVersion() == nil || state.OldVersion().String() != "10.3.22.6" {
		t.Errorf("OldVersion = %v, want 10.3.22.6", state.OldVersion())
	}
}

func TestInitializeClearsPreviousState(t *testing.T) {
	var state ProductState
	h := hiveWithVersion("1.0.0.0")
	h.Set(true, testProduct.ClientStateKey, channelField, "beta")
	if !state.Initialize(h, true, testProduct) {
		t.Fatal("Initialize failed")
	}
	if state.Channel() != "beta" {
		t.Fatalf("Channel = %q, want beta", state.Channel())
	}
	// A failed re-initialization leaves no residue of the old state.
	if state.Initialize(NewMemHive(), true, testProduct) {
		t.Fatal("Initialize succeeded on an empty hive")
	}
	if state.Version() != nil || state.Channel() != "" || state.Initialized() {
		t.Error("failed Initialize kept stale state")
	}
}

func TestRenameCmdAndChannel(t *testing.T) {
	var state ProductState
	h := hiveWithVersion("1.2.3.4")
	h.Set(true, testProduct.ClientsKey, renameCmdField, `"C:\setup.exe" --rename`)
	h.Set(true, testProduct.ClientStateKey, channelField, "2.0-dev")
	if !state.Initialize(h, true, testProduct) {
		t.Fatal("Initialize failed")
	}
	if state.RenameCmd() != `"C:\setup.exe" --rename` {
		t.Errorf("RenameCmd = %q", state.RenameCmd())
	}
	if state.Channel() != "2.0-dev" {
		t.Errorf("Channel = %q, want 2.0-dev", state.Channel())
	}
}

func TestMsiMarker(t *testing.T) {
	cases := []struct {
		value string
		set   bool
		want  bool
	}{
		{set: false, want: false},
		{value: "0", set: true, want: false},
		{value: "1", set: true, want: true},
		{value: "47", set: true, want: true},
		// Any non numeric marker still counts as an MSI install.
		{value: "bogus", set: true, want: true},
		{value: "", set: true, want: true},
	}
	for _, tc := range cases {
		h := hiveWithVersion("1.0.0.0")
		if tc.set {
			h.Set(true, testProduct.ClientStateKey, msiField, tc.value)
		}
		var state ProductState
		if !state.Initialize(h, true, testProduct) {
			t.Fatalf("Initialize failed (msi=%q)", tc.value)
		}
		if got := state.IsMsi(); got != tc.want {
			t.Errorf("IsMsi with marker %q (set=%v) = %v, want %v", tc.value, tc.set, got, tc.want)
		}
	}
}

func TestMultiInstall(t *testing.T) {
	h := hiveWithVersion("1.0.0.0")
	h.Set(true, testProduct.ClientStateKey, uninstallArgumentsField, "--uninstall")
	var state ProductState
	if !state.Initialize(h, true, testProduct) {
		t.Fatal("Initialize failed")
	}
	if state.IsMultiInstall() {
		t.Error("multi install detected without the switch")
	}

	h.Set(true, testProduct.ClientStateKey, uninstallArgumentsField, "--uninstall --multi-install")
	if !state.Initialize(h, true, testProduct) {
		t.Fatal("Initialize failed")
	}
	if !state.IsMultiInstall() {
		t.Error("multi install switch not detected")
	}
	// The switch must match as a whole token.
	h.Set(true, testProduct.ClientStateKey, uninstallArgumentsField, "--multi-installer")
	state.Initialize(h, true, testProduct)
	if state.IsMultiInstall() {
		t.Error("prefix of the switch treated as a match")
	}
}

func TestUninstallCommand(t *testing.T) {
	cases := []struct {
		name string
		path string
		args string
		want string
	}{
		{name: "empty", want: ""},
		{name: "path only", path: `C:\setup.exe`, want: `C:\setup.exe`},
		{
			name: "path with spaces quoted",
			path: `C:\Program Files\product\setup.exe`,
			args: "--uninstall",
			want: `"C:\Program Files\product\setup.exe" --uninstall`,
		},
		{
			name: "plain path and args",
			path: `C:\setup.exe`,
			args: "--uninstall --multi-install",
			want: `C:\setup.exe --uninstall --multi-install`,
		},
		{name: "args only keep leading space", args: "--uninstall", want: " --uninstall"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := hiveWithVersion("1.0.0.0")
			if tc.path != "" {
				h.Set(true, testProduct.ClientStateKey, uninstallStringField, tc.path)
			}
			if tc.args != "" {
				h.Set(true, testProduct.ClientStateKey, uninstallArgumentsField, tc.args)
			}
			var state ProductState
			if !state.Initialize(h, true, testProduct) {
				t.Fatal("Initialize failed")
			}
			if got := state.UninstallCommand(); got != tc.want {
				t.Errorf("UninstallCommand = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScopes(t *testing.T) {
	h := NewMemHive()
	h.Set(false, testProduct.ClientsKey, versionField, "1.0.0.0")
	var state ProductState
	if state.Initialize(h, true, testProduct) {
		t.Error("per user install visible in the machine scope")
	}
	if !state.Initialize(h, false, testProduct) {
		t.Error("per user install not visible in the user scope")
	}
}
