// SPDX-License-Identifier: Unlicense OR MIT

// Package installer reads product install state from a registry style
// hive: versions, channel, uninstall command and install modifiers.
package installer

import (
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Value names under a product's keys.
const (
	versionField            = "pv"
	oldVersionField         = "opv"
	renameCmdField          = "cmd"
	channelField            = "ap"
	uninstallStringField    = "UninstallString"
	uninstallArgumentsField = "UninstallArguments"
	msiField                = "msi"

	multiInstallSwitch = "--multi-install"
)

// A Hive resolves named values under hierarchical keys, in either the
// per machine or per user scope.
type Hive interface {
	// Value returns the value stored at key/name and whether it
	// exists.
	Value(system bool, key, name string) (string, bool)
}

// A Product names the hive keys a product's state lives under.
type Product struct {
	Name string
	// ClientsKey holds version state written by the installer.
	ClientsKey string
	// ClientStateKey holds per install configuration and the
	// uninstall command.
	ClientStateKey string
}

// ProductState is a snapshot of one product's install state. The zero
// value reports nothing installed.
type ProductState struct {
	initialized bool

	version    *goversion.Version
	oldVersion *goversion.Version
	renameCmd  string
	channel    string

	uninstallPath string
	uninstallArgs string

	multiInstall bool
	msi          bool
}

// Initialize loads the product's state from h. It reports whether the
// product is installed: a missing or unparsable version value means
// not installed, and the receiver is left cleared.
func (p *ProductState) Initialize(h Hive, system bool, product Product) bool {
	*p = ProductState{}

	pv, ok := h.Value(system, product.ClientsKey, versionField)
	if !ok || pv == "" {
		return false
	}
	v, err := goversion.NewVersion(pv)
	if err != nil {
		return false
	}
	p.version = v

	// A damaged opv does not make the product uninstalled; the
	// rollback version is simply unknown.
	if opv, ok := h.Value(system, product.ClientsKey, oldVersionField); ok && opv != "" {
		if ov, err := goversion.NewVersion(opv); err == nil {
			p.oldVersion = ov
		}
	}
	p.renameCmd, _ = h.Value(system, product.ClientsKey, renameCmdField)
	p.channel, _ = h.Value(system, product.ClientStateKey, channelField)

	p.uninstallPath, _ = h.Value(system, product.ClientStateKey, uninstallStringField)
	p.uninstallArgs, _ = h.Value(system, product.ClientStateKey, uninstallArgumentsField)
	p.multiInstall = hasSwitch(p.uninstallArgs, multiInstallSwitch)

	if msi, ok := h.Value(system, product.ClientStateKey, msiField); ok {
		n, err := strconv.Atoi(msi)
		// A non numeric marker still marks an MSI install.
		p.msi = err != nil || n != 0
	}

	p.initialized = true
	return true
}

// Initialized reports whether the last Initialize found the product.
func (p *ProductState) Initialized() bool {
	return p.initialized
}

// Version returns the installed version, or nil.
func (p *ProductState) Version() *goversion.Version {
	return p.version
}

// OldVersion returns the rollback version, or nil when absent or
// unparsable.
func (p *ProductState) OldVersion() *goversion.Version {
	return p.oldVersion
}

// RenameCmd returns the pending in use rename command, or the empty
// string.
func (p *ProductState) RenameCmd() string {
	return p.renameCmd
}

// Channel returns the update channel tag, or the empty string.
func (p *ProductState) Channel() string {
	return p.channel
}

// IsMultiInstall reports whether the product was installed with the
// multi install switch.
func (p *ProductState) IsMultiInstall() bool {
	return p.multiInstall
}

// IsMsi reports whether the product was installed through MSI.
func (p *ProductState) IsMsi() bool {
	return p.msi
}

// UninstallCommand reconstructs the full uninstall command line. The
// program path is quoted when it contains spaces. An empty path with
// arguments yields a leading space, matching how the fields were
// split on write.
func (p *ProductState) UninstallCommand() string {
	path := p.uninstallPath
	if strings.ContainsRune(path, ' ') && !strings.HasPrefix(path, `"`) {
		path = `"` + path + `"`
	}
	switch {
	case path == "" && p.uninstallArgs == "":
		return ""
	case p.uninstallArgs == "":
		return path
	default:
		return path + " " + p.uninstallArgs
	}
}

// hasSwitch reports whether the command line tail contains the given
// switch as a whole token.
func hasSwitch(args, sw string) bool {
	for _, tok := range strings.Fields(args) {
		if tok == sw {
			return true
		}
	}
	return false
}
