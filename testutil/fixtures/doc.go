// Package fixtures provides snapshot fixtures shaped like the stratis
// daemon's managed-objects reply, shared by the package tests of this module.
package fixtures
