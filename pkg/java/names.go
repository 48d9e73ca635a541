package java

import "strings"

// InternalName converts a binary name (com.foo.Bar$Baz) to its internal form
// (com/foo/Bar$Baz).
func InternalName(binaryName string) string {
	return strings.ReplaceAll(binaryName, ".", "/")
}

// BinaryName converts an internal name to its binary form.
func BinaryName(internalName string) string {
	return strings.ReplaceAll(internalName, "/", ".")
}

// PackageOf returns the package portion of a binary name, or "" for the
// unnamed package.
func PackageOf(binaryName string) string {
	if i := strings.LastIndexByte(binaryName, '.'); i >= 0 {
		return binaryName[:i]
	}
	return ""
}
