package http

// ExtractVersion is an alias of extractVersion for testing purposes
func ExtractVersion(ldFlagsValueStr string) (string, error) {
	return extractVersion(ldFlagsValueStr)
}
