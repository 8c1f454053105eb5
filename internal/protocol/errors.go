package protocol

const (
	// Request validation.
	ErrBadRequest = "E_BAD_REQUEST"

	// Catalog/config problems surfaced at startup.
	ErrCatalog = "E_CATALOG"

	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest: {},
	ErrCatalog:    {},
	ErrInternal:   {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
