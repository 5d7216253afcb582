package reader

import "errors"

// ErrReprojectionUnresolved is returned when a reprojection was requested
// but no source SRS is available — neither supplied explicitly nor
// inferred by the driver.
var ErrReprojectionUnresolved = errors.New("reader: reprojection requested but source SRS is unresolved")

// ResolveSourceSRS implements the reprojection fallback rule: an empty
// requested source SRS falls back to the driver-inferred SRS; if neither
// is present the operation fails.
func ResolveSourceSRS(reproj *Reprojection, driverSRS string) (string, error) {
	if reproj == nil {
		return driverSRS, nil
	}
	src := reproj.SourceSRS
	if src == "" {
		src = driverSRS
	}
	if src == "" {
		return "", ErrReprojectionUnresolved
	}
	return src, nil
}
