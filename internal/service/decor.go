package service

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
)

// Ornament is one decoration position derived from a lockfile checksum.
type Ornament struct {
	Color string
	Top   uint8
	Left  uint8
}

type lockfile struct {
	Package []lockfilePackage `toml:"package"`
}

type lockfilePackage struct {
	Name     string  `toml:"name"`
	Version  string  `toml:"version"`
	Source   string  `toml:"source"`
	Checksum *string `toml:"checksum"`
}

// ParseLockfile turns a TOML lockfile into ornament placements.
//
// Every package checksum encodes a colour and a position: the first six hex
// characters are #rrggbb, the next two the top offset and the following two
// the left offset. Packages without a checksum are skipped; a checksum that
// breaks the encoding fails the whole file.
func ParseLockfile(data string) ([]Ornament, error) {
	var parsed lockfile
	if err := toml.Unmarshal([]byte(data), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidLockfile, err)
	}

	ornaments := make([]Ornament, 0, len(parsed.Package))
	for _, pkg := range parsed.Package {
		if pkg.Checksum == nil {
			continue
		}

		ornament, err := checksumOrnament(*pkg.Checksum)
		if err != nil {
			return nil, err
		}

		ornaments = append(ornaments, ornament)
	}

	return ornaments, nil
}

func checksumOrnament(checksum string) (Ornament, error) {
	if len(checksum) < 10 {
		return Ornament{}, fmt.Errorf("%w: %q is too short", apperror.ErrBadChecksum, checksum)
	}

	color := checksum[0:6]
	for _, c := range color {
		if !isHexDigit(c) {
			return Ornament{}, fmt.Errorf("%w: colour %q is not hex", apperror.ErrBadChecksum, color)
		}
	}

	top, err := strconv.ParseUint(checksum[6:8], 16, 8)
	if err != nil {
		return Ornament{}, fmt.Errorf("%w: bad top offset: %w", apperror.ErrBadChecksum, err)
	}

	left, err := strconv.ParseUint(checksum[8:10], 16, 8)
	if err != nil {
		return Ornament{}, fmt.Errorf("%w: bad left offset: %w", apperror.ErrBadChecksum, err)
	}

	return Ornament{
		Color: "#" + color,
		Top:   uint8(top),
		Left:  uint8(left),
	}, nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
