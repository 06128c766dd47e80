package service

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
)

const magicKeyword = "Christmas 2024"

// Order is one gift order extracted from a manifest.
type Order struct {
	Item     string
	Quantity uint32
}

func (that Order) String() string {
	return fmt.Sprintf("%s: %d", that.Item, that.Quantity)
}

type manifest struct {
	Package *manifestPackage `toml:"package" yaml:"package" json:"package"`
}

type manifestPackage struct {
	Name     string            `toml:"name" yaml:"name" json:"name"`
	Keywords any               `toml:"keywords" yaml:"keywords" json:"keywords"`
	Metadata *manifestMetadata `toml:"metadata" yaml:"metadata" json:"metadata"`
}

type manifestMetadata struct {
	Orders []rawOrder `toml:"orders" yaml:"orders" json:"orders"`
}

// rawOrder keeps item and quantity untyped: entries of the wrong type are
// silently dropped rather than failing the whole manifest.
type rawOrder struct {
	Item     any `toml:"item" yaml:"item" json:"item"`
	Quantity any `toml:"quantity" yaml:"quantity" json:"quantity"`
}

// ParseManifest extracts gift orders from a cargo-style manifest body.
//
// The media type picks the parser. The manifest must carry a named package
// table whose keywords include the magic keyword; orders missing either field
// or carrying wrong types are skipped.
func ParseManifest(mediaType string, body []byte) ([]Order, error) {
	var m manifest

	switch mediaType {
	case "application/toml":
		if err := toml.Unmarshal(body, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidManifest, err)
		}
	case "application/yaml":
		if err := yaml.Unmarshal(body, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidManifest, err)
		}
	case "application/json":
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidManifest, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnsupportedMedia, mediaType)
	}

	if m.Package == nil || m.Package.Name == "" {
		return nil, apperror.ErrInvalidManifest
	}

	if !hasMagicKeyword(m.Package.Keywords) {
		return nil, apperror.ErrNoMagicKeyword
	}

	if m.Package.Metadata == nil {
		return nil, apperror.ErrNoOrders
	}

	orders := make([]Order, 0, len(m.Package.Metadata.Orders))
	for _, raw := range m.Package.Metadata.Orders {
		item, ok := raw.Item.(string)
		if !ok {
			continue
		}

		quantity, ok := asQuantity(raw.Quantity)
		if !ok {
			continue
		}

		orders = append(orders, Order{Item: item, Quantity: quantity})
	}

	if len(orders) == 0 {
		return nil, apperror.ErrNoOrders
	}

	return orders, nil
}

func hasMagicKeyword(keywords any) bool {
	list, ok := keywords.([]any)
	if !ok {
		return false
	}

	for _, keyword := range list {
		if keyword == magicKeyword {
			return true
		}
	}

	return false
}

// asQuantity accepts the integer representations the three decoders produce.
func asQuantity(value any) (uint32, bool) {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0, false
		}
		return uint32(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint32(v), true
	case uint64:
		return uint32(v), true
	case float64:
		// JSON numbers arrive as floats; only whole non-negative ones count.
		if v < 0 || v != float64(uint32(v)) {
			return 0, false
		}
		return uint32(v), true
	default:
		return 0, false
	}
}
