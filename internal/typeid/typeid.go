package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser     = "user"
	PrefixDesign   = "design"
	PrefixInstance = "inst"
	PrefixElement  = "el"
	PrefixAction   = "act"
	PrefixAsset    = "asset"
	PrefixSession  = "sess"
	PrefixExport   = "exp"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string     { return New(PrefixUser) }
func NewDesignID() string   { return New(PrefixDesign) }
func NewInstanceID() string { return New(PrefixInstance) }
func NewElementID() string  { return New(PrefixElement) }
func NewActionID() string   { return New(PrefixAction) }
func NewAssetID() string    { return New(PrefixAsset) }
func NewSessionID() string  { return New(PrefixSession) }
func NewExportID() string   { return New(PrefixExport) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
