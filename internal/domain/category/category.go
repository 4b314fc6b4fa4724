package category

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultName is the category every stock falls back to. It is created on
// startup and can never be deleted.
const DefaultName = "Uncategorized"

// MaxNameLength is the longest accepted name, in characters.
const MaxNameLength = 100

var (
	ErrEmptyName   = errors.New("category name cannot be empty")
	ErrNameTooLong = errors.New("category name cannot be longer than 100 characters")
)

// Category groups stocks. StockCount is derived on read and never persisted.
type Category struct {
	ID         int64
	Name       string
	StockCount int
}

// New normalizes rawName and returns an unsaved Category.
func New(rawName string) (*Category, error) {
	name, err := NormalizeName(rawName)
	if err != nil {
		return nil, err
	}
	return &Category{Name: name}, nil
}

// IsDefault reports whether c is the protected "Uncategorized" category.
// The comparison is exact against the stored name.
func (c *Category) IsDefault() bool {
	return c.Name == DefaultName
}

// NormalizeName trims rawName and converts it to sentence case:
// first character upper case, every other character lower case.
func NormalizeName(rawName string) (string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:]), nil
}

// SameName compares two category names the way uniqueness is enforced.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
