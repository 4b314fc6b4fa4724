package presentation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pantry-it/backend/internal/domain/category"
	"github.com/pantry-it/backend/internal/service"
)

// Message turns an error from the Gateway into text for the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var dup *DuplicateStockError
	var storageErr *service.StorageError
	switch {
	case errors.As(err, &dup):
		return fmt.Sprintf("An item named %q already exists (id %d). Edit it instead or pick a different name.",
			dup.Existing.Name, dup.Existing.ID)
	case errors.Is(err, service.ErrDuplicateName):
		return capitalize(detail(err, service.ErrDuplicateName))
	case errors.Is(err, service.ErrProtectedEntity):
		return fmt.Sprintf("The %s category cannot be deleted.", category.DefaultName)
	case errors.Is(err, service.ErrNotFound):
		return "That item no longer exists. It may have been deleted."
	case errors.Is(err, service.ErrValidation):
		return "Invalid input: " + detail(err, service.ErrValidation)
	case errors.Is(err, service.ErrInvariantViolation):
		return fmt.Sprintf("The inventory is inconsistent: the %s category is missing.", category.DefaultName)
	case errors.As(err, &storageErr):
		return "Could not reach the pantry database. Please try again."
	}
	return err.Error()
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
