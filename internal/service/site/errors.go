package site

import (
	"errors"

	"github.com/rotalog/rotalog/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
