package sqlstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Guyuepp/go-clean-forum/domain"
)

// translate maps gorm errors onto domain errors. The DB must be opened with TranslateError.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrNotFound
	default:
		return err
	}
}
