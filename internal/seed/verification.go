package seed

import (
	"context"
	"fmt"

	repository "github.com/okian/hrm/internal/adapters/repository"
	"github.com/okian/hrm/internal/adapters/snapshot"
	"github.com/okian/hrm/pkg/logger"
)

// Verify bulk-loads path into a fresh directory and checks that every
// generated record was added and every manager manages its employees.
func Verify(ctx context.Context, path string, people []Person, managerToken string) error {
	dir := repository.NewDirectory(repository.WithLoadOptions(snapshot.WithManagerToken(managerToken)))

	res, err := dir.BulkLoad(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	if len(res.Diagnostics) > 0 {
		return fmt.Errorf("%w: %d rejected lines, first: %w", ErrVerify, len(res.Diagnostics), res.Diagnostics[0])
	}
	if res.Added != len(people) {
		return fmt.Errorf("%w: added %d of %d records", ErrVerify, res.Added, len(people))
	}

	for _, p := range people {
		if !p.Manager {
			continue
		}
		n, err := dir.NumberOfEmployeesManagedByManager(ctx, p.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrVerify, err)
		}
		if n != len(p.Managed) {
			return fmt.Errorf("%w: %s manages %d, want %d", ErrVerify, p.Name, n, len(p.Managed))
		}
	}

	logger.Get().Info(ctx, "seed file verified",
		logger.String("path", path),
		logger.Int("records", res.Added))
	return nil
}
