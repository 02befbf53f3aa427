package uow

import "context"

// Run executes fn inside the unit of work already present in ctx, or begins
// a short-lived one from the factory, committing on success and rolling back
// on error.
func Run(ctx context.Context, factory UoWFactory, fn func(ctx context.Context, unit UnitOfWork) error) error {
	if unit, ok := FromContext(ctx); ok {
		return fn(ctx, unit)
	}
	if factory == nil {
		return ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, TxOptions{})
	if err != nil {
		return err
	}
	ctx = ContextWithUnitOfWork(ctx, unit)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()
	if err := fn(ctx, unit); err != nil {
		return err
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}
