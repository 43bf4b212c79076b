package fixtures

import (
	"errors"
	"fmt"
)

var (
	// ErrFixtureIntegrity is wrapped by every error that aborts seeding.
	ErrFixtureIntegrity = errors.New("fixture integrity failure")

	ErrUnknownDependency   = fmt.Errorf("%w: unknown dependency", ErrFixtureIntegrity)
	ErrDependencyCycle     = fmt.Errorf("%w: dependency cycle", ErrFixtureIntegrity)
	ErrUnresolvedReference = fmt.Errorf("%w: unresolved reference", ErrFixtureIntegrity)
	ErrDuplicateReference  = fmt.Errorf("%w: duplicate reference", ErrFixtureIntegrity)
	ErrDuplicateFixture    = fmt.Errorf("%w: duplicate fixture", ErrFixtureIntegrity)
)
