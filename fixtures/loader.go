package fixtures

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vnkhanh/wild-series-backend/models"
	"github.com/vnkhanh/wild-series-backend/repository"
)

// Fixture builds one group of seed entities.
type Fixture interface {
	// Name identifies the group in other groups' Dependencies.
	Name() string
	// Dependencies lists the groups whose references Load resolves.
	Dependencies() []string
	// Load builds the group's entities into batch. It must not touch the
	// database; everything it needs from other groups comes from refs.
	Load(refs *References, batch *Batch) error
}

type Loader struct {
	db       *gorm.DB
	log      *zap.Logger
	fixtures []Fixture
	byName   map[string]Fixture
}

func NewLoader(db *gorm.DB, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{db: db, log: log, byName: make(map[string]Fixture)}
}

func (l *Loader) Add(fixtures ...Fixture) error {
	for _, f := range fixtures {
		if _, ok := l.byName[f.Name()]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateFixture, f.Name())
		}
		l.byName[f.Name()] = f
		l.fixtures = append(l.fixtures, f)
	}
	return nil
}

// Order returns the fixtures so that every group comes after all of its
// dependencies. Ties keep registration order.
func (l *Loader) Order() ([]Fixture, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(l.fixtures))
	ordered := make([]Fixture, 0, len(l.fixtures))

	var visit func(f Fixture, path []string) error
	visit = func(f Fixture, path []string) error {
		switch state[f.Name()] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(append(path, f.Name()), " -> "))
		}
		state[f.Name()] = visiting
		for _, depName := range f.Dependencies() {
			dep, ok := l.byName[depName]
			if !ok {
				return fmt.Errorf("%w: %s requires %s", ErrUnknownDependency, f.Name(), depName)
			}
			if err := visit(dep, append(path, f.Name())); err != nil {
				return err
			}
		}
		state[f.Name()] = done
		ordered = append(ordered, f)
		return nil
	}

	for _, f := range l.fixtures {
		if err := visit(f, nil); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// dependencyClosure maps each group to every group it depends on, directly
// or transitively. ordered must already be in dependency order.
func dependencyClosure(ordered []Fixture) map[string]map[string]bool {
	closure := make(map[string]map[string]bool, len(ordered))
	for _, f := range ordered {
		deps := make(map[string]bool)
		for _, d := range f.Dependencies() {
			deps[d] = true
			for inherited := range closure[d] {
				deps[inherited] = true
			}
		}
		closure[f.Name()] = deps
	}
	return closure
}

// Load runs every group in dependency order inside one transaction. Each
// group is built completely, then flushed in a nested transaction before
// its dependents start. Any failure rolls the whole seed back.
func (l *Loader) Load(ctx context.Context) (*References, error) {
	ordered, err := l.Order()
	if err != nil {
		return nil, err
	}

	refs := NewReferences()
	visible := dependencyClosure(ordered)
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, f := range ordered {
			start := time.Now()
			batch := &Batch{}
			if err := f.Load(refs.scoped(f.Name(), visible[f.Name()]), batch); err != nil {
				return fmt.Errorf("load %s: %w", f.Name(), err)
			}
			if err := batch.checkKeys(refs); err != nil {
				return fmt.Errorf("load %s: %w", f.Name(), err)
			}

			err := tx.Transaction(func(gtx *gorm.DB) error {
				for _, e := range batch.entries {
					if err := repository.Persist(gtx, e.entity); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("flush %s: %w", f.Name(), err)
			}

			for _, e := range batch.entries {
				if e.key == "" {
					continue
				}
				if err := refs.add(f.Name(), e.key, e.entity); err != nil {
					return err
				}
			}

			l.log.Info("fixture group loaded",
				zap.String("fixture", f.Name()),
				zap.Int("entities", batch.Len()),
				zap.Duration("duration", time.Since(start)),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// Purge deletes every catalog row, children first.
func (l *Loader) Purge(ctx context.Context) error {
	tables := []interface{}{
		&models.Comment{},
		&models.Episode{},
		&models.Season{},
		&models.ProgramActor{},
		&models.Program{},
		&models.Actor{},
		&models.Category{},
		&models.User{},
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("purge %T: %w", table, err)
			}
		}
		l.log.Info("catalog purged")
		return nil
	})
}
