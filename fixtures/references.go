package fixtures

import "fmt"

// References maps symbolic keys such as "actor_0" to entities flushed by
// an earlier fixture group. The view handed to a group only resolves keys
// added by the groups it depends on, directly or transitively.
type References struct {
	entries map[string]reference
	// reader and visible are unset on the loader's own, unscoped view.
	reader  string
	visible map[string]bool
}

type reference struct {
	group  string
	entity interface{}
}

func NewReferences() *References {
	return &References{entries: make(map[string]reference)}
}

// scoped returns a view of r for the group reader that sees only keys
// added by the groups in visible.
func (r *References) scoped(reader string, visible map[string]bool) *References {
	return &References{entries: r.entries, reader: reader, visible: visible}
}

func (r *References) lookup(key string) (reference, bool, error) {
	ref, ok := r.entries[key]
	if !ok {
		return reference{}, false, nil
	}
	if r.visible != nil && !r.visible[ref.group] {
		return ref, true, fmt.Errorf("%w: %q belongs to %s, which %s does not depend on",
			ErrUnresolvedReference, key, ref.group, r.reader)
	}
	return ref, true, nil
}

// Has reports whether key resolves in this view.
func (r *References) Has(key string) bool {
	_, ok, err := r.lookup(key)
	return ok && err == nil
}

func (r *References) Len() int {
	if r.visible == nil {
		return len(r.entries)
	}
	n := 0
	for _, ref := range r.entries {
		if r.visible[ref.group] {
			n++
		}
	}
	return n
}

func (r *References) Get(key string) (interface{}, error) {
	ref, ok, err := r.lookup(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedReference, key)
	}
	return ref.entity, nil
}

func (r *References) exists(key string) bool {
	_, ok := r.entries[key]
	return ok
}

func (r *References) add(group, key string, v interface{}) error {
	if r.exists(key) {
		return fmt.Errorf("%w: %q", ErrDuplicateReference, key)
	}
	r.entries[key] = reference{group: group, entity: v}
	return nil
}

// Ref resolves key and checks that it points at a *T.
func Ref[T any](refs *References, key string) (*T, error) {
	v, err := refs.Get(key)
	if err != nil {
		return nil, err
	}
	typed, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %T, not a %T", ErrUnresolvedReference, key, v, typed)
	}
	return typed, nil
}

// Batch collects the entities one fixture group builds. Nothing is written
// until the whole group has been built.
type Batch struct {
	entries []batchEntry
}

type batchEntry struct {
	key    string
	entity interface{}
}

// Add queues entity for the flush and registers it under key.
func (b *Batch) Add(key string, entity interface{}) {
	b.entries = append(b.entries, batchEntry{key: key, entity: entity})
}

// Persist queues entity without a reference.
func (b *Batch) Persist(entity interface{}) {
	b.entries = append(b.entries, batchEntry{entity: entity})
}

func (b *Batch) Len() int {
	return len(b.entries)
}

func (b *Batch) checkKeys(refs *References) error {
	seen := make(map[string]bool, len(b.entries))
	for _, e := range b.entries {
		if e.key == "" {
			continue
		}
		if seen[e.key] || refs.exists(e.key) {
			return fmt.Errorf("%w: %q", ErrDuplicateReference, e.key)
		}
		seen[e.key] = true
	}
	return nil
}
