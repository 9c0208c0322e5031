package storage

import "fmt"

func DefaultStoreKind() string {
	return "memory"
}

func NewStore(kind string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}
