package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sonic "github.com/bytedance/sonic"
)

// Memory is an in-process Store used by tests and local seeding.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, table, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.tables[table][key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, table, key string, doc []byte) error {
	if table == "" || key == "" {
		return fmt.Errorf("table and key are required")
	}

	stored := make([]byte, len(doc))
	copy(stored, doc)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tables[table] == nil {
		m.tables[table] = make(map[string][]byte)
	}
	m.tables[table][key] = stored
	return nil
}

func (m *Memory) Scan(_ context.Context, table string, projection []string, filterField, filterValue string) ([][]byte, error) {
	m.mu.RLock()
	rows := m.tables[table]
	keys := make([]string, 0, len(rows))
	for key := range rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	docs := make([][]byte, 0, len(keys))
	for _, key := range keys {
		docs = append(docs, rows[key])
	}
	m.mu.RUnlock()

	out := make([][]byte, 0, len(docs))
	for _, doc := range docs {
		if filterField != "" {
			match, err := FieldEquals(doc, filterField, filterValue)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		partial, err := Project(doc, projection)
		if err != nil {
			return nil, err
		}
		out = append(out, partial)
	}
	return out, nil
}

func (m *Memory) UpdatePath(_ context.Context, table, key string, path []string, value []byte) error {
	if len(path) == 0 {
		return fmt.Errorf("update path is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.tables[table][key]
	if !ok {
		return fmt.Errorf("document %s/%s not found", table, key)
	}

	var full map[string]any
	if err := sonic.Unmarshal(doc, &full); err != nil {
		return fmt.Errorf("decode document %s/%s: %w", table, key, err)
	}

	var leaf any
	if err := sonic.Unmarshal(value, &leaf); err != nil {
		return fmt.Errorf("decode update value: %w", err)
	}

	node := full
	for _, field := range path[:len(path)-1] {
		next, ok := node[field].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[field] = next
		}
		node = next
	}
	node[path[len(path)-1]] = leaf

	updated, err := sonic.Marshal(full)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", table, key, err)
	}
	m.tables[table][key] = updated
	return nil
}
