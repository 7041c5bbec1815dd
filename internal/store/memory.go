package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

// Memory keeps a JSON snapshot in memory. Used by tests and dry runs.
type Memory struct {
	data  []byte
	Saves int
}

func (m *Memory) Load(ctx context.Context) (*model.State, error) {
	_ = ctx
	if m.data == nil {
		return nil, nil
	}
	var state model.State
	if err := json.Unmarshal(m.data, &state); err != nil {
		return nil, fmt.Errorf("decode memory snapshot: %w", err)
	}
	return &state, nil
}

func (m *Memory) Save(ctx context.Context, state *model.State) error {
	_ = ctx
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode memory snapshot: %w", err)
	}
	m.data = b
	m.Saves++
	return nil
}
