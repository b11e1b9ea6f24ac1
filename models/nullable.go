package models

import (
	"bytes"
	"encoding/json"
)

// NullableFloat различает отсутствующее поле и явный null в PATCH-подобных
// запросах: Set=false значит "не менять", Set=true и Value=nil значит "очистить".
type NullableFloat struct {
	Set   bool
	Value *float64
}

func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n NullableFloat) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
