// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/plainlaw/internal/model"
)

// HistoryRecord is the persisted form of a message. Only the text and the
// author flag survive a reload.
type HistoryRecord struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// EncodeHistory serializes msgs as a JSON array of HistoryRecord.
func EncodeHistory(msgs []model.Message) (string, error) {
	records := make([]HistoryRecord, len(msgs))
	for i, m := range msgs {
		records[i] = HistoryRecord{Text: m.Text, IsUser: m.IsUser}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(data), nil
}

// DecodeHistory parses a chatHistory value into fresh messages in stored
// order.
func DecodeHistory(data string) ([]model.Message, error) {
	var records []HistoryRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	msgs := make([]model.Message, 0, len(records))
	for _, r := range records {
		if r.IsUser {
			msgs = append(msgs, model.NewUserMessage(r.Text))
		} else {
			msgs = append(msgs, model.NewBotMessage(r.Text))
		}
	}
	return msgs, nil
}
