// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local key-value store that carries plainlaw
// state across sessions.
//
// Two keys are used: KeyTheme holds "light" or "dark", and KeyChatHistory
// holds the transcript as a JSON array of {text, isUser} records. Each save
// overwrites the previous value wholesale.
//
// # Key Types
//
//   - KV: string-keyed store (Get, Set, Delete, Close)
//   - SQLiteKV: default backend, one table in a SQLite database
//   - FileKV: one JSON document written atomically
//   - MemoryKV: in-process store for tests and --store=memory
//   - HistoryRecord: persisted form of one message
//
// # Usage
//
//	kv, err := storage.Open(storage.BackendSQLite, "")
//	if err != nil {
//	    return err
//	}
//	defer kv.Close()
//	data, _ := storage.EncodeHistory(conv.Messages())
//	err = kv.Set(storage.KeyChatHistory, data)
package storage
