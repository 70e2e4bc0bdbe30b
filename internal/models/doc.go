// Package models defines the core domain models for the todo list backend.
//
// # Current Models
//
// The backend persists a single resource:
//   - TodoItem: one task on the list (title, checked flag, optional extras)
//   - Patch: a partial update request against an existing TodoItem
//
// # Design Principles
//
// 1. **Store-assigned identity**: TodoItem.ID is set by the storage layer on insert and never changes
// 2. **Omitted means unchanged**: Patch uses pointer fields for every optional attribute
// 3. **Checked is not optional**: Patch.Checked is a plain bool and always overwrites
// 4. **Titles are not keys**: several items may share a title; lookups by title return a list
package models
