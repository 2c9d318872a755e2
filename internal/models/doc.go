// Package models defines the core domain models for Game Ochtend Manager.
//
// # Entities
//
// The following models are persisted as JSON documents, one collection per key:
//   - Group: a named team with an owner, login-capable members and an embedded participant roster
//   - Invitation: an offer of group membership from one user to another
//   - ChecklistItem, Note, AttendanceDate: group-scoped records stored in flat collections
//   - UserAccount, UserProfile: credential record and display metadata of a user
//
// # Group-scoped records
//
// Checklist items, notes and attendance dates carry the id of the group that owns them.
// A group has no pointer back to its records; they are discovered by filtering the flat
// collection (see package partition). Records of a deleted group are left in place.
//
// # Design Principles
//
//  1. **Always present**: list and map fields are never nil once a value has been built by a
//     constructor in this package or loaded through the schema migration.
//  2. **Ids, not pointers**: relationships use id strings (group id, participant id, role id).
//  3. **User ids are normalized emails**: the login identifier, trimmed and lower-cased.
package models
