// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names used by hand-written SQL,
// plus the embedded schema scripts applied at startup.
package schema

import "embed"

// Migrations contains the versioned schema scripts under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside [Migrations] holding the scripts.
const MigrationsDir = "migrations"

// PersonTable represents the 'person' table
type PersonTable struct {
	Table       string
	ID          string
	Name        string
	Description string
}

// Person is the schema definition for person
var Person = PersonTable{
	Table:       "person",
	ID:          "id",
	Name:        "name",
	Description: "description",
}

func (t PersonTable) Columns() []string { return []string{t.ID, t.Name, t.Description} }
