// Package model contains domain models passed between layers.
package model

import "strconv"

// Competence levels. A level outside this range is clamped on construction.
const (
	LevelWeak     = 0
	LevelAdequate = 1
	LevelStrong   = 2
)

// Competence is a named skill rated at a proficiency level in [LevelWeak, LevelStrong].
type Competence struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// NewCompetence builds a Competence with level clamped into [LevelWeak, LevelStrong].
func NewCompetence(name string, level int) Competence {
	return Competence{Name: name, Level: ClampLevel(level)}
}

// ClampLevel maps any integer onto the supported level range.
func ClampLevel(level int) int {
	switch {
	case level < LevelWeak:
		return LevelWeak
	case level > LevelStrong:
		return LevelStrong
	default:
		return level
	}
}

// String renders the competence as "Name (level)".
func (c Competence) String() string {
	return c.Name + " (" + strconv.Itoa(c.Level) + ")"
}
