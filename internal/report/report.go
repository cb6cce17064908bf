// Package report exports achievement progress as CSV.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"evopet/internal/achievement"
)

// DefaultPath is used by the export command when no file is given.
const DefaultPath = "achievements.csv"

// Row is one achievement in the export.
type Row struct {
	Kind        uint8  `csv:"kind"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Unlocked    bool   `csv:"unlocked"`
	Progress    uint32 `csv:"progress"`
	Required    uint32 `csv:"required"`
}

// Rows returns one row per achievement kind in enumeration order.
func Rows(t *achievement.Tracker) []*Row {
	rows := make([]*Row, 0, achievement.Count)
	for _, k := range achievement.All() {
		rows = append(rows, &Row{
			Kind:        uint8(k),
			Name:        k.Name(),
			Description: k.Description(),
			Unlocked:    t.IsUnlocked(k),
			Progress:    t.Progress(k),
			Required:    k.Required(),
		})
	}
	return rows
}

// WriteAchievements writes the CSV export, header included, to w.
func WriteAchievements(w io.Writer, t *achievement.Tracker) error {
	if err := gocsv.Marshal(Rows(t), w); err != nil {
		return fmt.Errorf("writing achievements csv: %w", err)
	}
	return nil
}

// ExportAchievements writes the CSV export to the file at path, replacing it.
func ExportAchievements(path string, t *achievement.Tracker) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteAchievements(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
