package achievement

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
)

// Limits applied when reading the used-command list, so a damaged file cannot
// make the loader allocate without bound.
const (
	MaxStoredCommands  = 100
	MaxStoredNameBytes = 50
)

// NewlyUnlockedVersion is the first save format that stores the
// newly-unlocked mask.
const NewlyUnlockedVersion = 4

var byteOrder = binary.LittleEndian

// Encode writes the achievement block in the current format.
func (t *Tracker) Encode(w io.Writer) error {
	if err := binary.Write(w, byteOrder, t.unlocked); err != nil {
		return fmt.Errorf("writing unlocked mask: %w", err)
	}
	if err := binary.Write(w, byteOrder, t.newly); err != nil {
		return fmt.Errorf("writing newly unlocked mask: %w", err)
	}
	if err := binary.Write(w, byteOrder, t.progress); err != nil {
		return fmt.Errorf("writing progress: %w", err)
	}

	names := t.UsedCommands()
	if err := binary.Write(w, byteOrder, uint32(len(names))); err != nil {
		return fmt.Errorf("writing command count: %w", err)
	}
	for _, name := range names {
		if err := binary.Write(w, byteOrder, uint32(len(name))); err != nil {
			return fmt.Errorf("writing command length: %w", err)
		}
		if _, err := io.WriteString(w, name); err != nil {
			return fmt.Errorf("writing command name: %w", err)
		}
	}
	return nil
}

// Decode replaces the tracker contents with the achievement block read from r.
// version is the save file version the block belongs to; files older than
// NewlyUnlockedVersion come back with an empty newly-unlocked channel.
// On error the tracker is left untouched.
func (t *Tracker) Decode(r io.Reader, version uint8) error {
	next := NewTracker()

	if err := binary.Read(r, byteOrder, &next.unlocked); err != nil {
		return fmt.Errorf("reading unlocked mask: %w", err)
	}
	if version >= NewlyUnlockedVersion {
		if err := binary.Read(r, byteOrder, &next.newly); err != nil {
			return fmt.Errorf("reading newly unlocked mask: %w", err)
		}
	}
	if err := binary.Read(r, byteOrder, &next.progress); err != nil {
		return fmt.Errorf("reading progress: %w", err)
	}

	var count uint32
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return fmt.Errorf("reading command count: %w", err)
	}
	if count > MaxStoredCommands {
		log.Printf("Stored command count %d exceeds %d, truncating", count, MaxStoredCommands)
		count = MaxStoredCommands
	}

	for i := uint32(0); i < count; i++ {
		name, ok, err := readName(r)
		if err != nil {
			// A damaged tail only costs the Explorer bookkeeping
			log.Printf("Stopped reading used commands at entry %d: %v", i, err)
			break
		}
		if !ok || !IsBasicCommand(name) {
			continue
		}
		next.usedCommands[name] = struct{}{}
	}

	*t = *next
	return nil
}

// readName reads one length-prefixed command name. ok is false when the entry
// was oversized and has been skipped.
func readName(r io.Reader) (name string, ok bool, err error) {
	var length uint32
	if err := binary.Read(r, byteOrder, &length); err != nil {
		return "", false, err
	}
	if length > MaxStoredNameBytes {
		n, err := io.CopyN(io.Discard, r, int64(length))
		if err != nil {
			return "", false, fmt.Errorf("skipping %d byte entry after %d bytes: %w", length, n, err)
		}
		return "", false, nil
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", false, err
	}
	return string(buf), true, nil
}
