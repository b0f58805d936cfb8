package questdb

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ErrNoQuestDatabase is returned in strict mode when the document has no
// questDatabase:9 entry.
var ErrNoQuestDatabase = errors.New("document has no " + KeyQuestDatabase)

// Document is a parsed DefaultQuests.json, loaded once and read-only.
type Document struct {
	root Object

	// Strict makes a missing questDatabase:9 an error instead of an
	// empty database.
	Strict bool
}

// Load reads and parses the quest database file at path. The file is read
// in full and closed before parsing starts.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quests JSON %s: %w", path, err)
	}

	slog.Debug("quest database loaded", "path", path, "bytes", len(data), "root_keys", doc.root.Len())
	return doc, nil
}

// Parse decodes a quest database document held in memory.
func Parse(data []byte) (*Document, error) {
	root, err := ParseObject(data)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Quests returns the entries of questDatabase:9 in document order.
func (d *Document) Quests() ([]Quest, error) {
	db, err := d.section(KeyQuestDatabase, d.Strict)
	if err != nil {
		return nil, err
	}

	quests := make([]Quest, 0, db.Len())
	for _, id := range db.Keys() {
		value, ok := db.Value(id)
		if !ok {
			// null entry: nothing to read, keys default to ""
			quests = append(quests, Quest{ID: id, QuestID: stripTag(id)})
			continue
		}
		q, err := decodeQuest(id, value)
		if err != nil {
			return nil, err
		}
		quests = append(quests, q)
	}

	slog.Debug("quests extracted", "count", len(quests))
	return quests, nil
}

// Lines returns the entries of questLines:9 in document order.
func (d *Document) Lines() ([]Line, error) {
	section, err := d.section(KeyQuestLines, false)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, section.Len())
	for _, key := range section.Keys() {
		value, ok := section.Value(key)
		if !ok {
			continue
		}
		line, err := decodeLine(key, value)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (d *Document) section(key string, required bool) (Object, error) {
	if _, ok := d.root.Value(key); !ok {
		if required {
			return Object{}, ErrNoQuestDatabase
		}
		slog.Debug("section absent, treating as empty", "key", key)
		return Object{}, nil
	}
	return d.root.Object(key)
}
