// Package progress reads BetterQuesting player progress files and works out
// which quests are complete.
package progress

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"questkeys/internal/questdb"
)

// maxDepth bounds the search for progress sections in nested exports.
const maxDepth = 20

// Progress is the set of completed quest IDs found in a progress file.
type Progress struct {
	completed map[string]bool
}

// Summary counts completed quests out of a quest list.
type Summary struct {
	Completed int
	Total     int
	Percent   int
}

// Load reads and parses the progress file at path.
func Load(path string) (*Progress, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read progress file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse progress JSON %s: %w", path, err)
	}
	slog.Debug("player progress loaded", "path", path, "completed", p.Len())
	return p, nil
}

// Parse decodes a progress document. Completion is read wherever it sits in
// the document from:
//   - questProgress sections: an entry counts when completed or claimed is
//     set, or when every one of its tasks has completeUsers
//   - quests maps, including those under UserProgress / PartyProgress
//   - completedQuests / completedQuestIds lists
func Parse(data []byte) (*Progress, error) {
	root, err := questdb.ParseObject(data)
	if err != nil {
		return nil, err
	}

	p := &Progress{completed: map[string]bool{}}
	p.walk(root, 0)
	return p, nil
}

// FromIDs builds a Progress from known completed quest IDs.
func FromIDs(ids ...string) *Progress {
	p := &Progress{completed: make(map[string]bool, len(ids))}
	for _, id := range ids {
		p.completed[id] = true
	}
	return p
}

// Completed reports whether quest id is complete. A nil Progress has
// nothing complete.
func (p *Progress) Completed(id string) bool {
	if p == nil {
		return false
	}
	return p.completed[id]
}

// Len is the number of completed quest IDs.
func (p *Progress) Len() int {
	if p == nil {
		return 0
	}
	return len(p.completed)
}

// Summarize counts how many of quests are complete, matching on
// Quest.QuestID.
func (p *Progress) Summarize(quests []questdb.Quest) Summary {
	s := Summary{Total: len(quests)}
	for _, q := range quests {
		if p.Completed(q.QuestID) {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) * 100 / float64(s.Total)))
	}
	return s
}

func (p *Progress) add(id string) {
	p.completed[id] = true
}

func (p *Progress) walk(obj questdb.Object, depth int) {
	if depth > maxDepth {
		return
	}

	for _, base := range []string{"completedQuests", "completedQuestIds"} {
		if _, v, ok := obj.Field(base); ok {
			p.readIDList(v)
		}
	}
	if key, v, ok := obj.Field("questProgress"); ok {
		p.readQuestProgress(key, v)
	}
	if _, v, ok := obj.Field("quests"); ok {
		p.readQuestMap(v)
	}
	for _, base := range []string{"UserProgress", "PartyProgress"} {
		if _, v, ok := obj.Field(base); ok {
			p.readUsers(v, depth)
		}
	}

	for _, key := range obj.Keys() {
		switch baseName(key) {
		case "completedQuests", "completedQuestIds", "questProgress",
			"UserProgress", "PartyProgress", "quests",
			"tasks", "userProgress", "completeUsers", "data", "completed",
			"claimed", "timestamp", "uuid", "taskID", "index", "questID":
			continue
		}
		v, ok := obj.Value(key)
		if !ok || !v.IsObject() {
			continue
		}
		child, err := questdb.ObjectOf(v)
		if err != nil {
			continue
		}
		p.walk(child, depth+1)
	}
}

// readQuestProgress takes a questProgress map or list.
func (p *Progress) readQuestProgress(key string, v gjson.Result) {
	if !v.IsObject() && !v.IsArray() {
		slog.Warn("skipping progress section", "key", key, "type", questdb.Describe(v))
		return
	}

	v.ForEach(func(entryKey, item gjson.Result) bool {
		entry, err := questdb.ObjectOf(questdb.Unwrap(item))
		if err != nil || item.Type == gjson.Null {
			return true
		}

		id, ok := entryID(entry, item, entryKey)
		if !ok {
			return true
		}
		if isDone(entry) || tasksDone(entry) {
			p.add(id)
		}
		return true
	})
}

// entryID prefers questID, then id, then the list entry's key, then the map
// key without its tag.
func entryID(entry questdb.Object, item, mapKey gjson.Result) (string, bool) {
	for _, base := range []string{"questID", "id"} {
		if id, ok := entry.IDField(base); ok {
			return id, true
		}
	}
	if id, ok := questdb.ScalarID(item.Get("key")); ok {
		return id, true
	}
	if mapKey.Type == gjson.String {
		return baseName(mapKey.Str), mapKey.Str != ""
	}
	return "", false
}

func isDone(entry questdb.Object) bool {
	_, completed, _ := entry.Field("completed")
	_, claimed, _ := entry.Field("claimed")
	return truthy(completed) || truthy(claimed)
}

// tasksDone reports whether the entry has tasks and every one has a
// non-empty completeUsers.
func tasksDone(entry questdb.Object) bool {
	_, tasks, ok := entry.Field("tasks")
	if !ok || (!tasks.IsObject() && !tasks.IsArray()) {
		return false
	}

	count := 0
	done := true
	tasks.ForEach(func(_, item gjson.Result) bool {
		count++
		if !item.IsObject() {
			done = false
			return false
		}
		task, err := questdb.ObjectOf(questdb.Unwrap(item))
		if err != nil {
			done = false
			return false
		}
		_, users, ok := task.Field("completeUsers")
		if !ok || !nonEmpty(users) {
			done = false
			return false
		}
		return true
	})
	return count > 0 && done
}

// readQuestMap reads a quests map of per-quest state. The id is questID
// when present, else the map key.
func (p *Progress) readQuestMap(v gjson.Result) {
	if !v.IsObject() {
		return
	}
	v.ForEach(func(key, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		state, err := questdb.ObjectOf(questdb.Unwrap(item))
		if err != nil || !isDone(state) {
			return true
		}
		id, ok := state.IDField("questID")
		if !ok {
			id = baseName(key.String())
		}
		if id != "" {
			p.add(id)
		}
		return true
	})
}

// readUsers walks the per-player (or per-party) records of UserProgress /
// PartyProgress, each carrying its own quests map or questProgress.
func (p *Progress) readUsers(v gjson.Result, depth int) {
	if !v.IsObject() {
		return
	}
	v.ForEach(func(_, user gjson.Result) bool {
		if !user.IsObject() {
			return true
		}
		if data, err := questdb.ObjectOf(user); err == nil {
			p.walk(data, depth+1)
		}
		return true
	})
}

// readIDList accepts either a list of IDs or an object keyed by ID. Nulls
// are not IDs.
func (p *Progress) readIDList(v gjson.Result) {
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if id, ok := questdb.ScalarID(item); ok {
				p.add(id)
			}
		}
	case v.IsObject():
		v.ForEach(func(key, _ gjson.Result) bool {
			if id := baseName(key.String()); id != "" {
				p.add(id)
			}
			return true
		})
	}
}

// truthy treats 1, true, "1" and any non-empty list or object as set.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Raw == "1"
	case gjson.String:
		return v.Str == "1"
	}
	return nonEmpty(v)
}

func nonEmpty(v gjson.Result) bool {
	if !v.IsObject() && !v.IsArray() {
		return false
	}
	empty := true
	v.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return !empty
}

func baseName(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
