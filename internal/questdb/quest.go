package questdb

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Keys BetterQuesting writes into DefaultQuests.json. The suffix is the NBT
// tag type of the value (8 string, 9 list, 10 compound, 11 int array).
const (
	KeyQuestDatabase = "questDatabase:9"
	KeyQuestLines    = "questLines:9"
	KeyProperties    = "properties:10"
	KeyBetterQuest   = "betterquesting:10"
	KeyName          = "name:8"
	KeyDesc          = "desc:8"
	KeyPrerequisites = "preRequisites:11"
)

// Quest holds the localization keys of one quest database entry
type Quest struct {
	// ID is the questDatabase:9 key exactly as written ("0", "0:10", ...).
	ID string
	// QuestID is the quest's numeric id, which progress files and quest
	// lines refer to: questID:3 when present, else ID without its tag.
	QuestID string

	NameKey       string
	DescKey       string
	Prerequisites []string
}

// Line is a quest line (chapter) and the quests placed on it
type Line struct {
	ID       string
	NameKey  string
	DescKey  string
	QuestIDs []string
}

// nameAndDesc reads properties:10 -> betterquesting:10 -> {name:8, desc:8}.
func nameAndDesc(entry Object) (name, desc string, err error) {
	props, err := entry.Path(KeyProperties, KeyBetterQuest)
	if err != nil {
		return "", "", err
	}
	// null reads as "" and a non-string is an error, unlike a plain
	// str() of whatever value is there.
	if name, err = props.String(KeyName); err != nil {
		return "", "", err
	}
	if desc, err = props.String(KeyDesc); err != nil {
		return "", "", err
	}
	return name, desc, nil
}

func decodeQuest(key string, value gjson.Result) (Quest, error) {
	entry, err := ObjectOf(Unwrap(value))
	if err != nil {
		return Quest{}, fmt.Errorf("quest %s: %w", key, err)
	}

	name, desc, err := nameAndDesc(entry)
	if err != nil {
		return Quest{}, fmt.Errorf("quest %s: %w", key, err)
	}

	return Quest{
		ID:            key,
		QuestID:       questID(entry, key),
		NameKey:       name,
		DescKey:       desc,
		Prerequisites: prerequisites(entry),
	}, nil
}

// questID prefers questID, then id, then the database key.
func questID(entry Object, key string) string {
	for _, base := range []string{"questID", "id"} {
		if id, ok := entry.IDField(base); ok {
			return id
		}
	}
	return stripTag(key)
}

// prerequisites is best effort: odd shapes and nulls are skipped, never
// fatal.
func prerequisites(entry Object) []string {
	_, v, ok := entry.Field("preRequisites")
	if !ok {
		return nil
	}

	var items []gjson.Result
	switch {
	case v.IsArray():
		items = v.Array()
	case v.IsObject():
		// {"0:3": 5} or older packs' {"0:10": {"questID:3": 4}}
		v.ForEach(func(_, item gjson.Result) bool {
			items = append(items, item)
			return true
		})
	default:
		return nil
	}

	var ids []string
	for _, item := range items {
		if id, ok := ScalarID(item); ok {
			ids = append(ids, id)
			continue
		}
		child, err := ObjectOf(Unwrap(item))
		if err != nil {
			continue
		}
		if id, ok := child.IDField("questID"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func decodeLine(key string, value gjson.Result) (Line, error) {
	entry, err := ObjectOf(Unwrap(value))
	if err != nil {
		return Line{}, fmt.Errorf("quest line %s: %w", key, err)
	}

	name, desc, err := nameAndDesc(entry)
	if err != nil {
		return Line{}, fmt.Errorf("quest line %s: %w", key, err)
	}

	id, ok := entry.IDField("lineID")
	if !ok {
		id = stripTag(key)
	}

	line := Line{ID: id, NameKey: name, DescKey: desc}

	_, questsValue, ok := entry.Field("quests")
	if !ok {
		return line, nil
	}
	quests, err := ObjectOf(questsValue)
	if err != nil {
		return Line{}, fmt.Errorf("quest line %s: quests: %w", key, err)
	}
	for _, k := range quests.Keys() {
		placement, err := quests.Object(k)
		if err != nil {
			return Line{}, fmt.Errorf("quest line %s: %w", key, err)
		}
		if qid, ok := placement.IDField("id"); ok {
			line.QuestIDs = append(line.QuestIDs, qid)
		}
	}
	return line, nil
}

// stripTag turns "3:10" into "3".
func stripTag(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
