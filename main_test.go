package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuests = `{
	"questDatabase:9": {
		"0": {"properties:10": {"betterquesting:10": {"name:8": "quest.name.1", "desc:8": "quest.desc.1"}}},
		"5": {"properties:10": {"betterquesting:10": {"name:8": "mod.quest.vacuum_freezer"}}},
		"2": {}
	},
	"questLines:9": {
		"0:10": {
			"lineID:3": 0,
			"properties:10": {"betterquesting:10": {"name:8": "line.0.title"}},
			"quests:9": {"0:10": {"id:3": 0}, "1:10": {"id:3": 5}}
		}
	}
}`

type result struct {
	stdout string
	stderr string
	err    error
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"QUESTKEYS_QUESTS", "QUESTKEYS_LANG", "QUESTKEYS_PLAYER", "QUESTKEYS_STRICT"} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) result {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestKeys_Output(t *testing.T) {
	isolateEnv(t)
	path := writeTemp(t, "DefaultQuests.json", sampleQuests)

	want := "Quest ID: 0\n" +
		"Name Key: quest.name.1\n" +
		"Description Key: quest.desc.1\n" +
		"--------------------------------------------------\n" +
		"Quest ID: 5\n" +
		"Name Key: mod.quest.vacuum_freezer\n" +
		"Description Key: \n" +
		"--------------------------------------------------\n" +
		"Quest ID: 2\n" +
		"Name Key: \n" +
		"Description Key: \n" +
		"--------------------------------------------------\n"

	for _, args := range [][]string{{path}, {"keys", path}} {
		res := execute(t, args...)
		require.NoError(t, res.err)
		assert.Equal(t, want, res.stdout)
	}
}

func TestKeys_PathSources(t *testing.T) {
	isolateEnv(t)
	envPath := writeTemp(t, "env.json", `{"questDatabase:9": {"env": {}}}`)
	filePath := writeTemp(t, "file.json", `{"questDatabase:9": {"file": {}}}`)
	argPath := writeTemp(t, "arg.json", `{"questDatabase:9": {"arg": {}}}`)
	cfgPath := writeTemp(t, "config.yaml", "quests: "+filePath+"\n")

	res := execute(t, "--config", cfgPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Quest ID: file\n")

	t.Setenv("QUESTKEYS_QUESTS", envPath)
	res = execute(t, "--config", cfgPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Quest ID: env\n")

	res = execute(t, "--config", cfgPath, argPath)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Quest ID: arg\n")
}

func TestKeys_AbsentDatabase(t *testing.T) {
	isolateEnv(t)
	path := writeTemp(t, "DefaultQuests.json", `{"questLines:9": {}}`)

	res := execute(t, path)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	res = execute(t, "--strict", path)
	require.Error(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "questDatabase:9")
}

func TestKeys_Errors(t *testing.T) {
	isolateEnv(t)

	t.Run("malformed JSON prints nothing", func(t *testing.T) {
		path := writeTemp(t, "DefaultQuests.json", `{"questDatabase:9": {"0": {}}, `)
		res := execute(t, path)
		require.Error(t, res.err)
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "Error:")
	})

	t.Run("missing file", func(t *testing.T) {
		res := execute(t, filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, res.err)
		assert.Empty(t, res.stdout)
	})

	t.Run("too many arguments", func(t *testing.T) {
		res := execute(t, "keys", "a.json", "b.json")
		require.Error(t, res.err)
	})
}

func TestLines(t *testing.T) {
	isolateEnv(t)
	path := writeTemp(t, "DefaultQuests.json", sampleQuests)
	langPath := writeTemp(t, "en_us.lang", "line.0.title=§6The Beginning\n")

	res := execute(t, "lines", "--lang", langPath, path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Quest lines: 1")
	assert.Contains(t, res.stdout, "ID  QUESTS  NAME")
	assert.Contains(t, res.stdout, "0   2       The Beginning")
}

func TestProgress(t *testing.T) {
	isolateEnv(t)
	path := writeTemp(t, "DefaultQuests.json", sampleQuests)
	player := writeTemp(t, "QuestProgress.json", `{"questProgress:9": {"0:10": {"questID:3": 0, "completed:9": {"0:10": {"uuid:8": "x"}}}}}`)
	langPath := writeTemp(t, "en_us.lang", "quest.name.1=First Steps\n")

	res := execute(t, "progress", "--player", player, "--lang", langPath, path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Completed: 1/3 (33%)")
	assert.Contains(t, res.stdout, "Vacuum Freezer")
	assert.Contains(t, res.stdout, "Quest 2")
	assert.NotContains(t, res.stdout, "First Steps")

	res = execute(t, "progress", "--all", "--player", player, "--lang", langPath, path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "First Steps")
}

func TestProgress_RequiresPlayer(t *testing.T) {
	isolateEnv(t)
	path := writeTemp(t, "DefaultQuests.json", sampleQuests)

	res := execute(t, "progress", path)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "--player")
}

func TestProgress_AllComplete(t *testing.T) {
	isolateEnv(t)
	path := writeTemp(t, "DefaultQuests.json", `{"questDatabase:9": {"7": {}}}`)
	t.Setenv("QUESTKEYS_PLAYER", writeTemp(t, "p.json", `{"completedQuestIds": [7]}`))

	res := execute(t, "progress", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Completed: 1/1 (100%)")
	assert.Contains(t, res.stdout, "All quests complete.")
}

func TestProgress_TaggedDatabaseKeys(t *testing.T) {
	isolateEnv(t)
	path := writeTemp(t, "DefaultQuests.json", `{"questDatabase:9": {
		"0:10": {"questID:3": 0, "properties:10": {"betterquesting:10": {"name:8": "quest.name.0"}}},
		"1:10": {"questID:3": 1, "properties:10": {"betterquesting:10": {"name:8": "quest.name.1"}}}
	}}`)
	player := writeTemp(t, "QuestProgress.json", `{"questProgress:9": {"0:10": {"questID:3": 0, "claimed:1": 1}}}`)

	res := execute(t, "progress", "--player", player, path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Completed: 1/2 (50%)")
	assert.Regexp(t, `(?m)^1\s+1$`, res.stdout, "incomplete quest listed by its quest id")
	assert.NotRegexp(t, `(?m)^0\s`, res.stdout)

	res = execute(t, "keys", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Quest ID: 0:10\nName Key: quest.name.0\n")
}
