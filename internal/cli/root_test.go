package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/po1sontre/nightreign-launcher/internal/audio"
	"github.com/po1sontre/nightreign-launcher/internal/config"
)

const (
	testConfigPath  = "/config/config.toml"
	testBackupRoot  = "/backups"
	testResourceDir = "/resources"
	testGameDir     = "/game"
	testSaveDir     = "/saves"
)

type env struct {
	fs          afero.Fs
	out         *bytes.Buffer
	err         *bytes.Buffer
	in          *bytes.Buffer
	gameRunning func(exeName, dir string) bool
	waitForExit func(exeName string, timeout time.Duration) bool
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		fs:  afero.NewMemMapFs(),
		out: &bytes.Buffer{},
		err: &bytes.Buffer{},
		in:  &bytes.Buffer{},
	}

	// Sounds off so commands never touch the audio device.
	settings := config.Defaults()
	settings.GameDir = testGameDir
	settings.Sounds = false
	require.NoError(t, config.Save(e.fs, testConfigPath, settings))
	return e
}

func (e *env) run(t *testing.T, args ...string) error {
	t.Helper()
	deps := &Deps{
		Fs:          e.fs,
		Stdin:       e.in,
		Stdout:      e.out,
		Stderr:      e.err,
		ConfigPath:  testConfigPath,
		BackupRoot:  testBackupRoot,
		ResourceDir: func() (string, error) { return testResourceDir, nil },
		GameRunning: e.gameRunning,
		WaitForExit: e.waitForExit,
	}
	root := NewRootCmd(deps)
	root.SetArgs(args)
	return root.Execute()
}

// seedPatchedGame lays out resources and a game directory that passes
// verification after patching.
func seedPatchedGame(t *testing.T, fs afero.Fs) {
	t.Helper()
	files := map[string]string{
		testResourceDir + "/online_patch/nrsc_launcher.exe":              "launcher",
		testResourceDir + "/online_patch/SeamlessCoop/nrsc_settings.ini": "[SESSION]\nplayer_count = 3\n",
		testResourceDir + "/regulation.bin":                              "regulation",
		testResourceDir + "/mods/modengine.ini":                          "modengine",
		testResourceDir + "/fps unlock/unlock.exe":                       "unlock",
		testResourceDir + "/nograssnoshadows/config.toml":                "nograss",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.FromSlash(path), []byte(content), 0o644))
	}
	require.NoError(t, fs.MkdirAll(testGameDir, 0o755))
}

// TestVerifyCmd_Unpatched verifies missing items are listed and the
// command fails.
func TestVerifyCmd_Unpatched(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.fs.MkdirAll(testGameDir, 0o755))

	err := e.run(t, "verify")
	require.Error(t, err)
	assert.Contains(t, e.out.String(), "missing: regulation.bin")
	assert.Contains(t, e.out.String(), "missing: mods")
}

// TestPatchThenVerify verifies patch reports success and verify is
// clean afterwards.
func TestPatchThenVerify(t *testing.T) {
	e := newEnv(t)
	seedPatchedGame(t, e.fs)

	require.NoError(t, e.run(t, "patch"))
	assert.Contains(t, e.out.String(), "Game patched successfully")

	e.out.Reset()
	require.NoError(t, e.run(t, "verify"))
	assert.Contains(t, e.out.String(), "fully patched")
}

// TestPatchCmd_GameDirOverride verifies the --game-dir flag wins over
// the stored setting.
func TestPatchCmd_GameDirOverride(t *testing.T) {
	e := newEnv(t)
	seedPatchedGame(t, e.fs)
	require.NoError(t, e.fs.MkdirAll("/other-game", 0o755))

	require.NoError(t, e.run(t, "patch", "--game-dir", "/other-game"))

	exists, err := afero.Exists(e.fs, filepath.FromSlash("/other-game/regulation.bin"))
	require.NoError(t, err)
	assert.True(t, exists)
}

// TestPlayersCmd_SetAndShow verifies setting the count persists it
// and pushes it into the coop settings.
func TestPlayersCmd_SetAndShow(t *testing.T) {
	e := newEnv(t)
	iniPath := filepath.Join(testGameDir, "SeamlessCoop", "nrsc_settings.ini")
	require.NoError(t, afero.WriteFile(e.fs, iniPath, []byte("[SESSION]\nplayer_count = 3\n"), 0o644))

	require.NoError(t, e.run(t, "players", "2"))
	assert.Contains(t, e.out.String(), "Player count set to 2")

	data, err := afero.ReadFile(e.fs, iniPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "player_count = 2")

	settings := config.Load(e.fs, testConfigPath)
	assert.Equal(t, 2, settings.PlayerCount)

	e.out.Reset()
	require.NoError(t, e.run(t, "players"))
	assert.Equal(t, "2\n", e.out.String())
}

func TestPlayersCmd_RejectsOutOfRange(t *testing.T) {
	e := newEnv(t)

	assert.Error(t, e.run(t, "players", "0"))
	assert.Error(t, e.run(t, "players", "4"))
	assert.Error(t, e.run(t, "players", "many"))
}

// TestPlayersCmd_ShowUnpatched verifies the stored preference is
// shown when no coop settings file exists yet.
func TestPlayersCmd_ShowUnpatched(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.run(t, "players"))
	assert.Contains(t, e.out.String(), "3 (configured; coop settings not readable)")
}

// TestBackupCmds runs the create, list, restore cycle through the CLI.
func TestBackupCmds(t *testing.T) {
	e := newEnv(t)
	savePath := filepath.Join(testSaveDir, "NR0000.sl2")
	require.NoError(t, afero.WriteFile(e.fs, savePath, []byte("save bytes"), 0o644))

	require.NoError(t, e.run(t, "backup", "create", "--save-dir", testSaveDir))
	assert.Contains(t, e.out.String(), "Backup created:")

	e.out.Reset()
	require.NoError(t, e.run(t, "backup", "list"))
	assert.Contains(t, e.out.String(), "TIMESTAMP")

	// Damage the live save, then restore with --yes.
	require.NoError(t, afero.WriteFile(e.fs, savePath, []byte("corrupted"), 0o644))
	e.out.Reset()
	require.NoError(t, e.run(t, "backup", "restore", "--save-dir", testSaveDir, "--yes"))
	assert.Contains(t, e.out.String(), "Backup restored")

	data, err := afero.ReadFile(e.fs, savePath)
	require.NoError(t, err)
	assert.Equal(t, "save bytes", string(data))
}

// TestBackupRestore_DeclinedPrompt verifies answering no leaves the
// saves untouched.
func TestBackupRestore_DeclinedPrompt(t *testing.T) {
	e := newEnv(t)
	savePath := filepath.Join(testSaveDir, "NR0000.sl2")
	require.NoError(t, afero.WriteFile(e.fs, savePath, []byte("save bytes"), 0o644))
	require.NoError(t, e.run(t, "backup", "create", "--save-dir", testSaveDir))

	require.NoError(t, afero.WriteFile(e.fs, savePath, []byte("changed"), 0o644))
	e.in.WriteString("n\n")
	e.out.Reset()
	require.NoError(t, e.run(t, "backup", "restore", "--save-dir", testSaveDir))
	assert.Contains(t, e.out.String(), "Aborted")

	data, err := afero.ReadFile(e.fs, savePath)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(data))
}

func TestBackupList_Empty(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.run(t, "backup", "list"))
	assert.Contains(t, e.out.String(), "No backups")
}

// TestSettingsCmds exercises show and set round trips.
func TestSettingsCmds(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.run(t, "settings", "show"))
	assert.Contains(t, e.out.String(), "game_dir")
	assert.Contains(t, e.out.String(), "teal (#00b4b4)")

	e.out.Reset()
	require.NoError(t, e.run(t, "settings", "set", "theme", "purple"))
	assert.Contains(t, e.out.String(), "theme set to purple")

	settings := config.Load(e.fs, testConfigPath)
	assert.Equal(t, config.ThemePurple, settings.Theme)
}

func TestSettingsSet_Invalid(t *testing.T) {
	e := newEnv(t)

	tests := [][]string{
		{"settings", "set", "theme", "chartreuse"},
		{"settings", "set", "player_count", "7"},
		{"settings", "set", "sounds", "maybe"},
		{"settings", "set", "nonsense", "1"},
	}
	for _, args := range tests {
		assert.Error(t, e.run(t, args...), strings.Join(args, " "))
	}
}

// TestSettingsSet_DoesNotPersistOverrides verifies a --game-dir flag
// on the same invocation is not written to disk.
func TestSettingsSet_DoesNotPersistOverrides(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.run(t, "settings", "set", "theme", "red", "--game-dir", "/elsewhere"))

	settings := config.Load(e.fs, testConfigPath)
	assert.Equal(t, config.ThemeRed, settings.Theme)
	assert.Equal(t, testGameDir, settings.GameDir)
}

// TestLaunchCmd_MissingGameDir verifies the hint about settings set
// comes back when the game directory does not exist.
func TestLaunchCmd_MissingGameDir(t *testing.T) {
	e := newEnv(t)

	err := e.run(t, "launch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game directory not found")
}

// TestQuietFlag verifies --quiet is accepted and forces sounds off
// even when the stored preference enables them.
func TestQuietFlag(t *testing.T) {
	e := newEnv(t)
	seedPatchedGame(t, e.fs)
	settings := config.Load(e.fs, testConfigPath)
	settings.Sounds = true
	require.NoError(t, config.Save(e.fs, testConfigPath, settings))

	require.NoError(t, e.run(t, "patch", "--quiet"))
	assert.False(t, audio.Enabled())
}

// TestConfigFlag verifies --config points every command at an
// alternate settings file.
func TestConfigFlag(t *testing.T) {
	e := newEnv(t)
	alt := "/alt/config.toml"
	settings := config.Defaults()
	settings.Theme = config.ThemePurple
	settings.Sounds = false
	require.NoError(t, config.Save(e.fs, alt, settings))

	require.NoError(t, e.run(t, "settings", "show", "--config", alt))
	assert.Contains(t, e.out.String(), "purple")

	e.out.Reset()
	require.NoError(t, e.run(t, "settings", "set", "theme", "red", "--config", alt))

	// The alternate file was written, the default one untouched.
	assert.Equal(t, config.ThemeRed, config.Load(e.fs, alt).Theme)
	assert.Equal(t, config.ThemeTeal, config.Load(e.fs, testConfigPath).Theme)
}

// TestPatchCmd_WaitsForRunningGame verifies patch waits for the game
// to exit once confirmed, then applies the patch.
func TestPatchCmd_WaitsForRunningGame(t *testing.T) {
	e := newEnv(t)
	seedPatchedGame(t, e.fs)
	e.gameRunning = func(exeName, dir string) bool { return true }
	waited := false
	e.waitForExit = func(exeName string, timeout time.Duration) bool {
		waited = true
		return true
	}

	require.NoError(t, e.run(t, "patch", "--yes"))

	assert.True(t, waited)
	assert.Contains(t, e.out.String(), "Waiting for the game to exit")
	assert.Contains(t, e.out.String(), "Game patched successfully")
}

// TestPatchCmd_GameNeverExits verifies patch fails cleanly when the
// game outlives the wait.
func TestPatchCmd_GameNeverExits(t *testing.T) {
	e := newEnv(t)
	seedPatchedGame(t, e.fs)
	e.gameRunning = func(exeName, dir string) bool { return true }
	e.waitForExit = func(exeName string, timeout time.Duration) bool { return false }

	err := e.run(t, "patch", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still running")

	exists, statErr := afero.Exists(e.fs, filepath.Join(testGameDir, "regulation.bin"))
	require.NoError(t, statErr)
	assert.False(t, exists)
}

// TestPatchCmd_RunningGameDeclined verifies declining the prompt
// aborts without touching the game directory.
func TestPatchCmd_RunningGameDeclined(t *testing.T) {
	e := newEnv(t)
	seedPatchedGame(t, e.fs)
	e.gameRunning = func(exeName, dir string) bool { return true }
	e.waitForExit = func(exeName string, timeout time.Duration) bool {
		t.Error("WaitForExit should not run after a declined prompt")
		return false
	}
	e.in.WriteString("n\n")

	require.NoError(t, e.run(t, "patch"))
	assert.Contains(t, e.out.String(), "Aborted")

	exists, err := afero.Exists(e.fs, filepath.Join(testGameDir, "regulation.bin"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVersionCmd(t *testing.T) {
	e := newEnv(t)

	require.NoError(t, e.run(t, "version"))
	assert.Contains(t, e.out.String(), "nightreign-launcher dev")
}
