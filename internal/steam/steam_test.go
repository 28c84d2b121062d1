package steam

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/po1sontre/nightreign-launcher/internal/deploy"
	"github.com/po1sontre/nightreign-launcher/internal/paths"
)

const (
	resourceDir = "/resources"
	steamDir    = "/steam"
)

const sampleActionsVDF = `"In Game Actions"
{
	"actions"
	{
		"GameControls"
		{
			"title"	"#Set_GameControls"
			"Button"
			{
				"attack"	"#Action_Attack"
				"guard"		"#Action_Guard"
			}
		}
	}
	"localization"
	{
		"english"
		{
			"Set_GameControls"	"In-Game Controls"
			"Action_Attack"		"Attack"
			"Action_Guard"		"Guard"
		}
	}
}
`

// seedResources lays out the bundled controller fix files.
func seedResources(t *testing.T, fs afero.Fs) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs,
		filepath.Join(resourceDir, TemplatesSource, "controller_neptune_gamepad.vdf"),
		[]byte("\"template\" {}"), 0o644))
	require.NoError(t, afero.WriteFile(fs,
		filepath.Join(resourceDir, TemplatesSource, "controller_xbox_gamepad.vdf"),
		[]byte("\"template\" {}"), 0o644))
	require.NoError(t, afero.WriteFile(fs,
		filepath.Join(resourceDir, paths.ActionsVDF),
		[]byte(sampleActionsVDF), 0o644))
}

// TestApplyControllerFix verifies the templates and the actions file
// land in the places Steam reads them from.
func TestApplyControllerFix(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedResources(t, fs)
	require.NoError(t, fs.MkdirAll(steamDir, 0o755))

	require.NoError(t, ApplyControllerFix(fs, resourceDir, steamDir))

	for _, path := range []string{
		filepath.Join(steamDir, "controller_base", "templates", "controller_neptune_gamepad.vdf"),
		filepath.Join(steamDir, "controller_base", "templates", "controller_xbox_gamepad.vdf"),
		filepath.Join(steamDir, "controller_config", paths.ActionsVDF),
	} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, "expected %s", path)
	}
}

func TestApplyControllerFix_MissingSteamDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedResources(t, fs)

	err := ApplyControllerFix(fs, resourceDir, "/nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, deploy.ErrBadGameDir)
}

func TestApplyControllerFix_MissingTemplates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(resourceDir, paths.ActionsVDF), []byte(sampleActionsVDF), 0o644))
	require.NoError(t, fs.MkdirAll(steamDir, 0o755))

	err := ApplyControllerFix(fs, resourceDir, steamDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, deploy.ErrMissingSource)
}

// TestApplyControllerFix_CorruptActionsFile verifies nothing is
// written when the bundled VDF does not parse.
func TestApplyControllerFix_CorruptActionsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs,
		filepath.Join(resourceDir, TemplatesSource, "controller_xbox_gamepad.vdf"),
		[]byte("\"template\" {}"), 0o644))
	require.NoError(t, afero.WriteFile(fs,
		filepath.Join(resourceDir, paths.ActionsVDF),
		[]byte("\"broken {{{"), 0o644))
	require.NoError(t, fs.MkdirAll(steamDir, 0o755))

	err := ApplyControllerFix(fs, resourceDir, steamDir)
	require.Error(t, err)

	exists, statErr := afero.Exists(fs, filepath.Join(steamDir, "controller_config", paths.ActionsVDF))
	require.NoError(t, statErr)
	assert.False(t, exists)
}

// TestFindDir_Configured verifies a configured directory that exists
// wins over discovery.
func TestFindDir_Configured(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/custom/steam", 0o755))

	assert.Equal(t, "/custom/steam", FindDir(fs, "/custom/steam"))
}

// TestFindDir_ConfiguredMissing verifies a configured directory that
// does not exist falls through to the platform default.
func TestFindDir_ConfiguredMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	got := FindDir(fs, "/custom/steam")
	assert.NotEqual(t, "/custom/steam", got)
	assert.NotEmpty(t, got)
}
