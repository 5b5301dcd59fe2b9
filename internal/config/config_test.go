package config

import (
	"path/filepath"
	"testing"

	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDataDir_Resolution(t *testing.T) {
	t.Cleanup(viper.Reset)
	orig := GetGlobalConfigDir
	t.Cleanup(func() { GetGlobalConfigDir = orig })
	GetGlobalConfigDir = func() (string, error) { return "/home/test/.dayplan", nil }

	t.Setenv("XDG_DATA_HOME", "")
	assert.Equal(t, "/home/test/.dayplan", GetDataDir())

	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "dayplan"), GetDataDir())

	viper.Set("data.dir", "/explicit")
	assert.Equal(t, "/explicit", GetDataDir())
}

func TestResolveIn(t *testing.T) {
	assert.Equal(t, "/abs/log.txt", ResolveIn("/data", "/abs/log.txt"))
	assert.Equal(t, filepath.Join("/data", "logs", "dayplan.log"), ResolveIn("/data", DefaultLogPath))
	assert.Equal(t, "", ResolveIn("/data", ""))
}

func TestLoadSettings_MergesOverDefaults(t *testing.T) {
	kv := store.NewMemoryStore()
	assert.Equal(t, models.DefaultSettings(), LoadSettings(kv, nil))

	require.NoError(t, kv.Set(store.KeySettings, []byte(`{"pomodoro":{"workDuration":50},"notifications":{"sound":true}}`)))
	s := LoadSettings(kv, nil)
	assert.Equal(t, 50, s.Pomodoro.WorkDuration)
	assert.Equal(t, 5, s.Pomodoro.ShortBreak)
	assert.True(t, s.Pomodoro.Enabled)
	assert.True(t, s.Notifications.Sound)

	require.NoError(t, kv.Set(store.KeySettings, []byte(`{"pomodoro":{"workDuration":0}}`)))
	assert.Equal(t, models.DefaultSettings(), LoadSettings(kv, nil))
}

func TestSetSettingAndSave(t *testing.T) {
	kv := store.NewMemoryStore()
	s := models.DefaultSettings()

	require.NoError(t, SetSetting(&s, "pomodoro.longBreak", "20"))
	require.NoError(t, SetSetting(&s, "notifications.sound", "true"))
	assert.Error(t, SetSetting(&s, "pomodoro.shortBreak", "five"))
	assert.Error(t, SetSetting(&s, "theme", "dark"))
	require.NoError(t, SaveSettings(kv, s))

	got := LoadSettings(kv, nil)
	assert.Equal(t, 20, got.Pomodoro.LongBreak)
	assert.True(t, got.Notifications.Sound)

	require.NoError(t, SetSetting(&s, "pomodoro.intervalsBeforeLongBreak", "0"))
	assert.Error(t, SaveSettings(kv, s))
}
