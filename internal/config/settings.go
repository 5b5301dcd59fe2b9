package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/store"
)

// SettingKeys lists the keys accepted by SetSetting.
var SettingKeys = []string{
	"pomodoro.enabled",
	"pomodoro.workDuration",
	"pomodoro.shortBreak",
	"pomodoro.longBreak",
	"pomodoro.intervalsBeforeLongBreak",
	"pomodoro.autoStartBreaks",
	"pomodoro.autoStartPomodoros",
	"notifications.sound",
}

// LoadSettings reads the app-settings blob, overlaying stored fields on the
// defaults. Invalid or malformed settings fall back to defaults.
func LoadSettings(kv store.Store, log *slog.Logger) models.Settings {
	if log == nil {
		log = slog.Default()
	}
	s := models.DefaultSettings()
	if !store.LoadJSON(kv, store.KeySettings, &s, log) {
		return models.DefaultSettings()
	}
	if err := models.ValidateStruct(s); err != nil {
		log.Warn("ignoring invalid stored settings", "error", err)
		return models.DefaultSettings()
	}
	return s
}

// SaveSettings validates and stores s.
func SaveSettings(kv store.Store, s models.Settings) error {
	if err := models.ValidateStruct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := kv.Set(store.KeySettings, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// SetSetting parses value and assigns it to the dotted key in s.
func SetSetting(s *models.Settings, key, value string) error {
	p := &s.Pomodoro
	switch key {
	case "pomodoro.enabled":
		return setBool(&p.Enabled, value)
	case "pomodoro.workDuration":
		return setInt(&p.WorkDuration, value)
	case "pomodoro.shortBreak":
		return setInt(&p.ShortBreak, value)
	case "pomodoro.longBreak":
		return setInt(&p.LongBreak, value)
	case "pomodoro.intervalsBeforeLongBreak":
		return setInt(&p.IntervalsBeforeLongBreak, value)
	case "pomodoro.autoStartBreaks":
		return setBool(&p.AutoStartBreaks, value)
	case "pomodoro.autoStartPomodoros":
		return setBool(&p.AutoStartPomodoros, value)
	case "notifications.sound":
		return setBool(&s.Notifications.Sound, value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}

func setBool(dst *bool, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("expected true or false, got %q", value)
	}
	*dst = v
	return nil
}

func setInt(dst *int, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected a whole number of minutes, got %q", value)
	}
	*dst = v
	return nil
}
