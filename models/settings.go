package models

// PomodoroSettings configures the pomodoro engine. Durations are minutes.
type PomodoroSettings struct {
	Enabled                  bool `json:"enabled"`
	WorkDuration             int  `json:"workDuration" validate:"min=1,max=240"`
	ShortBreak               int  `json:"shortBreak" validate:"min=1,max=120"`
	LongBreak                int  `json:"longBreak" validate:"min=1,max=240"`
	IntervalsBeforeLongBreak int  `json:"intervalsBeforeLongBreak" validate:"min=1,max=12"`
	AutoStartBreaks          bool `json:"autoStartBreaks"`
	AutoStartPomodoros       bool `json:"autoStartPomodoros"`
}

// NotificationSettings controls notification side effects.
type NotificationSettings struct {
	Sound bool `json:"sound"`
}

// Settings is the app-wide settings blob persisted under "app-settings".
type Settings struct {
	Pomodoro      PomodoroSettings     `json:"pomodoro"`
	Notifications NotificationSettings `json:"notifications"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Pomodoro: PomodoroSettings{
			Enabled:                  true,
			WorkDuration:             25,
			ShortBreak:               5,
			LongBreak:                15,
			IntervalsBeforeLongBreak: 4,
		},
		Notifications: NotificationSettings{Sound: false},
	}
}
