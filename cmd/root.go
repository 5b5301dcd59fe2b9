/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/logger"
	"github.com/josephgoksu/dayplan/internal/ui"
	"github.com/josephgoksu/dayplan/models"
	"github.com/josephgoksu/dayplan/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonOutput switches command output to JSON.
	jsonOutput bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dayplan",
	Short: "dayplan - daily planner, time tracker and pomodoro timer",
	Long: `dayplan plans your day, tracks the time you spend on each task and
keeps a pomodoro timer running alongside.

Recurring tasks roll over to the next day automatically, and daily, weekly
and monthly reports compare what you planned with what you did.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetCommand(cmd.CommandPath())
		logger.SetLastInput(strings.Join(os.Args[1:], " "))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(friendlyMessage(err), err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.dayplan/.dayplan.yaml or $HOME/.dayplan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// newApp builds the application for a command. Tests replace it.
var newApp = func(cfg types.AppConfig) (*app.App, io.Closer, error) {
	logger.SetBasePath(cfg.Data.Dir)
	logger.SetVersion(version)

	log, logCloser, err := logger.Setup(app.LogPath(cfg), cfg.Log.Level, cfg.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("set up logging: %w", err)
	}
	a, err := app.New(app.Options{Config: cfg, Logger: log})
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	return a, logCloser, nil
}

// withApp opens the application, catches up on the daily rollover, runs fn
// and closes everything again.
func withApp(fn func(a *app.App) error) error {
	return openApp(true, fn)
}

func openApp(catchUp bool, fn func(a *app.App) error) (err error) {
	a, logCloser, err := newApp(*GetConfig())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
		_ = logCloser.Close()
	}()

	if catchUp {
		a.Rollover.CheckAndRun(false)
	}

	if t, ok := a.Tasks.ActiveTask(); ok {
		logger.SetActiveTask(t.ID+" "+t.Title, string(a.Ledger.State()))
	}
	return fn(a)
}

// selectTaskInteractive presents a prompt to the user to select one of tasks.
func selectTaskInteractive(tasks []models.Task, label string) (models.Task, error) {
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} ({{ .TimeSlot }} {{ .Category }}, {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} ({{ .TimeSlot }} {{ .Category }}, {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }}`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Planned:\t" | faint }} {{ .Duration }}m
{{ "Priority:\t" | faint }} {{ .Priority }}`,
	}

	searcher := func(input string, index int) bool {
		task := tasks[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(task.Title), input) || strings.HasPrefix(task.ID, input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err
	}
	return tasks[i], nil
}

// canPrompt reports whether interactive selection is possible.
var canPrompt = func() bool {
	return !isJSON() && ui.IsInteractive()
}
