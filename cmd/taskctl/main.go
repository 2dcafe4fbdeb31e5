package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/0zturkSamet/task-manager/client"
)

var apiClient *client.Client

func main() {
	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Command line client for the task manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}
	root.PersistentFlags().String("server", "", "API base URL (overrides config)")
	_ = viper.BindPFlag("server", root.PersistentFlags().Lookup("server"))

	root.AddCommand(
		loginCmd(),
		registerCmd(),
		logoutCmd(),
		whoamiCmd(),
		projectsCmd(),
		tasksCmd(),
		boardCmd(),
		notificationsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func setup() error {
	configDir, err := configDir()
	if err != nil {
		return err
	}

	viper.SetConfigName("taskctl")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix("taskctl")
	viper.AutomaticEnv()
	viper.SetDefault("server", "http://localhost:8080")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	session, err := client.OpenSession(filepath.Join(configDir, "session.json"))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	apiClient = client.New(viper.GetString("server"), nil, session)
	return nil
}

func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "taskctl"), nil
}

// renderError maps the client error taxonomy to a human exit message.
func renderError(err error) string {
	var connErr *client.ConnectivityError
	if errors.As(err, &connErr) {
		return fmt.Sprintf("cannot reach the server: %v (check --server or retry)", connErr.Err)
	}
	if errors.Is(err, client.ErrUnauthenticated) {
		return "not signed in: run `taskctl login`"
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 403:
			return "permission denied: " + apiErr.Message
		case 404:
			return "not found: " + apiErr.Message
		default:
			return apiErr.Message
		}
	}
	return err.Error()
}
