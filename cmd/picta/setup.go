package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/picta/internal/adapter"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with your Pixabay API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := adapter.LoadConfig(opts.configPath)
			if err != nil {
				// A broken or missing explicit file is rewritten from defaults
				cfg = adapter.DefaultConfig()
			}
			if apiKey != "" {
				cfg.Provider.APIKey = apiKey
				return saveConfig(cmd.OutOrStdout(), cfg, opts.configPath)
			}
			return runSetupFlow(cmd, cfg, opts.configPath)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Pixabay API key (prompted for when omitted)")
	return cmd
}

// runSetupFlow prompts for an API key and saves it into cfg
func runSetupFlow(cmd *cobra.Command, cfg *adapter.Config, configPath string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to Picta!")
	fmt.Fprintln(out, "Get a free API key at https://pixabay.com/api/docs/")
	fmt.Fprintln(out)

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "Pixabay API key: ")
		key, err := readSecret(in, reader)
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		if key == "" {
			fmt.Fprintln(out, "API key cannot be empty. Please try again.")
			continue
		}
		cfg.Provider.APIKey = key
		break
	}

	return saveConfig(out, cfg, configPath)
}

// readSecret reads one line without echo when in is a terminal,
// otherwise from the buffered reader over in
func readSecret(in io.Reader, reader *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func saveConfig(out io.Writer, cfg *adapter.Config, configPath string) error {
	path, err := adapter.SaveConfig(cfg, configPath)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(out, "✓ Configuration saved to %s\n", path)
	return nil
}
