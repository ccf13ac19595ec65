package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rohankatakam/enhance-commits/internal/config"
)

const defaultConfigPath = ".enhance-commits/config.yaml"

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactive setup wizard (with OS keychain support)",
	Long: `Walk through provider, model and credential setup.

API keys and the GitHub token are stored in the OS keychain, never in the
config file. In CI, set GEMINI_API_KEY, OPENAI_API_KEY and GITHUB_TOKEN
instead.`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = defaultConfigPath
	}

	w := &configureWizard{
		in:  bufio.NewReader(os.Stdin),
		out: cmd.OutOrStdout(),
		km:  config.NewKeyringManager(),
	}
	w.readSecret = w.readLine
	if term.IsTerminal(int(os.Stdin.Fd())) {
		w.readSecret = func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(w.out)
			return string(b), err
		}
	}

	return w.run(cfg, path)
}

// configureWizard drives the interactive setup. Input and secret reading are
// injectable so the dialogue can be scripted.
type configureWizard struct {
	in         *bufio.Reader
	out        io.Writer
	km         *config.KeyringManager
	readSecret func() (string, error)
}

func (w *configureWizard) readLine() (string, error) {
	line, err := w.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (w *configureWizard) ask(prompt string) (string, error) {
	fmt.Fprint(w.out, prompt)
	return w.readLine()
}

func (w *configureWizard) run(c *config.Config, path string) error {
	fmt.Fprintln(w.out, "enhance-commits configuration")
	fmt.Fprintln(w.out, strings.Repeat("─", 30))
	fmt.Fprintln(w.out)

	keychain := w.km.IsAvailable()
	if !keychain {
		fmt.Fprintln(w.out, "OS keychain not available; secrets will not be stored.")
		fmt.Fprintln(w.out, "Export them as environment variables instead.")
		fmt.Fprintln(w.out)
	}

	// Step 1: provider
	fmt.Fprintln(w.out, "Step 1/4: Provider")
	fmt.Fprintln(w.out, "  1. gemini")
	fmt.Fprintln(w.out, "  2. openai")
	fmt.Fprintln(w.out, "  3. compatible (OpenAI-style endpoint)")
	fmt.Fprintf(w.out, "Current: %s\n", c.LLM.Provider)
	answer, err := w.ask("Select provider (1-3) or press Enter to keep current: ")
	if err != nil {
		return err
	}
	switch answer {
	case "1":
		c.LLM.Provider = config.ProviderGemini
	case "2":
		c.LLM.Provider = config.ProviderOpenAI
	case "3":
		c.LLM.Provider = config.ProviderCompatible
	}
	if c.LLM.Provider == config.ProviderCompatible {
		url, err := w.ask(fmt.Sprintf("Base URL [%s]: ", c.LLM.BaseURL))
		if err != nil {
			return err
		}
		if url != "" {
			c.LLM.BaseURL = url
		}
	}
	fmt.Fprintln(w.out)

	// Step 2: API key
	fmt.Fprintln(w.out, "Step 2/4: API key")
	if existing := c.APIKey(); existing != "" {
		fmt.Fprintf(w.out, "Current: %s\n", config.MaskSecret(existing))
	}
	if err := w.storeSecret("API key (Enter to skip, - to remove): ", config.ItemForProvider(c.LLM.Provider), keychain); err != nil {
		return err
	}
	fmt.Fprintln(w.out)

	// Step 3: GitHub token
	fmt.Fprintln(w.out, "Step 3/4: GitHub token (needed for PR descriptions)")
	if c.GitHub.Token != "" {
		fmt.Fprintf(w.out, "Current: %s\n", config.MaskSecret(c.GitHub.Token))
	}
	if err := w.storeSecret("GitHub token (Enter to skip, - to remove): ", config.ItemGitHubToken, keychain); err != nil {
		return err
	}
	fmt.Fprintln(w.out)

	// Step 4: model
	fmt.Fprintln(w.out, "Step 4/4: Model")
	fmt.Fprintf(w.out, "Current: %s\n", c.ModelName())
	model, err := w.ask("Model name or press Enter to keep current: ")
	if err != nil {
		return err
	}
	if model != "" {
		c.LLM.Model = model
	}
	fmt.Fprintln(w.out)

	if err := c.Save(path); err != nil {
		return err
	}
	abs, _ := filepath.Abs(path)
	fmt.Fprintf(w.out, "Configuration saved to %s\n", abs)
	return nil
}

func (w *configureWizard) storeSecret(prompt, item string, keychain bool) error {
	fmt.Fprint(w.out, prompt)
	secret, err := w.readSecret()
	if err != nil {
		return fmt.Errorf("read secret: %w", err)
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		fmt.Fprintln(w.out, "Skipped")
		return nil
	}
	if !keychain {
		fmt.Fprintln(w.out, "Not stored: keychain unavailable")
		return nil
	}
	if secret == "-" {
		if err := w.km.Delete(item); err != nil {
			return err
		}
		fmt.Fprintln(w.out, "Removed from the OS keychain")
		return nil
	}
	if err := w.km.Set(item, secret); err != nil {
		return err
	}
	fmt.Fprintf(w.out, "Saved %s to the OS keychain\n", config.MaskSecret(secret))
	return nil
}
