package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cadet/cmd/cadet/chat"
	"cadet/cmd/cadet/ui"
	"cadet/internal/logging"
	"cadet/internal/textfile"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	inputFile  string
	jsonOutput bool
	imageOut   string
	copyPrompt bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Simplify a technical paragraph",
	Long: `Sends the text to the gateway's translate action and prints the simplified
explanation, the procedure steps and the glossary.

The text is taken from the arguments, from --file, or from standard input.`,
	RunE: runTranslate,
}

var visualCmd = &cobra.Command{
	Use:   "visual [text...]",
	Short: "Generate an explanatory illustration",
	Long: `Sends the text to the gateway's visual_explanation action and writes the
returned image to --out (default: a timestamped file under client.image_dir).`,
	RunE: runVisual,
}

var infographicCmd = &cobra.Command{
	Use:   "infographic [text...]",
	Short: "Generate a prompt for infographic tools",
	Long: `Sends the text to the gateway's infographic_prompt action and prints the
prompt. Use --copy to also place it on the clipboard.`,
	RunE: runInfographic,
}

func init() {
	for _, c := range []*cobra.Command{translateCmd, visualCmd, infographicCmd} {
		c.Flags().StringVarP(&inputFile, "file", "f", "", "Read the text from a plain-text file (.txt, .md)")
	}
	translateCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw JSON result")
	visualCmd.Flags().StringVarP(&imageOut, "out", "o", "", "Output image path")
	infographicCmd.Flags().BoolVar(&copyPrompt, "copy", false, "Copy the prompt to the clipboard")
}

// errNoInput is returned when no text was supplied.
var errNoInput = errors.New("no input text: pass it as arguments, with --file, or on stdin")

// readInput resolves the action text from args, --file or stdin.
func readInput(args []string, stdin io.Reader, stdinIsTerminal bool) (string, error) {
	var text string
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case inputFile != "":
		if _, err := textfile.Check(inputFile); err != nil {
			return "", err
		}
		t, err := textfile.Read(inputFile)
		if err != nil {
			return "", err
		}
		text = t
	case !stdinIsTerminal:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		t, err := textfile.Decode(data)
		if err != nil {
			return "", err
		}
		text = t
	}

	if strings.TrimSpace(text) == "" {
		return "", errNoInput
	}
	return text, nil
}

func commandInput(cmd *cobra.Command, args []string) (string, error) {
	return readInput(args, cmd.InOrStdin(), term.IsTerminal(int(os.Stdin.Fd())))
}

func runTranslate(cmd *cobra.Command, args []string) error {
	text, err := commandInput(cmd, args)
	if err != nil {
		return err
	}

	log := logging.Get(logger, logging.CategoryCLI)
	log.Debug("translate", zap.Int("text_len", len(text)))

	res, err := newClient().Translate(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("translate failed: %w", err)
	}
	if res.HasError() {
		return errors.New(res.Error)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	md := ui.TranslationMarkdown(res)
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r, _ := ui.NewRenderer(ui.DetectTheme(), 80)
		md = ui.RenderMarkdown(r, md)
	}
	_, err = fmt.Fprint(out, md)
	return err
}

func runVisual(cmd *cobra.Command, args []string) error {
	text, err := commandInput(cmd, args)
	if err != nil {
		return err
	}

	img, err := newClient().VisualExplanation(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("visual explanation failed: %w", err)
	}
	if img == nil {
		return errors.New("the provider returned no image")
	}

	path := imageOut
	if path == "" {
		path, err = chat.SaveImage(cfg.Client.ImageDir, img, time.Now())
	} else {
		err = os.WriteFile(path, img.Data, 0644)
	}
	if err != nil {
		return err
	}

	logging.Get(logger, logging.CategoryCLI).Info("image saved",
		zap.String("path", path), zap.String("mime", img.MIMEType), zap.Int("bytes", len(img.Data)))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

func runInfographic(cmd *cobra.Command, args []string) error {
	text, err := commandInput(cmd, args)
	if err != nil {
		return err
	}

	prompt, err := newClient().InfographicPrompt(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("infographic prompt failed: %w", err)
	}
	if strings.TrimSpace(prompt) == "" {
		return errors.New("the provider returned an empty prompt")
	}

	if copyPrompt {
		if err := clipboard.WriteAll(prompt); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copiado al portapapeles.")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
	return err
}
