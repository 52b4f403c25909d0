package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"lingomap/pkg/audio"
	"lingomap/pkg/catalog"
	"lingomap/pkg/model"
)

func newSayCommand(ctx *commandContext) *cobra.Command {
	var dialectName string
	var provider string
	var order []string
	var outPath string
	var play bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "say <language-id> [text]",
		Short: "Synthesize a voice sample through the provider chain",
		Long:  "Synthesize text, or the dialect's sample text when none is given, and save or play the audio.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !play && outPath == "" && !asJSON {
				return errors.New("nothing to do: pass --out, --play or --json")
			}
			_, cat, err := ctx.ensure()
			if err != nil {
				return err
			}
			chain, err := ctx.chain(order)
			if err != nil {
				return err
			}

			req := model.VoiceRequest{
				LanguageID:        args[0],
				DialectName:       dialectName,
				RequestedProvider: model.ProviderKind(provider),
				Text:              strings.Join(args[1:], " "),
			}
			if strings.TrimSpace(req.Text) == "" {
				if rec, ok := cat.ByID(req.LanguageID); ok {
					req.Text = catalog.SampleText(rec, dialectName)
				}
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := chain.Speak(runCtx, req)
			if err != nil {
				return err
			}
			if asJSON {
				if err := writeJSON(cmd, res); err != nil {
					return err
				}
			}
			if !res.Succeeded {
				return errors.New(res.ErrorMessage)
			}

			clip, ok := chain.Store().Get(res.AudioHandle)
			if !ok {
				return fmt.Errorf("audio %s expired", res.AudioHandle)
			}
			if !asJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "%s via %s (%s, %s)\n", res.Locale, clip.Provider, clip.Format, res.Duration)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, clip.Data, 0o644); err != nil {
					return fmt.Errorf("write audio: %w", err)
				}
			}
			if play {
				done := make(chan struct{})
				player := audio.NewPlayer()
				if err := player.Play(clip.Data, func() { close(done) }); err != nil {
					return fmt.Errorf("play audio: %w", err)
				}
				select {
				case <-done:
				case <-runCtx.Done():
					player.Stop()
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "", "Dialect variant name")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "Try this provider kind or name first")
	cmd.Flags().StringSliceVar(&order, "order", nil, "Provider order (overrides voice.order)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the audio to this file")
	cmd.Flags().BoolVar(&play, "play", false, "Play the audio on the default output device")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the voice result as JSON")
	return cmd
}
