package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reddycharan348/Gate-Exam/internal/analysis"
	"github.com/reddycharan348/Gate-Exam/internal/app"
	"github.com/reddycharan348/Gate-Exam/internal/attempt"
	"github.com/reddycharan348/Gate-Exam/internal/paper"
	"github.com/reddycharan348/Gate-Exam/internal/screens"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	svc := &screens.Services{
		Events:   eventRepo,
		Recorder: attempt.NewRecorder(eventRepo),
		Defaults: appConfig.Exam,
	}

	provider, err := newProvider(ctx, eventRepo)
	if err != nil {
		log.Warn().Err(err).Msg("LLM provider not configured")
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set GATE_EXAM_LLM_GEMINI_API_KEY (or another provider key), or run with --offline.")
		return err
	}
	svc.Assembler = paper.New(provider, paper.DefaultConfig())
	svc.Analyzer = analysis.New(provider, analysis.DefaultConfig())

	log.Info().
		Str("provider", appConfig.LLM.Provider).
		Str("config", appConfig.File).
		Msg("starting tui")

	return app.Run(ctx, app.Options{Services: svc})
}
