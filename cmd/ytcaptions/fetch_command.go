package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ytcaptions/internal/config"
	"ytcaptions/internal/fileutil"
	"ytcaptions/internal/formatter"
	"ytcaptions/internal/language"
	"ytcaptions/internal/services"
	"ytcaptions/internal/textutil"
	"ytcaptions/internal/transcript"
)

type fetchOptions struct {
	session                sessionFlags
	languages              []string
	excludeGenerated       bool
	excludeManuallyCreated bool
	translate              string
	preserveFormatting     bool
	format                 string
	continueAfterError     bool
	outputDir              string
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch <video>...",
		Short: "Fetch and print transcripts",
		Long: "Fetch the transcript of each video, picking the first available track in the\n" +
			"language preference order, and print it in the requested format.",
		Args: func(cmd *cobra.Command, args []string) error {
			return requireVideos(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, ctx, opts, videoIDs(args))
		},
	}

	opts.session.register(cmd)
	cmd.Flags().StringSliceVarP(&opts.languages, "languages", "l", nil, "Language codes in descending priority (repeatable or comma separated)")
	cmd.Flags().BoolVar(&opts.excludeGenerated, "exclude-generated", false, "Only use manually created transcripts")
	cmd.Flags().BoolVar(&opts.excludeManuallyCreated, "exclude-manually-created", false, "Only use generated transcripts")
	cmd.Flags().StringVar(&opts.translate, "translate", "", "Translate the transcript into this language code")
	cmd.Flags().BoolVar(&opts.preserveFormatting, "preserve-formatting", false, "Keep basic formatting tags such as <b> and <i>")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: "+strings.Join(formatter.Names, ", "))
	cmd.Flags().BoolVar(&opts.continueAfterError, "continue-after-error", false, "Skip videos whose transcript cannot be retrieved")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Write each transcript to <dir>/<video>.<language>.<ext> instead of stdout")
	return cmd
}

func runFetch(cmd *cobra.Command, ctx *commandContext, opts fetchOptions, ids []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	query := transcript.Query{
		Languages:          cfg.Transcripts.Languages,
		TranslateTo:        language.Canonical(strings.TrimSpace(opts.translate)),
		PreserveFormatting: cfg.Transcripts.PreserveFormatting,
	}
	if flags.Changed("languages") {
		query.Languages = language.NormalizeList(opts.languages)
	}
	if flags.Changed("preserve-formatting") {
		query.PreserveFormatting = opts.preserveFormatting
	}

	excludeGenerated := cfg.Transcripts.ExcludeGenerated
	if flags.Changed("exclude-generated") {
		excludeGenerated = opts.excludeGenerated
	}
	excludeManual := cfg.Transcripts.ExcludeManuallyCreated
	if flags.Changed("exclude-manually-created") {
		excludeManual = opts.excludeManuallyCreated
	}
	switch {
	case excludeGenerated && excludeManual:
		return services.Wrap(services.ErrValidation, "fetch", "origin", "excluding both generated and manually created transcripts leaves nothing to fetch", nil)
	case excludeGenerated:
		query.Origin = transcript.OriginManual
	case excludeManual:
		query.Origin = transcript.OriginGenerated
	}

	format := cfg.Transcripts.Format
	if flags.Changed("format") {
		format = opts.format
	}
	out, err := formatter.New(format)
	if err != nil {
		return services.Wrap(services.ErrValidation, "fetch", "format", "", err)
	}

	continueAfterError := cfg.Transcripts.ContinueAfterError
	if flags.Changed("continue-after-error") {
		continueAfterError = opts.continueAfterError
	}

	client, err := ctx.newClient(cmd.Context(), opts.session)
	if err != nil {
		return err
	}

	batch, batchErr := client.GetBatch(cmd.Context(), ids, query, transcript.BatchOptions{ContinueOnError: continueAfterError})
	if err := writeResults(cmd, out, format, opts.outputDir, batch.Results); err != nil {
		return err
	}
	if batchErr != nil {
		var terr *transcript.Error
		if errors.As(batchErr, &terr) {
			return classifyLookupError(terr.VideoID, batchErr)
		}
		return batchErr
	}
	if len(batch.Unretrievable) > 0 {
		reportFailures(cmd, batch.Unretrievable)
		return services.Wrap(services.ErrNotFound, "fetch", "", fmt.Sprintf("%d of %d transcripts could not be retrieved", len(batch.Unretrievable), len(ids)), nil)
	}
	return nil
}

func writeResults(cmd *cobra.Command, out formatter.Formatter, format, outputDir string, results []transcript.Result) error {
	if len(results) == 0 {
		return nil
	}
	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		if err := out.Format(cmd.OutOrStdout(), results); err != nil {
			return fmt.Errorf("write transcripts: %w", err)
		}
		return nil
	}

	dir, err := config.ExpandPath(dir)
	if err != nil {
		return services.Wrap(services.ErrValidation, "fetch", "output dir", "", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}
	for _, r := range results {
		path := filepath.Join(dir, textutil.TranscriptFileName(r.VideoID, r.Handle.LanguageCode(), formatter.Extension(format)))
		err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return out.Format(w, []transcript.Result{r})
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func reportFailures(cmd *cobra.Command, failures []transcript.Failure) {
	errOut := cmd.ErrOrStderr()
	colorize := shouldColorize(errOut)
	for _, line := range renderSectionHeader("Unretrievable transcripts", colorize) {
		fmt.Fprintln(errOut, line)
	}
	for _, f := range failures {
		fmt.Fprintln(errOut, renderStatusLine(f.VideoID, statusError, describeFailure(f.Err), colorize))
	}
}
