package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treectx/pkg/compile"
	"treectx/pkg/config"
	"treectx/pkg/exclude"
	"treectx/pkg/selection"
	"treectx/pkg/tokens"
	"treectx/pkg/tree"
)

// app wires the configuration snapshot, the persisted selection, and the
// tree components together for one command invocation.
type app struct {
	cfg    config.Config
	root   string
	policy *exclude.Policy
	set    *selection.Set
	store  *selection.Store

	materializer *tree.Materializer
	toggler      *tree.Toggler
}

// newApp resolves the project root, loads configuration and the persisted
// selection, and subscribes the store so every mutation is saved.
func newApp() (*app, error) {
	root, err := filepath.Abs(flagRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve project root %s: %w", flagRoot, err)
	}

	cfg, err := config.Load(root, flagConfig)
	if err != nil {
		return nil, err
	}

	policy := exclude.NewPolicy(cfg.ExclusionRules())

	selectionPath := cfg.SelectionFile
	if !filepath.IsAbs(selectionPath) {
		selectionPath = filepath.Join(root, selectionPath)
	}
	store := selection.NewStore(selectionPath, logger)
	set, err := store.Load()
	if err != nil {
		return nil, err
	}
	set.Subscribe(store.AutoSave(set))

	return &app{
		cfg:          cfg,
		root:         selection.Normalize(root),
		policy:       policy,
		set:          set,
		store:        store,
		materializer: tree.NewMaterializer(root, policy, set, logger),
		toggler:      tree.NewToggler(root, policy, set, logger),
	}, nil
}

// relToRoot returns the forward-slash path of abs relative to the project
// root, falling back to the absolute path.
func (a *app) relToRoot(abs string) string {
	rel, err := filepath.Rel(filepath.FromSlash(a.root), filepath.FromSlash(abs))
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// gatherSelected flattens the selection into serializer inputs, applying the
// exclusion policy so excluded files never reach the document.
func (a *app) gatherSelected() []compile.SelectedFile {
	entries := a.materializer.CheckedFiles()
	files := make([]compile.SelectedFile, 0, len(entries))
	for _, entry := range entries {
		rel := a.relToRoot(entry.AbsolutePath)
		if a.policy.IsExcluded(rel, entry.Name) {
			logger.Debug("Dropping excluded file from compile", zap.String("path", entry.AbsolutePath))
			continue
		}
		files = append(files, compile.SelectedFile{AbsolutePath: entry.AbsolutePath})
	}
	return files
}

// compileContext serializes the current selection and delivers the document
// to the output file and, optionally, the clipboard. An empty selection is a
// user-visible warning, not an error, and nothing is written.
func (a *app) compileContext(cmd *cobra.Command, outputOverride string, copyToClipboard bool) error {
	files := a.gatherSelected()

	serializer := compile.NewSerializer(logger)
	doc, err := serializer.Serialize(cmd.Context(), a.root, files)
	if err != nil {
		if errors.Is(err, compile.ErrEmptySelection) {
			logger.Warn("Nothing to serialize: no files selected")
			fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to serialize: no files are selected.")
			return nil
		}
		return fmt.Errorf("serialize context: %w", err)
	}

	outputPath := outputOverride
	if outputPath == "" {
		outputPath = a.cfg.OutputFile
	}
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(filepath.FromSlash(a.root), outputPath)
	}

	if err := compile.WriteDocument(outputPath, doc, logger); err != nil {
		return err
	}

	if copyToClipboard {
		if err := clipboard.WriteAll(doc.Text); err != nil {
			logger.Warn("Failed to copy context document to clipboard", zap.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: could not copy to clipboard.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Copied context document to clipboard.")
		}
	}

	tokenNote := ""
	if counter, counterErr := tokens.NewCounter(a.cfg.TokenModel); counterErr == nil {
		tokenNote = fmt.Sprintf(", ~%d %s tokens", counter.Count(doc.Text), counter.Name())
	} else {
		logger.Debug("Token counting unavailable", zap.Error(counterErr))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d files%s)\n", outputPath, doc.FileCount, tokenNote)
	return nil
}
