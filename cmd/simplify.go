package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	app "sam-annotator/internal/application"
	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/infrastructure/storage"
	"sam-annotator/internal/logger"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [dir]",
	Short: "Drop redundant polygon points in every annotation file of a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		dir := cfg.Storage.OutputDir
		if len(args) > 0 {
			dir = args[0]
		}
		return runSimplify(dir)
	},
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
}

func runSimplify(dir string) error {
	files, err := storage.ListAnnotationFiles(dir)
	if err != nil {
		return err
	}

	var before, after int
	for _, path := range files {
		doc, err := storage.ReadAnnotationFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		b, a := simplifyDocument(doc)
		if b == a {
			continue
		}
		if err := storage.WriteAnnotationFile(path, doc); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Logger.Info("annotation simplified", zap.String("file", path), zap.Int("before", b), zap.Int("after", a))
		before += b
		after += a
	}

	logger.Logger.Info("simplify finished",
		zap.Int("files", len(files)),
		zap.Int("points_before", before),
		zap.Int("points_after", after),
	)
	return nil
}

// simplifyDocument прореживает полигоны документа на месте и возвращает число точек до и после.
func simplifyDocument(doc *entity.AnnotationDocument) (int, int) {
	var before, after int
	for _, s := range doc.Shapes {
		if s.Type != entity.ShapePolygon || len(s.Points) == 0 {
			continue
		}
		before += len(s.Points)
		s.Points = app.Simplify(s.Points)
		after += len(s.Points)
	}
	return before, after
}
