package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deplift/deplift/pkg/build"
	"github.com/deplift/deplift/pkg/config"
	"github.com/deplift/deplift/pkg/errors"
	"github.com/deplift/deplift/pkg/filesystem"
	"github.com/deplift/deplift/pkg/logging"
	"github.com/deplift/deplift/pkg/nestedstack"
	"github.com/deplift/deplift/pkg/style"
	"github.com/deplift/deplift/pkg/template"
)

func newGenerateCmd() *cobra.Command {
	var (
		projectDir   string
		templatePath string
		buildDir     string
		stackName    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate dependency layers and the patched template",
		Long: `Reads the project template and the build output, builds one layer
folder per qualifying function, writes the nested stack template into the
build directory and writes a patched copy of the project template that
wires each function to its layer.

Functions qualify when they are archive-packaged, built in this session,
run a supported runtime (python, nodejs or java families) and have a
dependency directory recorded in the build graph. Everything else is
skipped and the template is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.generate")

			cfg, err := config.Load(projectDir)
			if err != nil {
				return err
			}
			if templatePath != "" {
				cfg.Template = templatePath
			}
			if buildDir != "" {
				cfg.BuildDir = buildDir
			}
			if stackName != "" {
				cfg.StackName = stackName
			}
			if cfg.StackName == "" {
				return errors.New(errors.ErrInvalidInput,
					"stack name is required (--stack-name or stack.name in deplift.toml)")
			}

			fsys := filesystem.NewOS()

			tpl, err := template.Load(fsys, cfg.Template)
			if err != nil {
				return err
			}

			buildResult, err := build.LoadResult(fsys, cfg.BuildDir)
			if err != nil {
				return err
			}

			manager := nestedstack.NewManager(fsys, cfg.StackName, cfg.BuildDir, cfg.Template, tpl, buildResult)
			patched, err := manager.Generate()
			if err != nil {
				return err
			}

			outPath := filepath.Join(cfg.BuildDir, cfg.OutputTemplate)
			if err := template.Move(fsys, cfg.Template, outPath, patched); err != nil {
				return err
			}

			logger.Info().
				Str("template", outPath).
				Int("layers", manager.Report().Added()).
				Msg("Patched template written")

			fmt.Fprintln(cmd.OutOrStdout(), style.RenderReport(manager.Report()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectDir, "project-dir", "p", ".", "Project directory containing the template and config")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template location (default from config)")
	cmd.Flags().StringVarP(&buildDir, "build-dir", "b", "", "Build directory (default from config)")
	cmd.Flags().StringVarP(&stackName, "stack-name", "s", "", "Stack name used to derive layer names")

	return cmd
}
