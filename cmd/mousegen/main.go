// Command mousegen renders a directory of source cursor SVGs into
// Windows CUR/ANI, X11 Xcursor, raw PNG, and macOS .icns cursor themes
// (spec §6's CLI surface).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"cogentcore.org/mousegen/internal/concurrency"
	"cogentcore.org/mousegen/internal/config"
	"cogentcore.org/mousegen/internal/pipeline"
	"cogentcore.org/mousegen/internal/render"
	"cogentcore.org/mousegen/internal/renderer"
	"cogentcore.org/mousegen/internal/settings"
	"cogentcore.org/mousegen/internal/svgxform"
	"cogentcore.org/mousegen/internal/watch"
)

// Exit codes per spec §6.
const (
	exitOK          = 0
	exitArgError    = 1
	exitConfigError = 2
	exitIOError     = 3
	exitInternal    = 4
)

type flags struct {
	windowsCursors bool
	linuxCursors   bool
	mousecapeTheme bool

	pointerShadow    bool
	thinStroke       string
	thinStrokeSet    bool
	strokeWidth      string
	allVariants      bool
	sizeScheme       string
	targetSize       int
	themeFilter      string
	cursorFilter     string
	updateExisting   bool
	wholePixelStroke bool
	expandFill       string
	expandFillSet    bool

	settingsPath string
	watch        bool
	debugLabels  bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var f flags

	root := &cobra.Command{
		Use:           "mousegen [project-dir] [build-dir]",
		Short:         "Render cursor themes from SVG source trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(2),
	}
	rc := root.Flags()
	rc.BoolVar(&f.windowsCursors, "windows-cursors", false, "emit Windows .cur/.ani output")
	rc.BoolVar(&f.linuxCursors, "linux-cursors", false, "emit X11 Xcursor output")
	rc.BoolVar(&f.mousecapeTheme, "mousecape-theme", false, "emit a macOS .icns theme alongside PNG bitmaps")
	rc.BoolVar(&f.pointerShadow, "pointer-shadow", false, "attach a fixed post-raster drop shadow to the stroke config (no backend here draws it)")
	rc.StringVar(&f.thinStroke, "thin-stroke", "", "thin outlines to the given width (source units); bare flag means \"auto\"; has no effect, since no base stroke width is configured")
	rc.Lookup("thin-stroke").NoOptDefVal = "auto"
	rc.StringVar(&f.strokeWidth, "stroke-width", "", "set outline width as W or W:label; has no effect, since no base stroke width is configured")
	rc.BoolVar(&f.allVariants, "all-variants", false, "accepted and ignored: only the default size scheme is built")
	rc.StringVarP(&f.sizeScheme, "size-scheme", "s", "", "accepted and ignored: only the default size scheme is built")
	rc.IntVarP(&f.targetSize, "target-size", "r", 0, "render only the given pixel size")
	rc.StringVarP(&f.themeFilter, "theme", "t", "", "build only themes matching this name")
	rc.StringVarP(&f.cursorFilter, "cursor", "f", "", "accepted and ignored: every cursor is rendered")
	rc.BoolVar(&f.updateExisting, "update-existing", false, "accepted and ignored: every cursor is rendered again")
	rc.BoolVar(&f.wholePixelStroke, "whole-pixel-stroke", false, "round the rendered stroke width to a whole pixel; has no effect, since no base stroke width is configured")
	rc.StringVar(&f.expandFill, "expand-fill", "", "convert stroke thinning into fill expansion up to this limit; has no effect, since no base stroke width is configured")
	rc.Lookup("expand-fill").NoOptDefVal = "auto"
	rc.StringVar(&f.settingsPath, "settings", "mousegen.toml", "path to an optional settings override file")
	rc.BoolVar(&f.watch, "watch", false, "rebuild whenever a source SVG or config file changes")
	rc.BoolVar(&f.debugLabels, "debug-labels", false, "use the size-label test backend instead of the SVG rasterizer")
	_ = rc.MarkHidden("debug-labels")

	exitCode := exitOK
	root.RunE = func(cmd *cobra.Command, cmdArgs []string) error {
		f.thinStrokeSet = cmd.Flags().Changed("thin-stroke")
		f.expandFillSet = cmd.Flags().Changed("expand-fill")

		projectDir := "."
		buildDir := "build"
		if len(cmdArgs) > 0 {
			projectDir = cmdArgs[0]
		}
		if len(cmdArgs) > 1 {
			buildDir = cmdArgs[1]
		}

		if f.watch {
			code, err := watchLoop(projectDir, buildDir, f)
			exitCode = code
			return err
		}

		code, err := mousegen(projectDir, buildDir, f)
		exitCode = code
		return err
	}
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mousegen:", err)
		if exitCode == exitOK {
			exitCode = exitArgError
		}
	}
	return exitCode
}

func mousegen(projectDir, buildDir string, f flags) (int, error) {
	renderPath := filepath.Join(projectDir, "render.json")
	themes, err := config.LoadRenderConfigs(renderPath)
	if err != nil {
		return exitConfigError, err
	}

	animPath := filepath.Join(projectDir, "animations.json")
	var animations map[string]config.Animation
	if _, statErr := os.Stat(animPath); statErr == nil {
		animations, err = config.LoadAnimations(animPath)
		if err != nil {
			return exitConfigError, err
		}
	} else {
		animations = map[string]config.Animation{}
	}

	s, err := settings.Load(f.settingsPath)
	if err != nil {
		return exitConfigError, fmt.Errorf("settings: %w", err)
	}
	if s.AnimRateGain != 1 && s.AnimRateGain > 0 {
		for name, a := range animations {
			a.FrameRate *= s.AnimRateGain
			animations[name] = a
		}
	}

	stroke, err := buildStrokeConfig(f)
	if err != nil {
		return exitArgError, err
	}

	modes := pipeline.Modes{
		Windows: f.windowsCursors,
		Xcursor: f.linuxCursors,
		Bitmaps: true,
		Mac:     f.mousecapeTheme,
	}
	sched := concurrency.New(s)
	p := pipeline.New(backendFor(f), sched)

	for name, theme := range themes {
		if f.themeFilter != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(f.themeFilter)) {
			continue
		}

		var names *config.NameMap
		namesPath := filepath.Join(projectDir, name+"-names.json")
		if _, statErr := os.Stat(namesPath); statErr == nil {
			names, err = config.LoadNameMap(namesPath)
			if err != nil {
				return exitConfigError, err
			}
		}

		resolutions := theme.Resolutions
		if f.targetSize > 0 {
			resolutions = []int{f.targetSize}
		}
		if len(resolutions) == 0 {
			resolutions = []int{32}
		}

		scheme := config.SizeScheme{Name: "default", CanvasFactor: 1, NominalFactor: 1}

		spec := pipeline.VariantSpec{
			Theme:         theme,
			Scheme:        scheme,
			Resolutions:   resolutions,
			Animations:    animations,
			Names:         names,
			AllCursors:    len(theme.Cursors) == 0,
			Stroke:        stroke,
			OutDir:        resolveOutDir(buildDir, theme, name),
			CropToContent: s.CropToContent,
		}

		if err := p.Build(spec, modes); err != nil {
			return exitInternal, fmt.Errorf("building theme %s: %w", name, err)
		}
	}

	if err := sched.Finalize(); err != nil {
		return exitInternal, err
	}

	return exitOK, nil
}

func resolveOutDir(buildDir string, theme config.ThemeConfig, name string) string {
	if theme.Out != "" {
		return filepath.Join(buildDir, theme.Out)
	}
	return filepath.Join(buildDir, name)
}

// buildStrokeConfig translates the stroke-related flags into an
// svgxform.Config, per spec §6's --thin-stroke/--stroke-width/
// --whole-pixel-stroke/--expand-fill surface.
func buildStrokeConfig(f flags) (svgxform.Config, error) {
	cfg := svgxform.Config{WholePixelStroke: f.wholePixelStroke}

	if f.strokeWidth != "" {
		w, _, _ := strings.Cut(f.strokeWidth, ":")
		val, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid --stroke-width %q: %w", f.strokeWidth, err)
		}
		cfg.StrokeWidth = val
	}

	if f.thinStrokeSet {
		if f.thinStroke == "" || f.thinStroke == "auto" {
			cfg.StrokeWidth = 0
		} else {
			val, err := strconv.ParseFloat(f.thinStroke, 64)
			if err != nil {
				return cfg, fmt.Errorf("invalid --thin-stroke %q: %w", f.thinStroke, err)
			}
			cfg.StrokeWidth = val
		}
	}

	if f.expandFillSet {
		if f.expandFill == "" || f.expandFill == "auto" {
			cfg.ExpandFillLimit = 1
		} else {
			val, err := strconv.ParseFloat(f.expandFill, 64)
			if err != nil {
				return cfg, fmt.Errorf("invalid --expand-fill %q: %w", f.expandFill, err)
			}
			cfg.ExpandFillLimit = val
		}
	}

	if f.pointerShadow {
		cfg.Shadow = &svgxform.Shadow{Blur: 2, DX: 1, DY: 1, Opacity: 0.5, Color: "#000000"}
		cfg.ShadowAsFilter = false
	}

	return cfg, nil
}

// backendFor selects the RendererBackend: the real SVG rasterizer, or
// (hidden, test-only) the deterministic size-label backend.
func backendFor(f flags) renderer.Backend {
	if f.debugLabels {
		return render.NewLabelBackend()
	}
	return renderer.NewSVGBackend()
}

// watchLoop runs mousegen once immediately, then again every time a
// source SVG or config file under projectDir changes, until
// interrupted.
func watchLoop(projectDir, buildDir string, f flags) (int, error) {
	var lastCode int
	var lastErr error

	w, err := watch.Start(projectDir, nil, func() error {
		lastCode, lastErr = mousegen(projectDir, buildDir, f)
		return lastErr
	})
	if err != nil {
		return exitIOError, fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	if lastCode == exitOK {
		return exitOK, nil
	}
	return lastCode, lastErr
}
