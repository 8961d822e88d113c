package cmd

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/planetize/internal/accessory"
	"github.com/kiesman99/planetize/internal/export"
	"github.com/kiesman99/planetize/internal/planetizer"
	"github.com/kiesman99/planetize/internal/scene"
	"github.com/kiesman99/planetize/internal/source"
	"github.com/kiesman99/planetize/pkg/texture"
)

var (
	cfgFile string
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planetize [photo]",
	Short: "Turn a photo into a seamless planet texture",
	Long: `planetize wraps a photo around a sphere.

The photo is center-cropped to a square, its subject becomes the front of
the planet and a mirrored, tinted copy becomes the back. The result is an
equirectangular texture twice as wide as it is tall, written as PNG unless
the output extension asks for another format.

Examples:
  # Texture at the default 1024px height, written to a file
  planetize -i cat.jpg -o cat-planet.png

  # Smaller texture on stdout, with its bump map next to it
  planetize cat.jpg --height 512 --bump cat-bump.png > cat-planet.png

  # Photo from the web
  planetize -i https://example.com/cat.jpg -o cat-planet.png

  # Also render a still of the planet with rings
  planetize -i cat.jpg -o cat-planet.png --snapshot --accessory rings

  # Start HTTP server
  planetize serve --port 8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("input") == "" && len(args) == 0 {
			return cmd.Help()
		}
		return runPlanetize(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.planetize.yaml)")
	rootCmd.PersistentFlags().Int("height", texture.DefaultHeight, "texture height in pixels, the width is twice this")
	rootCmd.PersistentFlags().String("filter", string(texture.FilterBiLinear), "resampling filter (nearest|bilinear|catmullrom|lanczos)")
	rootCmd.PersistentFlags().Int("max-side", source.DefaultMaxSide, "shrink the square crop to at most this side, 0 disables")
	rootCmd.PersistentFlags().Duration("delay", 0, "pause before synthesis starts")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")

	// Input and output
	rootCmd.Flags().StringP("input", "i", "", "photo to turn into a planet, a file or an http(s) URL")
	rootCmd.Flags().StringP("output", "o", "", "texture file (default: stdout)")
	rootCmd.Flags().String("bump", "", "also write the bump map to this file")
	rootCmd.Flags().Float64("contrast", texture.DefaultContrast, "bump map contrast")

	// Snapshot options
	rootCmd.Flags().String("snapshot", "", "also render a still of the planet to this file")
	rootCmd.Flags().Lookup("snapshot").NoOptDefVal = export.DefaultSnapshotName
	rootCmd.Flags().Int("snapshot-size", 1024, "snapshot side in pixels")
	rootCmd.Flags().String("accessory", "auto", "snapshot accessory (auto|none|rings|asteroid-belt|rocket|ufo|rings+rocket|belt+ufo)")
	rootCmd.Flags().Int64("seed", 0, "seed for the starfield and the accessory draw (default: current time)")
	rootCmd.Flags().Float64("spin", 0, "flick the planet by this horizontal drag in pixels before the snapshot")
	rootCmd.Flags().Int("frames", 0, "animation frames to run before the snapshot, at 60 per second")

	// HTTP options
	rootCmd.Flags().String("user-agent", source.DefaultUserAgent, "HTTP User-Agent header for photo URLs")

	for _, name := range []string{"height", "filter", "max-side", "delay", "log-level"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	for _, name := range []string{"input", "output", "bump", "contrast", "snapshot", "snapshot-size", "accessory", "seed", "spin", "frames", "user-agent"} {
		viper.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".planetize" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".planetize")
	}

	viper.SetEnvPrefix("planetize")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()

	setupLogging()
	if err == nil {
		slog.Info("using config file", "path", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		level = slog.LevelInfo
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	texture.SetLogger(l)
	planetizer.SetLogger(l)
}

// textureOptions builds the synthesis options from flags and config. The
// tuning knobs under "texture." are config-only.
func textureOptions() (texture.Options, error) {
	filter, err := texture.ParseFilter(viper.GetString("filter"))
	if err != nil {
		return texture.Options{}, err
	}
	opts := texture.Options{
		Height:       viper.GetInt("height"),
		Filter:       filter,
		DiscScale:    viper.GetFloat64("texture.disc-scale"),
		AnnulusInner: viper.GetFloat64("texture.annulus-inner"),
		BackTint:     viper.GetFloat64("texture.back-tint"),
		BackOpacity:  viper.GetFloat64("texture.back-opacity"),
		BandFade:     viper.GetFloat64("texture.band-fade"),
		PoleFade:     viper.GetFloat64("texture.pole-fade"),
		SeamFade:     viper.GetFloat64("texture.seam-fade"),
		WrapBlend:    viper.GetFloat64("texture.wrap-blend"),
	}
	return opts, opts.Validate()
}

func runPlanetize(cmd *cobra.Command, args []string) error {
	input := viper.GetString("input")
	if input == "" {
		input = args[0]
	}
	output := viper.GetString("output")
	if err := export.CheckStdout(output); err != nil {
		return err
	}

	opts, err := textureOptions()
	if err != nil {
		return err
	}

	// Parse the accessory before the expensive work
	acc, seed, err := snapshotAccessory()
	if err != nil {
		return err
	}

	crop, err := acquire(cmd.Context(), input)
	if err != nil {
		return err
	}

	p := planetizer.New(planetizer.Config{Texture: opts, Delay: viper.GetDuration("delay")})
	bumpPath := viper.GetString("bump")
	res, err := p.Run(cmd.Context(), planetizer.Request{
		Crop:         crop,
		Bump:         bumpPath != "",
		BumpContrast: viper.GetFloat64("contrast"),
	})
	if err != nil {
		return err
	}
	if res.Degenerate {
		slog.Warn("photo too small to sample its edge, using neutral gray")
	}

	if err := export.WriteEncoded(output, res.TexturePNG, res.Texture); err != nil {
		return err
	}
	if bumpPath != "" {
		if err := export.WriteEncoded(bumpPath, res.BumpPNG, res.Bump); err != nil {
			return err
		}
	}

	if path := viper.GetString("snapshot"); path != "" {
		sc := scene.New()
		sc.SetTexture(res.Texture, res.Bump)
		sc.Accessory = acc
		sc.Seed = seed
		if err := snapshotView(sc.Orbit); err != nil {
			return err
		}

		side := viper.GetInt("snapshot-size")
		img, err := sc.Snapshot(side, side)
		if err != nil {
			return fmt.Errorf("render snapshot: %w", err)
		}
		if err := export.WriteImage(path, img); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", path, "accessory", acc, "seed", seed)
	}
	return nil
}

// snapshotView tilts the camera and runs the requested flick and frames.
func snapshotView(o *scene.Orbit) error {
	frames := viper.GetInt("frames")
	if frames < 0 || frames > scene.MaxFrames {
		return fmt.Errorf("frames must be in [0, %d], got %d", scene.MaxFrames, frames)
	}
	o.Pitch = 0.3
	o.Spin(viper.GetFloat64("spin"), 0, frames)
	return nil
}

// acquire loads the square crop from a file or URL.
func acquire(ctx context.Context, input string) (*image.RGBA, error) {
	maxSide := viper.GetInt("max-side")
	if !source.IsURL(input) {
		return source.AcquireFile(input, maxSide)
	}
	f := source.NewFetcher()
	f.UserAgent = viper.GetString("user-agent")
	return f.Fetch(ctx, input, maxSide)
}

func snapshotAccessory() (accessory.Accessory, int64, error) {
	seed := time.Now().UnixNano()
	if viper.IsSet("seed") {
		seed = viper.GetInt64("seed")
	}
	name := viper.GetString("accessory")
	if name == "" || name == "auto" {
		return accessory.Seeded(seed), seed, nil
	}
	acc, err := accessory.Parse(name)
	return acc, seed, err
}
