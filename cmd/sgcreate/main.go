// Command sgcreate synthesizes a single-image random-dot
// autostereogram from a depthmap and a texture (loaded or
// synthesized). Flags are parsed by hand, getopt-style, rather than
// with flag.FlagSet, so glued short forms like -f30mm and combined
// booleans like -pN keep working.
package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/wb4/sgcreate/internal/colorx"
	"github.com/wb4/sgcreate/internal/config"
	"github.com/wb4/sgcreate/internal/heightmap"
	"github.com/wb4/sgcreate/internal/mathutil"
	"github.com/wb4/sgcreate/internal/meshexport"
	"github.com/wb4/sgcreate/internal/previewterm"
	"github.com/wb4/sgcreate/internal/raster"
	"github.com/wb4/sgcreate/internal/selfupdate"
	"github.com/wb4/sgcreate/internal/sgerrors"
	"github.com/wb4/sgcreate/internal/stereogram"
	"github.com/wb4/sgcreate/internal/texture"
	"github.com/wb4/sgcreate/internal/units"
)

// version is overwritten at release build time via -ldflags; the
// selfupdate check compares against this.
var version = "0.0.0-dev"

// poissonNoiseAmount is the photon-count scale for -N: each channel's
// Poisson rate at full brightness. Larger values mean subtler grain.
const poissonNoiseAmount = 40

// options holds every value the flags below populate.
type options struct {
	inputPath   string
	outputPath  string
	maxSep      units.Length
	maxSepSet   bool
	minSep      units.Length
	minSepSet   bool
	displayW    units.Length
	displayWSet bool
	texturePath string
	preserveTex bool
	addNoise    bool
	pattern     string
	patternSet  bool
	seedColor   string
	annotate    string
	meshPath    string
	envPath     string
	checkUpdate bool
	preview     bool
	help        bool
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sgcreate -i DEPTH -o OUTPUT [options]")
	fmt.Fprintln(os.Stderr, "  -i DEPTH     depthmap image (required)")
	fmt.Fprintln(os.Stderr, "  -o OUTPUT    output image path (required)")
	fmt.Fprintln(os.Stderr, "  -f LEN       maximum stereo separation (physical length)")
	fmt.Fprintln(os.Stderr, "  -n LEN       minimum stereo separation (physical length)")
	fmt.Fprintln(os.Stderr, "  -s LEN       physical display width (default 14in)")
	fmt.Fprintln(os.Stderr, "  -t FILE      texture image (default: synthesize one)")
	fmt.Fprintln(os.Stderr, "  -p           preserve the loaded texture's height")
	fmt.Fprintln(os.Stderr, "  -N           add Poisson noise to the texture")
	fmt.Fprintln(os.Stderr, "  -P KIND      synthetic pattern: perlin|polygons|ellipses|dots|random")
	fmt.Fprintln(os.Stderr, "  -c COLOR     seed color for synthesized textures (name, #hex, rgb(...), or x:color,x:color ramp)")
	fmt.Fprintln(os.Stderr, "  -a TEXT      annotate the output with a caption")
	fmt.Fprintln(os.Stderr, "  -m FILE      also export the depthmap as a textured glTF mesh")
	fmt.Fprintln(os.Stderr, "  -e FILE      load default overrides from an env file")
	fmt.Fprintln(os.Stderr, "  -w           preview the result inline in the terminal")
	fmt.Fprintln(os.Stderr, "  -u           check for a newer sgcreate release")
	fmt.Fprintln(os.Stderr, "  -h           show this help message")
	fmt.Fprintln(os.Stderr, `lengths: "<number>[ws]<unit>" where unit is m/cm/mm/in (or "meters"/"inches"/...)`)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "sgcreate:", err)
		if sgerrors.Is(err, sgerrors.InvalidArgument) {
			usage()
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	if opts.help {
		usage()
		return nil
	}
	if opts.checkUpdate {
		if err := selfupdate.Check(version); err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "self-update check", err)
		}
	}
	if opts.inputPath == "" || opts.outputPath == "" {
		return sgerrors.New(sgerrors.InvalidArgument, "both -i DEPTH and -o OUTPUT are required")
	}

	defaults := config.Defaults{
		EyeSeparation: units.FromMeters(stereogram.EyeSeparationDefaultMeters),
		Pattern:       texture.Perlin,
		DisplayWidth:  units.FromInches(14),
	}
	defaults, err = config.Load(opts.envPath, defaults)
	if err != nil {
		return sgerrors.Wrap(sgerrors.InvalidArgument, "load config overrides", err)
	}

	hm, err := loadHeightmap(opts.inputPath, defaults.WidthPixels)
	if err != nil {
		return err
	}
	width, height := hm.Width(), hm.Height()

	displayWidth := defaults.DisplayWidth
	if opts.displayWSet {
		displayWidth = opts.displayW
	}
	density := units.FromWidth(float64(width), displayWidth)

	eyeSeparationPx := density.PixelsFor(defaults.EyeSeparation)

	sepMaxLen := defaults.EyeSeparation.Scale(stereogram.MaxSeparationRatio)
	if opts.maxSepSet {
		sepMaxLen = opts.maxSep
	}
	sepMinLen := sepMaxLen.Scale(stereogram.MinMaxSeparationRatio)
	if opts.minSepSet {
		sepMinLen = opts.minSep
	}

	sepMaxPx := density.PixelsFor(sepMaxLen)
	sepMinPx := density.PixelsFor(sepMinLen)

	if err := validateSeparations(sepMinPx, sepMaxPx, eyeSeparationPx); err != nil {
		return err
	}

	params := stereogram.Params{
		EyeSeparationPx:    eyeSeparationPx,
		SeparationMinPx:    sepMinPx,
		SeparationMaxPx:    sepMaxPx,
		EdgeEchoOffsetRows: edgeEchoOffset(sepMaxPx),
	}

	pattern := defaults.Pattern
	if opts.patternSet {
		pattern, err = texture.PatternFromName(opts.pattern)
		if err != nil {
			return err
		}
	}

	rng := mathutil.NewSeededRand(time.Now().UnixNano())

	// -c accepts a single color or an x:color,... ramp; a ramp seeds
	// the palette with a color drawn from a random position along it.
	seed := colorx.RGB(0.5, 0.5, 0.5)
	if opts.seedColor != "" {
		ramp, rampErr := colorx.ParseRamp(opts.seedColor)
		if rampErr != nil {
			return sgerrors.Wrap(sgerrors.InvalidArgument, "parse -c color", rampErr)
		}
		seed = ramp.Get(rng.Float64())
	}

	tex, err := buildTexture(opts, pattern, height, sepMaxPx, seed, density, rng)
	if err != nil {
		return err
	}
	if opts.addNoise {
		texture.AddPoissonNoise(tex, poissonNoiseAmount, time.Now().UnixNano())
	}

	driver := stereogram.NewDriver(params)
	out, err := driver.Generate(hm, tex)
	if err != nil {
		return sgerrors.Wrap(sgerrors.InternalInvariantViolation, "generate stereogram", err)
	}

	if opts.annotate != "" {
		out, err = out.Annotate(opts.annotate, "", 12, 8, height-8, colorx.RGB(1, 1, 1))
		if err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "annotate output", err)
		}
	}

	if err := saveImage(opts.outputPath, out); err != nil {
		return err
	}

	if opts.meshPath != "" {
		doc, err := meshexport.Build(hm, meshexport.Options{
			HeightScale: float64(width) / 8,
			Texture:     tex,
			MeshName:    "depthmap",
		})
		if err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "build mesh", err)
		}
		if err := meshexport.Save(doc, opts.meshPath); err != nil {
			return sgerrors.Wrap(sgerrors.IOFailure, "save mesh", err)
		}
	}

	if opts.preview {
		if !previewterm.Supported() {
			fmt.Fprintln(os.Stderr, "sgcreate: terminal preview unavailable: no supported graphics protocol detected")
		} else if err := previewterm.Show(out, raster.ExtOf(opts.outputPath)); err != nil {
			fmt.Fprintln(os.Stderr, "sgcreate: terminal preview failed:", err)
		}
	}

	return nil
}

// loadHeightmap decodes the depthmap and, when a target pixel width
// has been configured, rescales it proportionally before wrapping it
// as a depth source.
func loadHeightmap(path string, widthPixels float64) (*heightmap.Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sgerrors.Wrap(sgerrors.IOFailure, "open depthmap", err)
	}
	defer f.Close()
	img, err := raster.Decode(f, raster.ExtOf(path))
	if err != nil {
		return nil, err
	}
	if w := int(math.Round(widthPixels)); w > 0 && w != img.Width {
		h := int(math.Round(float64(img.Height) * float64(w) / float64(img.Width)))
		if h < 1 {
			h = 1
		}
		img = img.Resize(w, h)
	}
	return heightmap.New(img), nil
}

func saveImage(path string, img *raster.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return sgerrors.Wrap(sgerrors.IOFailure, "create output file", err)
	}
	defer f.Close()
	if err := img.Encode(f, raster.ExtOf(path)); err != nil {
		return err
	}
	return nil
}

// buildTexture resolves the -t / -p / -P / -c combination into a
// concrete texture image: an explicitly loaded file (resized to the
// output height unless -p is set) or a synthesized pattern sized to
// one separation period, which is the horizontal tiling unit the row
// painter assumes.
func buildTexture(opts options, pattern texture.Pattern, height int, sepMaxPx float64, seed colorx.Color, density units.Density, rng mathutil.Rand) (*raster.Image, error) {
	if opts.texturePath != "" {
		f, err := os.Open(opts.texturePath)
		if err != nil {
			return nil, sgerrors.Wrap(sgerrors.IOFailure, "open texture", err)
		}
		defer f.Close()
		img, err := texture.Load(f, raster.ExtOf(opts.texturePath))
		if err != nil {
			return nil, err
		}
		if !opts.preserveTex && img.Height != height {
			img = img.Resize(img.Width, height)
		}
		return img, nil
	}

	texWidth := int(math.Round(sepMaxPx))
	if texWidth < 2 {
		texWidth = 2
	}
	return texture.Generate(pattern, texWidth, height, seed, density, rng)
}

func validateSeparations(sepMin, sepMax, eyeSep float64) error {
	if sepMin <= 0 {
		return sgerrors.New(sgerrors.InvalidArgument, "minimum separation must be positive")
	}
	if sepMin >= sepMax {
		return sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("minimum separation (%.2fpx) must be less than maximum separation (%.2fpx)", sepMin, sepMax))
	}
	if sepMax >= eyeSep {
		return sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("maximum separation (%.2fpx) must be less than eye separation (%.2fpx)", sepMax, eyeSep))
	}
	return nil
}

func edgeEchoOffset(sepMaxPx float64) int {
	v := int(stereogram.EdgeEchoOffsetRatio * sepMaxPx)
	if v < 1 {
		v = 1
	}
	return v
}

// parseArgs hand-parses a getopt-style "i:o:f:n:s:t:pNP:c:a:m:e:uwh"
// option string: an option taking a value accepts it glued to the flag
// (-f30mm) or as the following argument (-f 30mm); boolean flags may be
// combined (-pN).
func parseArgs(args []string) (options, error) {
	var opts options
	i := 0
	next := func(flag string, glued string) (string, error) {
		if glued != "" {
			return glued, nil
		}
		i++
		if i >= len(args) {
			return "", sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("-%s requires a value", flag))
		}
		return args[i], nil
	}

	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "-h" || arg == "--help" {
			opts.help = true
			continue
		}
		if len(arg) < 2 || arg[0] != '-' {
			return opts, sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("unrecognized argument %q", arg))
		}

		rest := arg[2:]
		switch arg[1] {
		case 'i':
			v, err := next("i", rest)
			if err != nil {
				return opts, err
			}
			opts.inputPath = v
		case 'o':
			v, err := next("o", rest)
			if err != nil {
				return opts, err
			}
			opts.outputPath = v
		case 'f':
			v, err := next("f", rest)
			if err != nil {
				return opts, err
			}
			l, err := units.ParseLength(v)
			if err != nil {
				return opts, sgerrors.Wrap(sgerrors.InvalidArgument, "-f", err)
			}
			opts.maxSep, opts.maxSepSet = l, true
		case 'n':
			v, err := next("n", rest)
			if err != nil {
				return opts, err
			}
			l, err := units.ParseLength(v)
			if err != nil {
				return opts, sgerrors.Wrap(sgerrors.InvalidArgument, "-n", err)
			}
			opts.minSep, opts.minSepSet = l, true
		case 's':
			v, err := next("s", rest)
			if err != nil {
				return opts, err
			}
			l, err := units.ParseLength(v)
			if err != nil {
				return opts, sgerrors.Wrap(sgerrors.InvalidArgument, "-s", err)
			}
			opts.displayW, opts.displayWSet = l, true
		case 't':
			v, err := next("t", rest)
			if err != nil {
				return opts, err
			}
			opts.texturePath = v
		case 'P':
			v, err := next("P", rest)
			if err != nil {
				return opts, err
			}
			opts.pattern, opts.patternSet = v, true
		case 'c':
			v, err := next("c", rest)
			if err != nil {
				return opts, err
			}
			opts.seedColor = v
		case 'a':
			v, err := next("a", rest)
			if err != nil {
				return opts, err
			}
			opts.annotate = v
		case 'm':
			v, err := next("m", rest)
			if err != nil {
				return opts, err
			}
			opts.meshPath = v
		case 'e':
			v, err := next("e", rest)
			if err != nil {
				return opts, err
			}
			opts.envPath = v
		default:
			// Combined boolean flags: -pNw, -Np, etc.
			for _, c := range arg[1:] {
				switch c {
				case 'p':
					opts.preserveTex = true
				case 'N':
					opts.addNoise = true
				case 'u':
					opts.checkUpdate = true
				case 'w':
					opts.preview = true
				case 'h':
					opts.help = true
				default:
					return opts, sgerrors.New(sgerrors.InvalidArgument, fmt.Sprintf("unrecognized flag -%c", c))
				}
			}
		}
	}

	if opts.pattern != "" {
		opts.pattern = strings.ToLower(opts.pattern)
	}
	return opts, nil
}
