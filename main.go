package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gildas/go-logger"

	"github.com/CrestNiraj12/thumbpick/domain"
	"github.com/CrestNiraj12/thumbpick/infra/config"
	"github.com/CrestNiraj12/thumbpick/infra/fileinfo"
	"github.com/CrestNiraj12/thumbpick/infra/media"
	"github.com/CrestNiraj12/thumbpick/infra/preview"
	"github.com/CrestNiraj12/thumbpick/infra/snapshot"
	"github.com/CrestNiraj12/thumbpick/infra/upload"
	"github.com/CrestNiraj12/thumbpick/tui"
	"github.com/CrestNiraj12/thumbpick/tui/publish"
)

const APP = "thumbpick"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

// cliOptions is the publish-form state supplied on the command line.
type cliOptions struct {
	FilePath  string
	Thumbnail string
	Claim     string
	FileInfos string
	Disabled  bool
}

func parseCLIArgs(args []string) (cliMode, cliOptions, string) {
	var opts cliOptions
	if len(args) == 0 {
		return cliRun, opts, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, opts, ""
	case "--help", "-h", "help":
		return cliHelp, opts, ""
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--thumbnail", "--claim", "--file-infos":
			if !hasValue {
				if i+1 >= len(args) {
					return cliInvalid, opts, fmt.Sprintf("missing value for %s", name)
				}
				i++
				value = args[i]
			}
			switch name {
			case "--thumbnail":
				opts.Thumbnail = value
			case "--claim":
				opts.Claim = value
			case "--file-infos":
				opts.FileInfos = value
			}
		case "--disabled":
			opts.Disabled = true
		default:
			if strings.HasPrefix(arg, "-") || opts.FilePath != "" {
				return cliInvalid, opts, fmt.Sprintf("unexpected argument: %s", strings.Join(args[i:], " "))
			}
			opts.FilePath = arg
		}
	}
	return cliRun, opts, ""
}

func usage() string {
	return "Usage: thumbpick [--thumbnail URL] [--claim TXID:NOUT] [--file-infos PATH] [--disabled] [FILE]\n" +
		"       thumbpick [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		if rev := strings.TrimSpace(settings["vcs.revision"]); rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		if t := strings.TrimSpace(settings["vcs.time"]); t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// hostName is the upload destination shown to the user.
func hostName(publicURL string) string {
	if u, err := url.Parse(publicURL); err == nil && u.Host != "" {
		return u.Host
	}
	return ""
}

// initialForm builds the starting publish form from the command line.
func initialForm(opts cliOptions, infos map[string]domain.FileInfo, apiAvailable bool) (publish.Form, error) {
	form := publish.Form{
		Thumbnail: opts.Thumbnail,
		FileInfos: infos,
		Disabled:  opts.Disabled,
	}.Reset(apiAvailable)
	if opts.FilePath != "" {
		form.FilePath = domain.FilePath(opts.FilePath)
	}
	if opts.Claim != "" {
		claim, err := domain.ParseClaim(opts.Claim)
		if err != nil {
			return publish.Form{}, err
		}
		form.MyClaim = &claim
	}
	return form, nil
}

func main() {
	mode, opts, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("ThumbPick %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if opts.FileInfos != "" {
		cfg.FileInfosPath = opts.FileInfos
	}

	// 2. The TUI owns the terminal, so logs only go to a file.
	log := logger.Create(APP, &logger.NilStream{})
	if cfg.LogPath != "" {
		log = logger.Create(APP, &logger.FileStream{Path: cfg.LogPath})
	}
	defer log.Flush()
	log.Infof("Starting %s %s", APP, version)
	log.Infof("Storage location: %s", cfg.StorageDir)

	// 3. Build services (concrete types satisfy app.* interfaces).
	store := upload.NewLocalStore(cfg.StorageDir, cfg.PublicURL, log)
	infos, err := fileinfo.Load(cfg.FileInfosPath)
	if err != nil {
		log.Errorf("Failed to load file infos from %s", cfg.FileInfosPath, err)
		fmt.Fprintf(os.Stderr, "file infos: %v\n", err)
		log.Close()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	available := !cfg.APIDown && store.Available(ctx)
	cancel()
	if !available {
		log.Warnf("Thumbnail uploads unavailable, starting in manual mode")
	}

	form, err := initialForm(opts, infos, available)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage())
		log.Close()
		os.Exit(2)
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Media:       media.NewClassifier(),
		Preview:     preview.NewRenderer(cfg.PreviewTimeout, log),
		Uploader:    store,
		Snapshotter: snapshot.NewFFmpeg(cfg.FFmpegPath, cfg.SnapshotOffset, log),
		Log:         log,
		HostName:    hostName(cfg.PublicURL),
		Form:        form,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Errorf("TUI stopped", err)
		fmt.Fprintf(os.Stderr, "thumbpick: %v\n", err)
		log.Close()
		os.Exit(1)
	}
}
