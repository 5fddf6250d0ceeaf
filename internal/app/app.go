package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/five82/strut"
	"github.com/five82/strut/internal/config"
	"github.com/five82/strut/internal/feed"
	"github.com/five82/strut/internal/memdisplay"
	picturepkg "github.com/five82/strut/internal/picture"
	"github.com/five82/strut/internal/prefs"
	"github.com/five82/strut/internal/preview"
)

const defaultPreviewWidth = 1280

// Options configure the bar application.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/strut/prefs.toml
	Preview      bool   // render in the terminal instead of on X11
	PreviewWidth uint16 // zero uses 1280
	Logger       *slog.Logger
}

// Run opens the bar, adds the configured components and blocks until ctx is
// cancelled, the display goes away or the preview is quit.
func Run(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	userPrefs, _ := prefs.Load(opts.PrefsPath)

	barOpts, err := barOptions(cfg, log)
	if err != nil {
		return err
	}

	if !opts.Preview {
		bar, err := strut.Open(barOpts)
		if err != nil {
			return fmt.Errorf("open bar: %w", err)
		}
		defer bar.Close()

		if err := populate(ctx, bar, cfg, userPrefs, opts.PrefsPath, log); err != nil {
			return err
		}
		return bar.Run(ctx)
	}

	width := opts.PreviewWidth
	if width == 0 {
		width = defaultPreviewWidth
	}
	win := memdisplay.New(width, cfg.Height)
	bar, err := strut.Attach(win, barOpts)
	if err != nil {
		return fmt.Errorf("open preview bar: %w", err)
	}
	defer bar.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := populate(ctx, bar, cfg, userPrefs, opts.PrefsPath, log); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- bar.Run(ctx) }()

	err = preview.Run(ctx, win, preview.Options{Title: cfg.Name})
	cancel()
	if runErr := <-errc; err == nil {
		err = runErr
	}
	return err
}

func barOptions(cfg config.Config, log *slog.Logger) (strut.Options, error) {
	fg := cfg.Foreground
	opts := strut.Options{
		Name:        cfg.Name,
		Output:      cfg.Output,
		Height:      cfg.Height,
		FontPath:    cfg.Font,
		FontSize:    cfg.FontSize,
		Background:  cfg.Background,
		Foreground:  &fg,
		TextYOffset: cfg.TextYOffset,
		Logger:      log,
	}
	if cfg.BackgroundImage != "" {
		img, err := loadBackground(cfg.BackgroundImage, int(cfg.Height))
		if err != nil {
			return strut.Options{}, err
		}
		opts.BackgroundImage = img
	}
	return opts, nil
}

func loadBackground(path string, height int) (image.Image, error) {
	img, err := picturepkg.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load background image: %w", err)
	}
	if img.Bounds().Dy() != height {
		img = picturepkg.FitHeight(img, height)
	}
	return img, nil
}

// populate adds the configured components in a fixed order, which is also
// their order within each bucket.
func populate(ctx context.Context, bar *strut.Bar, cfg config.Config, p prefs.Prefs, prefsPath string, log *slog.Logger) error {
	if cfg.Image.Path != "" {
		img, err := bar.LoadImage(cfg.Image.Path, cfg.Image.Fit)
		if err != nil {
			return err
		}
		bar.Add(&picture{align: cfg.Image.Align, img: img})
	}

	bar.Add(newLabel(bar, cfg.Name, strut.AlignLeft, log))

	if cfg.Tail.Path != "" {
		t, err := newTail(ctx, bar, cfg.Tail, log)
		if err != nil {
			return err
		}
		bar.Add(t)
	}

	if cfg.Feed.URL != "" {
		client, err := feed.NewClient(cfg.Feed.URL)
		if err != nil {
			return fmt.Errorf("init feed client: %w", err)
		}
		poller := NewPoller(client, cfg.Feed.Interval, log.With("feed", client.Endpoint()))
		poller.Start(ctx)
		bar.Add(newFeedView(bar, poller, cfg.Feed, cfg.Foreground, log))
	}

	if cfg.Clock.Enabled {
		bar.Add(newClock(ctx, bar, cfg.Clock, p, prefsPath, log))
	}
	return nil
}
