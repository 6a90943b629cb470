package screenshot

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"portfolioctl/internal/config"
)

// Browser captures one page at one viewport into an image file.
type Browser interface {
	Capture(ctx context.Context, url, outPath string, viewport Viewport) error
}

// chromium shells out to a headless Chromium-family binary. The virtual time
// budget gives animated or lazy-loading pages time to settle before the
// screenshot is taken.
type chromium struct {
	binary        string
	navTimeout    time.Duration
	settleDelayMS int
}

// NewChromium builds the default exec-backed browser from config.
func NewChromium(cfg *config.Config) Browser {
	return &chromium{
		binary:        cfg.Screenshots.Browser,
		navTimeout:    time.Duration(cfg.Screenshots.NavigationTimeout) * time.Second,
		settleDelayMS: cfg.Screenshots.SettleDelayMS,
	}
}

func (c *chromium) Capture(ctx context.Context, url, outPath string, viewport Viewport) error {
	ctx, cancel := context.WithTimeout(ctx, c.navTimeout)
	defer cancel()

	args := []string{
		"--headless",
		"--disable-gpu",
		"--hide-scrollbars",
		"--window-size=" + viewport.WindowSize(),
		fmt.Sprintf("--virtual-time-budget=%d", c.settleDelayMS),
		"--screenshot=" + outPath,
		url,
	}
	cmd := exec.CommandContext(ctx, c.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s capture of %s: %w (%s)", c.binary, url, err, firstLine(output))
	}
	return nil
}

func firstLine(output []byte) string {
	for i, b := range output {
		if b == '\n' {
			return string(output[:i])
		}
	}
	return string(output)
}
