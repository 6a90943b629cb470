package resolve_test

import (
	"testing"

	"portfolioctl/internal/config"
	"portfolioctl/internal/testsupport"
)

func configWithStrategy(t *testing.T, strategy string) *config.Config {
	t.Helper()
	return testsupport.NewConfig(t, testsupport.WithStrategy(strategy))
}
