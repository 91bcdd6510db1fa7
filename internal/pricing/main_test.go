package pricing

import (
	"os"
	"testing"

	"github.com/propchain/propchain-api/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
