package dataset

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/ChizhovVadim/CounterTexel/internal/domain"
)

const maxLineSize = 1 << 20

// ZurichessDatasetProvider reads quiet-labeled.epd style files:
// one position per line, the game result quoted at the end.
type ZurichessDatasetProvider struct {
	FilePath    string
	MaxPosCount int
}

func (dp *ZurichessDatasetProvider) Load(
	ctx context.Context,
	dataset chan<- domain.DatasetItem,
) error {
	file, err := os.Open(dp.FilePath)
	if err != nil {
		return err
	}
	defer file.Close()

	var scanner = bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var line, count int
	for scanner.Scan() {
		line++
		var s = scanner.Text()
		if strings.TrimSpace(s) == "" {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case dataset <- domain.DatasetItem{
			Line:   line,
			Record: s,
		}:
		}

		count++
		if dp.MaxPosCount != 0 && count >= dp.MaxPosCount {
			break
		}
	}
	return scanner.Err()
}
