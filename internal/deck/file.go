package deck

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/alice-yql/bearwithme/internal/model"
)

// LoadFile reads words from a plain text deck file, one word per line.
// A line may carry a breakdown after a "|" separator, for example
// "Hello|HH AH L OW". Blank lines and lines starting with # are skipped.
func LoadFile(path string) ([]model.Word, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only deck file.
			_ = cerr
		}
	}()

	var words []model.Word
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		text, breakdown, _ := strings.Cut(line, "|")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, model.Word{
			ID:        uuid.NewString(),
			Text:      text,
			Breakdown: strings.TrimSpace(breakdown),
			Status:    model.StatusNotStarted,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("deck file is empty")
	}
	return words, nil
}
