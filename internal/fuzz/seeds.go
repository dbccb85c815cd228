package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"lread/internal/driver"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// inlineSeeds cover every lexeme class and the known error shapes.
var inlineSeeds = []string{
	"",
	"42 -7 +3 3.14 -0.5 2/3 -1/2",
	`"plain" "esc \" \\ \n \t" ""`,
	"(a b . c) (1 . (2 . (3 . ())))",
	"'x #'f ''(a) '#'g",
	"; c\n;;; header\n(a ; inner\n b)",
	"(((((((((())))))))))",
	"nil () ( ) (nil . nil)",
	"(λ (x) (* x x)) café",
	"(1 2", ")", "(a . b c)", "(. a)", "'", `"open`, `"bad \q"`,
	"99999999999999999999", "1/0", "1.0e999", "...", ".5", "#",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все исходники
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !driver.IsSourceFile(path) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
