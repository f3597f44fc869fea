package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// typeSeeds cover every type-expression form the parser knows.
var typeSeeds = []string{
	"Int",
	"[V]",
	"[K: V]",
	"Swift.Array<V>",
	"Set<V>?",
	"V!",
	"(label: V, Int)",
	"(V) async throws -> K",
	"@escaping (V) -> Void",
	"inout V",
	"any Hashable & Sendable",
	"some Collection<V>",
	"V.Element.Type",
	"(some K).Type",
	"repeat each T",
	"~Copyable",
	"Ключ",
}

// signatureSeeds are member signatures in definition-file notation.
var signatureSeeds = []string{
	"fetch<V: Comparable>(p: V) -> V where V: Sendable",
	"static func reset()",
	"mutating save(_ item: Item, to url: URL) async throws",
	"decode<T: Decodable>(_ data: Data, as type: T.Type) throws -> T",
	"log(_ items: Any..., separator: String)",
	"update(_ value: inout Int)",
}

func addTypeSeeds(f *testing.F) {
	for _, s := range typeSeeds {
		f.Add(s)
	}
}

func addSignatureSeeds(f *testing.F) {
	for _, s := range signatureSeeds {
		f.Add(s)
	}
}

// addDefinitionSeeds adds every *.yaml under testdata and the yaml blocks of
// the README.
func addDefinitionSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addReadmeSeeds(f)
	f.Add([]byte{})
	f.Add([]byte("interfaces: []\n"))
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.yaml файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
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

func addReadmeSeeds(f *testing.F) {
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(filepath.Join("..", "..", "README.md"))
	if err != nil {
		return
	}
	var block [][]byte
	inYAML := false
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		trimmed := strings.TrimSpace(string(line))
		if strings.HasPrefix(trimmed, "```yaml") {
			inYAML = true
			block = block[:0]
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			if inYAML {
				if snippet := clampSeed(bytes.Join(block, []byte{'\n'})); len(snippet) > 0 {
					f.Add(snippet)
				}
			}
			inYAML = false
			continue
		}
		if inYAML {
			// сохраняем отступы, YAML от них зависит
			block = append(block, line)
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
