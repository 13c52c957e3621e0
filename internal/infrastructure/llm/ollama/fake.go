package ollama

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

const fakeVectorSize = 64

// FakeEmbedder is the no-dependency stand-in used when external services are
// disabled. Vectors are deterministic bag-of-words projections, so similar
// texts land near each other and tests are reproducible.
type FakeEmbedder struct{}

func NewFakeEmbedder() *FakeEmbedder {
	return &FakeEmbedder{}
}

func (f *FakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = fakeVector(text)
	}
	return out, nil
}

func (f *FakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return fakeVector(text), nil
}

func fakeVector(text string) []float32 {
	vec := make([]float64, fakeVectorSize)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[h.Sum32()%fakeVectorSize]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, fakeVectorSize)
	if norm == 0 {
		return out
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out
}

// FakeGenerator answers with a canned simulation response instead of calling
// a model.
type FakeGenerator struct{}

func NewFakeGenerator() *FakeGenerator {
	return &FakeGenerator{}
}

func (f *FakeGenerator) GenerateFromPrompt(_ context.Context, prompt string) (string, error) {
	question := extractQuestion(prompt)
	return fmt.Sprintf("[FAKE SERVICE] Based on the provided context, here is a simulated answer to: %s", question), nil
}

func extractQuestion(prompt string) string {
	idx := strings.LastIndex(prompt, "Question:")
	if idx < 0 {
		return "your question"
	}
	rest := prompt[idx+len("Question:"):]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
