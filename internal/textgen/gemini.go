package textgen

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator produces summaries through the Gemini API. The client
// reads its API key from the environment (GEMINI_API_KEY).
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Provider() string { return "gemini" }

func (g *GeminiGenerator) GenerateSummary(ctx context.Context, stats *Stats, language string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(stats, language)), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", g.model)
	}
	return text, nil
}

const systemInstruction = `You are a personal finance assistant. Write a short,
friendly monthly spending summary from the figures given. Use only the numbers
provided, never invent amounts, and keep it under 120 words.`

func buildPrompt(stats *Stats, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the summary in language code %q.\n\n", language)
	fmt.Fprintf(&b, "Month: %s\nCurrency: %s\n", stats.Month, stats.BaseCurrency)
	fmt.Fprintf(&b, "Income: %s\nExpense: %s\nNet: %s\n", stats.Income, stats.Expense, stats.Net)
	fmt.Fprintf(&b, "Transactions: %d\n", stats.TransactionCount)
	if len(stats.TopCategories) > 0 {
		b.WriteString("Top spending categories:\n")
		for _, c := range stats.TopCategories {
			fmt.Fprintf(&b, "- %s: %s\n", c.Label, c.Total)
		}
	}
	if len(stats.TopMerchants) > 0 {
		b.WriteString("Top merchants:\n")
		for _, m := range stats.TopMerchants {
			fmt.Fprintf(&b, "- %s: %s\n", m.Label, m.Total)
		}
	}
	return b.String()
}
