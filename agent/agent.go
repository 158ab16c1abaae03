// Package agent looks up figures the book cannot know by itself: market
// prices and current fixed-deposit rates. It wraps a Gemini model grounded on
// Google Search. The agent is strictly read-only, it never touches the book;
// callers decide what to do with its answers.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Scout holds the Gemini client behind the lookups.
type Scout struct {
	client *genai.Client
}

// NewScout initializes the Gemini client. Credentials come from the
// environment (GEMINI_API_KEY), following the SDK defaults.
func NewScout(ctx context.Context) (*Scout, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize Gemini client: %w", err)
	}
	return &Scout{client: client}, nil
}

// ask runs a single-turn chat with the Google Search tool enabled and returns
// the first candidate's content and grounding metadata.
func (s *Scout) ask(ctx context.Context, system, question string) (*genai.Content, *genai.GroundingMetadata, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
	}
	chat, err := s.client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("no response from model %s", model)
	}
	cand := resp.Candidates[0]
	return cand.Content, cand.GroundingMetadata, nil
}

// Source is one grounding page behind an answer.
type Source struct {
	Title string
	URL   string
}

func sources(gm *genai.GroundingMetadata) []Source {
	if gm == nil {
		return nil
	}
	var out []Source
	for _, chunk := range gm.GroundingChunks {
		if chunk.Web != nil {
			out = append(out, Source{Title: chunk.Web.Title, URL: chunk.Web.URI})
		}
	}
	return out
}
